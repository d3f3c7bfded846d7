package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/treelab/internal/tree"
)

// Snapshot renders the parts of a result that golden files pin: the
// serialized markup, the canonical tree and the report.
func Snapshot(result *Result) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("# markup\n")
	b.WriteString(result.Markup)
	b.WriteString("\n\n# tree\n")
	b.Write(tree.MarshalCanonical(result.Tree))
	b.WriteString("\n\n# report\n")

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.Report); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return b.Bytes(), nil
}

// GoldenDir is the directory, inside a cases directory, that holds golden
// snapshots.
const GoldenDir = "golden"

// GoldenPath returns the golden file of the case named name under casesDir.
func GoldenPath(casesDir, name string) string {
	return filepath.Join(casesDir, GoldenDir, name+".golden")
}

// RunWithGolden executes a case and compares its snapshot against a golden
// file stored in testdata/cases/golden/{case.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, r *Runner, c *Case) (*Result, error) {
	t.Helper()

	result, err := r.Run(c)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, c.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares a result's snapshot against a golden file without
// re-running the case.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snap, err := Snapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(filepath.Join("testdata", "cases", GoldenDir)),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snap)

	return nil
}
