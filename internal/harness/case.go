package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/roach88/treelab/internal/editor"
	"github.com/roach88/treelab/internal/tree"
)

// Start values select a scenario tree as the case's starting point.
const (
	StartStarter = "starter"
	StartTarget  = "target"
)

// Case defines a conformance test case.
type Case struct {
	// Name uniquely identifies this case and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this case validates.
	Description string `yaml:"description"`

	// Scenario is the scenario id whose battery scores the tree. Unknown ids
	// run the default battery; set expect.fallback to assert that.
	Scenario string `yaml:"scenario"`

	// Tree is the starting forest. Mutually exclusive with Start.
	Tree tree.Forest `yaml:"tree,omitempty"`

	// Start picks the scenario's "starter" or "target" tree instead of Tree.
	Start string `yaml:"start,omitempty"`

	// Edits are applied to the starting tree in order before evaluation.
	Edits []editor.Edit `yaml:"edits,omitempty"`

	// Expect lists the expected outcome.
	Expect Expect `yaml:"expect"`
}

// Expect specifies the expected evaluation outcome. Nil fields are not
// checked.
type Expect struct {
	Score    *int     `yaml:"score,omitempty"`
	Passed   []string `yaml:"passed,omitempty"`
	Failed   []string `yaml:"failed,omitempty"`
	Fallback *bool    `yaml:"fallback,omitempty"`

	// Markup is the exact serialized markup of the evaluated tree.
	Markup *string `yaml:"markup,omitempty"`
}

// LoadCase reads and parses a case YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}

	var c Case
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateCase(&c); err != nil {
		return nil, fmt.Errorf("invalid case: %w", err)
	}

	c.Tree = tree.Normalize(c.Tree)
	return &c, nil
}

// validateCase checks that required fields are present and valid.
func validateCase(c *Case) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}

	if c.Scenario == "" {
		return fmt.Errorf("scenario is required")
	}

	switch c.Start {
	case "":
	case StartStarter, StartTarget:
		if len(c.Tree) > 0 {
			return fmt.Errorf("tree and start are mutually exclusive")
		}
	default:
		return fmt.Errorf("start must be %q or %q, got %q", StartStarter, StartTarget, c.Start)
	}

	for i, e := range c.Edits {
		if e.Op == "" {
			return fmt.Errorf("edits[%d]: op is required", i)
		}
	}

	e := c.Expect
	if e.Score == nil && e.Passed == nil && e.Failed == nil && e.Fallback == nil && e.Markup == nil {
		return fmt.Errorf("expect must set at least one of score, passed, failed, fallback, markup")
	}

	return nil
}

// Discover returns the case files under dir matching pattern, relative to
// dir and sorted. An empty pattern matches every .yaml file at any depth.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**/*.yaml"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// MatchName reports whether a case name matches a glob filter. An empty
// filter matches everything.
func MatchName(filter, name string) bool {
	if filter == "" {
		return true
	}
	ok, err := doublestar.Match(filter, name)
	return err == nil && ok
}

// LoadCases loads every case under dir matching pattern.
func LoadCases(dir, pattern string) ([]*Case, error) {
	files, err := Discover(dir, pattern)
	if err != nil {
		return nil, err
	}
	cases := make([]*Case, 0, len(files))
	seen := make(map[string]string)
	for _, rel := range files {
		c, err := LoadCase(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rel, err)
		}
		if prev, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("case %q defined in both %s and %s", c.Name, prev, rel)
		}
		seen[c.Name] = rel
		cases = append(cases, c)
	}
	return cases, nil
}
