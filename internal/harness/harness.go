package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/treelab/internal/editor"
	"github.com/roach88/treelab/internal/evaluate"
	"github.com/roach88/treelab/internal/markup"
	"github.com/roach88/treelab/internal/scenario"
	"github.com/roach88/treelab/internal/schema"
	"github.com/roach88/treelab/internal/tree"
)

// Runner executes cases against a scenario catalog.
// A Runner is not safe for concurrent use.
type Runner struct {
	catalog   *scenario.Catalog
	registry  *evaluate.Registry
	validator *schema.Validator
	logger    *slog.Logger
}

// NewRunner creates a runner for catalog. Trees are validated against tags.
func NewRunner(catalog *scenario.Catalog, tags tree.Catalog) (*Runner, error) {
	v, err := schema.NewValidator(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to build validator: %w", err)
	}
	return &Runner{
		catalog:   catalog,
		registry:  catalog.Registry(),
		validator: v,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}, nil
}

// WithLogger returns r logging to l.
func (r *Runner) WithLogger(l *slog.Logger) *Runner {
	r.logger = l
	return r
}

// Run executes a case and returns the result.
//
// Execution flow:
// 1. Resolve the starting tree (inline, or the scenario's starter/target)
// 2. Apply edits with a deterministic id generator
// 3. Validate the tree against the document schema
// 4. Serialize and evaluate the tree
// 5. Compare the outcome with expect
//
// An error is returned only for cases that cannot run at all; failed
// expectations are reported in the result.
func (r *Runner) Run(c *Case) (*Result, error) {
	start, err := r.startTree(c)
	if err != nil {
		return nil, err
	}

	ed := editor.NewEditor(editor.NewSequenceGeneratorWithSession("node", "case"))
	f, err := ed.ApplyAll(start, c.Edits)
	if err != nil {
		return nil, fmt.Errorf("failed to apply edits: %w", err)
	}

	f = tree.Normalize(f)
	result := NewResult()
	result.Tree = f

	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tree: %w", err)
	}
	if err := r.validator.Validate(data, schema.FormatJSON); err != nil {
		result.AddError(err.Error())
	}

	result.Markup = markup.Serialize(f)
	result.Report = r.registry.Evaluate(f, c.Scenario)

	r.logger.Debug("case evaluated",
		"case", c.Name,
		"scenario", c.Scenario,
		"battery", result.Report.Battery,
		"score", result.Report.Score,
		"fallback", result.Report.Fallback,
	)

	for _, err := range checkExpect(c.Expect, result) {
		result.AddError(err.Error())
	}

	return result, nil
}

func (r *Runner) startTree(c *Case) (tree.Forest, error) {
	if c.Start == "" {
		return c.Tree, nil
	}
	s, ok := r.catalog.Get(c.Scenario)
	if !ok {
		return nil, fmt.Errorf("case %q: start %q needs a known scenario, %q is not in the catalog", c.Name, c.Start, c.Scenario)
	}
	if c.Start == StartTarget {
		return s.Target, nil
	}
	return s.Starter, nil
}
