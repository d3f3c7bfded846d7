package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roach88/treelab/internal/evaluate"
	"github.com/roach88/treelab/internal/markup"
	"github.com/roach88/treelab/internal/scenario"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Scenario string // scenario id; unknown ids fall back to the default battery
	Diff     bool   // show a markup diff against the scenario target
	Strict   bool   // exit with ExitFailure unless every check passes
}

// EvalResult is the JSON payload of the eval command.
type EvalResult struct {
	Report evaluate.Report   `json:"report"`
	Markup string            `json:"markup"`
	Diff   []markup.DiffLine `json:"diff,omitempty"`
}

var (
	passMark = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	warnText = color.New(color.FgYellow).SprintfFunc()
	boldText = color.New(color.Bold).SprintfFunc()
)

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <tree-file>",
		Short: "Score a tree file against a scenario",
		Long: `Evaluate a tree file against a scenario's check battery.

Prints each check with its weight and outcome, and the rounded score.
An unknown scenario id is scored with the default battery and flagged.

Exit codes:
  0 - Evaluation ran (or every check passed, with --strict)
  1 - Invalid tree file, or a failed check with --strict
  2 - Command error

Examples:
  treelab eval card.yaml --scenario level-1-card
  treelab eval card.yaml --scenario level-1-card --diff
  treelab eval card.yaml --scenario button-primary --strict --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Scenario, "scenario", "s", scenario.DefaultID, "scenario id")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "show markup diff against the scenario target")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail unless every check passes")

	return cmd
}

func runEval(opts *EvalOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	catalog, err := opts.LoadCatalog()
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return err
	}

	f, err := readTreeOrFail(formatter, path)
	if err != nil {
		return err
	}

	report := catalog.Registry().Evaluate(f, opts.Scenario)
	opts.Logger().Debug("tree evaluated",
		"file", path,
		"scenario", opts.Scenario,
		"battery", report.Battery,
		"score", report.Score,
	)

	result := EvalResult{Report: report, Markup: markup.Serialize(f)}
	if opts.Diff {
		if s, ok := catalog.Get(report.Battery); ok {
			result.Diff = markup.Diff(result.Markup, markup.Serialize(s.Target))
		}
	}

	if formatter.JSON() {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		writeEvalText(formatter.Writer, result)
	}

	if opts.Strict && !report.Perfect() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d checks failed", len(report.Failed()), len(report.Checks)))
	}
	return nil
}

func writeEvalText(w io.Writer, result EvalResult) {
	r := result.Report
	fmt.Fprintln(w, boldText("Scenario %s", r.Battery))
	if r.Fallback {
		fmt.Fprintln(w, warnText("unknown scenario %q, scored with the default battery", r.ScenarioID))
	}
	for _, c := range r.Checks {
		mark := failMark("✗")
		if c.Passed {
			mark = passMark("✓")
		}
		fmt.Fprintf(w, "  %s %s (%s)\n", mark, c.Label, formatWeight(c.Weight))
	}
	fmt.Fprintf(w, "\nScore: %d/%d\n", r.Score, r.MaxScore)

	if result.Diff == nil {
		return
	}
	fmt.Fprintln(w)
	if markup.Identical(result.Diff) {
		fmt.Fprintln(w, passMark("Markup matches the target."))
		return
	}
	fmt.Fprintln(w, boldText("Diff against target (+ target, - yours):"))
	writeDiff(w, result.Diff)
}

func writeDiff(w io.Writer, lines []markup.DiffLine) {
	for _, l := range lines {
		text := fmt.Sprintf("%c %s", l.Op, l.Text)
		switch l.Op {
		case markup.DiffInsert:
			text = passMark(text)
		case markup.DiffDelete:
			text = failMark(text)
		}
		fmt.Fprintln(w, text)
	}
}

// formatWeight prints whole weights without a fraction.
func formatWeight(w float64) string {
	if w == float64(int64(w)) {
		return fmt.Sprintf("%d", int64(w))
	}
	return fmt.Sprintf("%g", w)
}
