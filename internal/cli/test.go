package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/treelab/internal/harness"
	"github.com/roach88/treelab/internal/tree"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update  bool   // regenerate golden files
	Filter  string // case name filter (glob pattern)
	Pattern string // case file pattern relative to the cases dir
	Golden  string // golden snapshot dir, default <cases-dir>/golden
}

// CaseResult holds the result of a single case execution.
type CaseResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Score  *int     `json:"score,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Cases  []CaseResult `json:"cases"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Total  int          `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <cases-dir>",
		Short: "Run harness cases",
		Long: `Run harness cases: trees and edits with their expected evaluation.

Each case is run against the scenario catalog and checked against its
expect block. When <cases-dir>/golden/<name>.golden exists (or the file of
that name under --golden), the case snapshot must match it too.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (invalid paths, etc.)

Examples:
  treelab test ./cases
  treelab test ./cases --filter "button_*"
  treelab test ./cases --pattern "level/**/*.yaml"
  treelab test ./cases --update
  treelab test ./cases --golden ./snapshots
  treelab test ./cases --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter cases by name (glob pattern)")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", "", `case file pattern (default "**/*.yaml")`)
	cmd.Flags().StringVar(&opts.Golden, "golden", "", "golden snapshot directory (default <cases-dir>/golden)")

	return cmd
}

func runTests(opts *TestOptions, casesDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if info, err := os.Stat(casesDir); err != nil || !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("cases directory not found: %s", casesDir))
	}

	catalog, err := opts.LoadCatalog()
	if err != nil {
		return err
	}
	runner, err := harness.NewRunner(catalog, tree.DefaultCatalog())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create runner", err)
	}
	runner.WithLogger(opts.Logger())

	files, err := harness.Discover(casesDir, opts.Pattern)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find cases", err)
	}

	goldenDir := opts.Golden
	if goldenDir == "" {
		goldenDir = filepath.Join(casesDir, harness.GoldenDir)
	}

	result := TestResult{Cases: make([]CaseResult, 0, len(files))}
	for _, rel := range files {
		path := filepath.Join(casesDir, filepath.FromSlash(rel))
		cr, ok := runCase(opts, runner, path, goldenDir, formatter)
		if !ok {
			continue
		}
		result.Cases = append(result.Cases, cr)
		if cr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}
	result.Total = len(result.Cases)

	if result.Total == 0 {
		if formatter.JSON() {
			return outputTestJSON(formatter, result)
		}
		fmt.Fprintln(formatter.Writer, "No cases found.")
		return nil
	}

	if formatter.JSON() {
		return outputTestJSON(formatter, result)
	}
	return outputTestText(formatter, result)
}

// runCase loads and runs one case file. The bool is false when the case is
// filtered out.
func runCase(opts *TestOptions, runner *harness.Runner, path, goldenDir string, formatter *OutputFormatter) (CaseResult, bool) {
	w := formatter.Writer
	text := !formatter.JSON()
	fileName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	c, err := harness.LoadCase(path)
	if err != nil {
		if !harness.MatchName(opts.Filter, fileName) {
			return CaseResult{}, false
		}
		if text {
			fmt.Fprintf(w, "%s %s\n", failMark("✗"), fileName)
			fmt.Fprintf(w, "  Load error: %v\n", err)
		}
		return CaseResult{
			Name:   fileName,
			Pass:   false,
			Errors: []string{fmt.Sprintf("failed to load case: %v", err)},
		}, true
	}
	if !harness.MatchName(opts.Filter, c.Name) {
		return CaseResult{}, false
	}
	formatter.VerboseLog("Running %s (%s)", c.Name, path)

	result, err := runner.Run(c)
	if err != nil {
		if text {
			fmt.Fprintf(w, "%s %s\n", failMark("✗"), c.Name)
			fmt.Fprintf(w, "  Execution error: %v\n", err)
		}
		return CaseResult{
			Name:   c.Name,
			Pass:   false,
			Errors: []string{fmt.Sprintf("execution failed: %v", err)},
		}, true
	}

	score := result.Report.Score
	cr := CaseResult{Name: c.Name, Pass: result.Pass, Score: &score, Errors: result.Errors}

	goldenPath := filepath.Join(goldenDir, c.Name+".golden")
	switch {
	case opts.Update:
		if err := updateGoldenFile(result, goldenPath); err != nil {
			cr.Pass = false
			cr.Errors = append(cr.Errors, fmt.Sprintf("failed to update golden file: %v", err))
		} else if text && cr.Pass {
			fmt.Fprintf(w, "%s %s (golden updated)\n", passMark("✓"), c.Name)
			return cr, true
		}
	default:
		match, err := compareWithGolden(result, goldenPath)
		if err != nil {
			cr.Pass = false
			cr.Errors = append(cr.Errors, fmt.Sprintf("golden comparison failed: %v", err))
		} else if !match {
			cr.Pass = false
			cr.Errors = append(cr.Errors, "snapshot does not match golden file (run with --update to regenerate)")
		}
	}

	if text {
		if cr.Pass {
			fmt.Fprintf(w, "%s %s\n", passMark("✓"), c.Name)
		} else {
			fmt.Fprintf(w, "%s %s\n", failMark("✗"), c.Name)
			for _, e := range cr.Errors {
				for _, line := range strings.Split(e, "\n") {
					fmt.Fprintf(w, "  %s\n", line)
				}
			}
		}
	}
	return cr, true
}

// updateGoldenFile writes the current snapshot as the golden file.
func updateGoldenFile(result *harness.Result, goldenPath string) error {
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}

	data, err := harness.Snapshot(result)
	if err != nil {
		return err
	}

	if err := os.WriteFile(goldenPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// compareWithGolden compares the result snapshot against the golden file.
// A missing golden file matches.
func compareWithGolden(result *harness.Result, goldenPath string) (bool, error) {
	goldenData, err := os.ReadFile(goldenPath)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}

	current, err := harness.Snapshot(result)
	if err != nil {
		return false, err
	}
	return bytes.Equal(goldenData, current), nil
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(formatter *OutputFormatter, result TestResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_TEST_FAILED",
			Message: fmt.Sprintf("%d case(s) failed", result.Failed),
		}
	}

	if err := formatter.encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		// Test failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test result as text.
func outputTestText(formatter *OutputFormatter, result TestResult) error {
	w := formatter.Writer

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		// Test failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All cases passed")
	return nil
}
