package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/treelab/internal/evaluate"
)

// AssertionError is returned when an expectation fails.
// It includes the full check list to help debug the failure.
type AssertionError struct {
	Field    string // Expect field that failed
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Checks   []evaluate.Result
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Checks) > 0 {
		fmt.Fprintf(&buf, "\nChecks:\n")
		for _, c := range e.Checks {
			mark := " "
			if c.Passed {
				mark = "x"
			}
			fmt.Fprintf(&buf, "  [%s] %s (%g) %s\n", mark, c.ID, c.Weight, c.Label)
		}
	}

	return buf.String()
}

// checkExpect compares result against every field set in want.
func checkExpect(want Expect, result *Result) []error {
	report := result.Report
	var errs []error

	if want.Score != nil && *want.Score != report.Score {
		errs = append(errs, &AssertionError{
			Field:    "score",
			Expected: fmt.Sprintf("%d", *want.Score),
			Actual:   fmt.Sprintf("%d", report.Score),
			Checks:   report.Checks,
		})
	}

	if want.Passed != nil {
		if err := compareIDs("passed", want.Passed, report.Passed(), report.Checks); err != nil {
			errs = append(errs, err)
		}
	}

	if want.Failed != nil {
		if err := compareIDs("failed", want.Failed, report.Failed(), report.Checks); err != nil {
			errs = append(errs, err)
		}
	}

	if want.Fallback != nil && *want.Fallback != report.Fallback {
		errs = append(errs, &AssertionError{
			Field:    "fallback",
			Expected: fmt.Sprintf("%t", *want.Fallback),
			Actual:   fmt.Sprintf("%t (battery %s)", report.Fallback, report.Battery),
		})
	}

	if want.Markup != nil && *want.Markup != result.Markup {
		errs = append(errs, &AssertionError{
			Field:    "markup",
			Expected: *want.Markup,
			Actual:   result.Markup,
		})
	}

	return errs
}

// compareIDs compares check ids as sets.
func compareIDs(field string, want, got []string, checks []evaluate.Result) error {
	w := slices.Clone(want)
	g := slices.Clone(got)
	slices.Sort(w)
	slices.Sort(g)
	if slices.Equal(w, g) {
		return nil
	}
	return &AssertionError{
		Field:    field,
		Expected: "[" + strings.Join(w, ", ") + "]",
		Actual:   "[" + strings.Join(g, ", ") + "]",
		Checks:   checks,
	}
}
