package evaluate

import (
	"math"

	"github.com/roach88/treelab/internal/tree"
)

// Predicate decides a check from the flattened forest.
type Predicate func(nodes []*tree.Node) bool

// Check is a named, weighted predicate.
type Check struct {
	ID        string
	Label     string
	Weight    float64
	Predicate Predicate
}

// Result is the outcome of one check.
type Result struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
	Passed bool    `json:"passed"`
}

// Report is the outcome of a battery.
type Report struct {
	// ScenarioID is the id the caller asked for.
	ScenarioID string `json:"scenario_id"`
	// Battery is the id of the battery that actually ran.
	Battery string `json:"battery"`
	// Score is the rounded sum of passed weights.
	Score int `json:"score"`
	// MaxScore is the rounded sum of all weights.
	MaxScore int      `json:"max_score"`
	Checks   []Result `json:"checks"`
	// Fallback is set when ScenarioID was unknown and the default battery ran.
	Fallback bool `json:"fallback"`
}

// Passed returns the ids of passed checks in report order.
func (r Report) Passed() []string {
	return r.ids(true)
}

// Failed returns the ids of failed checks in report order.
func (r Report) Failed() []string {
	return r.ids(false)
}

// Perfect reports whether every check passed.
func (r Report) Perfect() bool {
	return len(r.Failed()) == 0
}

func (r Report) ids(passed bool) []string {
	out := []string{}
	for _, c := range r.Checks {
		if c.Passed == passed {
			out = append(out, c.ID)
		}
	}
	return out
}

// Run evaluates checks against f.
func Run(f tree.Forest, checks []Check) Report {
	nodes := tree.Walk(f)
	results := make([]Result, len(checks))
	var earned, total float64
	for i, c := range checks {
		passed := c.Predicate != nil && c.Predicate(nodes)
		results[i] = Result{ID: c.ID, Label: c.Label, Weight: c.Weight, Passed: passed}
		total += c.Weight
		if passed {
			earned += c.Weight
		}
	}
	return Report{
		Score:    RoundHalfUp(earned),
		MaxScore: RoundHalfUp(total),
		Checks:   results,
	}
}

// RoundHalfUp rounds x to the nearest integer, halves toward +Inf.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
