package harness

import (
	"github.com/roach88/treelab/internal/evaluate"
	"github.com/roach88/treelab/internal/tree"
)

// Result is the outcome of a case execution.
type Result struct {
	// Pass indicates overall case success.
	// True if every expect field matches and the tree is valid.
	Pass bool `json:"pass"`

	// Errors contains assertion and validation messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Report is the evaluation of the final tree.
	Report evaluate.Report `json:"report"`

	// Tree is the forest after edits.
	Tree tree.Forest `json:"tree"`

	// Markup is the serialized final tree.
	Markup string `json:"markup"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
