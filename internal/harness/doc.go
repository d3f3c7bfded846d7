// Package harness provides conformance testing for evaluation scenarios.
//
// A case pairs a tree with a scenario and states the expected outcome. The
// harness optionally applies editor operations to the tree, validates it
// against the document schema, serializes it and scores it, then compares
// the report with the expectation.
//
// # Case Format
//
// Cases are defined in YAML files with the following structure:
//
//	name: button_primary_pass
//	description: "Styled button passes every check"
//	scenario: button-primary
//	tree:
//	  - id: "1"
//	    tag: button
//	    content: Continuar
//	    classes: [bg-blue-600, text-white, rounded-lg, hover:bg-blue-700]
//	edits:
//	  - {op: add_class, id: "1", class: focus-visible:ring-4}
//	expect:
//	  score: 100
//	  passed: [btn-exists, btn-text, btn-primary-class, btn-state]
//	  failed: []
//	  fallback: false
//
// Instead of tree, a case may set start: starter or start: target to begin
// from the scenario's own trees.
//
// Every expect field is optional; only the fields that are set are checked.
// passed and failed are compared as sets of check ids.
//
// # Deterministic Testing
//
// Nodes created by edits get ids from a sequence generator with a fixed
// session ("node-case-1", "node-case-2", ...), so repeated runs produce
// identical trees, markup and golden snapshots.
//
// # Usage
//
//	c, err := harness.LoadCase("testdata/cases/button_primary_pass.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner, err := harness.NewRunner(scenario.Builtin(), tree.DefaultCatalog())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Run(c)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
