// Package evaluate scores a forest against a battery of weighted checks.
//
// A Check is a label, a positive weight and a Predicate over the preorder
// flattening of the forest. Run executes every check in declaration order with
// no short-circuiting, then rounds the sum of passed weights half-up to an
// integer score. Order affects only the report, never the score.
//
// Batteries are keyed by scenario id in a Registry. Evaluating an id the
// registry does not know uses the default battery and marks the report with
// Fallback, so the evaluator is total over all ids.
//
// Predicates are built from node Matchers:
//
//	Any(All(TagIs("button"), HasAllClasses("bg-blue-600", "text-white")))
//	AtLeast(2, HasAllClasses("bg-slate-50", "p-3"))
//	FirstThen(TagIs("button"), ContentEquals("continuar"))
//
// or compiled from expr scripts with CompileExpr.
package evaluate
