// Package scenario holds evaluation scenarios: a starter tree, a target tree
// and the weighted check battery that scores a candidate against the target.
//
// Built-in scenarios come from Builtin. Extra scenarios are declared in YAML
// and read with Load or LoadDir:
//
//	id: pricing-table
//	title: Tabla de precios
//	level: Medio
//	description: Tres columnas con precio y botón.
//	starter_prefix: price
//	starter:
//	  - {id: root, tag: section}
//	target:
//	  - id: root
//	    tag: section
//	    classes: [grid, grid-cols-3, gap-4]
//	checks:
//	  - id: grid
//	    label: Rejilla de tres columnas
//	    weight: 40
//	    any: {classes: [grid, grid-cols-3]}
//	  - id: prices
//	    label: Tres precios visibles
//	    weight: 30
//	    at_least: {count: 3, content_pattern: '\$\s*\d'}
//	  - id: cta
//	    label: El primer botón es primario
//	    weight: 30
//	    first:
//	      find: {tag: [button]}
//	      then: {classes: [bg-blue-600]}
//
// A check may instead carry an expr program (see evaluate.CompileExpr):
//
//	  - id: cards
//	    weight: 10
//	    expr: 'count(nodes, {.Tag == "article"}) >= 3'
package scenario
