// Package schema validates tree documents read from disk.
//
// A tree document is a JSON or YAML list of nodes:
//
//	- id: card
//	  tag: article
//	  classes: [rounded-xl, border]
//	  children:
//	    - {id: title, tag: h3, content: Reloj}
//
// The schema is written in CUE and generated from a tree.Catalog, so the set
// of accepted tags follows the catalog the caller injects. Validation also
// rejects duplicate ids, which the editor itself never checks.
package schema
