// Package tree defines the document model shared by every other treelab package.
//
// A document is a Forest: an ordered sequence of root Nodes. Each Node carries a
// tag, a text content, an ordered list of opaque style-class tokens and an ordered
// list of children.
//
// This package contains types and pure functions only. All other internal
// packages import tree; tree imports nothing internal.
//
// Key design constraints:
//   - Nodes are values. Nothing in treelab mutates a *Node that is reachable from a
//     Forest it was handed; edits produce new nodes along the edited path.
//   - Classes and Children are never nil after Normalize.
//   - The set of valid tags is data (Catalog), never hard-coded in logic.
//   - JSON and YAML field names: id, tag, content, classes, children.
package tree
