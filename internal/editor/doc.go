// Package editor implements persistent structural edits over a tree.Forest.
//
// Every operation takes a forest value and returns a new one. Nodes on the path
// from an edited node to its root are rebuilt; every other subtree is shared by
// pointer with the input, so callers can detect change with a pointer compare.
//
// Missing ids are never an error: the edit is a no-op. The editor does not scan
// for duplicate ids or cycles; keeping ids unique is the caller's job, which is
// why new nodes should come from (*Editor).CreateNode.
package editor
