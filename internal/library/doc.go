// Package library stores named component trees in SQLite.
//
// A component is a saved forest that can be reloaded into the editor or
// placed into page layout slots (see markup.RenderLayout). Trees are kept as
// plain JSON, byte for byte, next to their canonical fingerprint, so
// identical trees can be found regardless of how they were built.
//
// Components are ordered by a logical sequence number assigned on save; List
// returns newest first.
package library
