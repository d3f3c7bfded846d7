package tree

import (
	"bytes"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON for a forest.
// It is the input of Fingerprint. Strings are normalized, so it is not a
// lossless encoding of the forest.
//
// Differences from encoding/json:
//  1. Object keys sorted by UTF-16 code units (node keys are ASCII, so the
//     fixed order children, classes, content, id, tag applies)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. Nil collections are written as []
func MarshalCanonical(f Forest) []byte {
	var buf bytes.Buffer
	writeForest(&buf, f)
	return buf.Bytes()
}

func writeForest(buf *bytes.Buffer, f Forest) {
	buf.WriteByte('[')
	first := true
	for _, n := range f {
		if n == nil {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		writeNode(buf, n)
	}
	buf.WriteByte(']')
}

func writeNode(buf *bytes.Buffer, n *Node) {
	buf.WriteString(`{"children":`)
	writeForest(buf, n.Children)
	buf.WriteString(`,"classes":[`)
	for i, c := range n.Classes {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, c)
	}
	buf.WriteString(`],"content":`)
	writeString(buf, n.Content)
	buf.WriteString(`,"id":`)
	writeString(buf, n.ID)
	buf.WriteString(`,"tag":`)
	writeString(buf, string(n.Tag))
	buf.WriteByte('}')
}

// writeString writes s as a canonical JSON string.
// Only the quote, the backslash and control characters (U+0000-U+001F) are
// escaped; U+2028 and U+2029 are written literally.
func writeString(buf *bytes.Buffer, s string) {
	s = norm.NFC.String(s)
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}
