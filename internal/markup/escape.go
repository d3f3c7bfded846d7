package markup

import "strings"

// escaper scans once and never rescans replaced text, so introduced entities
// are not escaped twice. Output equals applying the pairs in order.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape makes s safe for text and quoted attribute positions.
func Escape(s string) string {
	return escaper.Replace(s)
}

// EncodeURIComponent percent-encodes s the way browsers encode a URI
// component: everything except A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is written as
// %XX over its UTF-8 bytes, with upper-case hex.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
