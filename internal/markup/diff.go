package markup

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp marks a line in a markup diff.
type DiffOp byte

const (
	DiffEqual  DiffOp = ' '
	DiffInsert DiffOp = '+'
	DiffDelete DiffOp = '-'
)

// DiffLine is one line of a markup diff. Insert means "present in the target,
// missing from the candidate".
type DiffLine struct {
	Op   DiffOp `json:"op"`
	Text string `json:"text"`
}

// SplitTags puts every tag on its own line so a diff of two one-line renderings
// points at the element that differs.
func SplitTags(markup string) string {
	return strings.ReplaceAll(markup, "><", ">\n<")
}

// Diff compares candidate with target line by line after SplitTags.
func Diff(candidate, target string) []DiffLine {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(SplitTags(candidate), SplitTags(target))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffpatch.DiffInsert:
			op = DiffInsert
		case diffpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out = append(out, DiffLine{Op: op, Text: line})
		}
	}
	return out
}

// Identical reports whether a diff has no insertions or deletions.
func Identical(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Op != DiffEqual {
			return false
		}
	}
	return true
}

// FormatDiff renders lines in unified style ("+ ", "- ", "  " prefixes).
func FormatDiff(lines []DiffLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteByte(byte(l.Op))
		b.WriteByte(' ')
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
