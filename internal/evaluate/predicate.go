package evaluate

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/treelab/internal/tree"
)

// Matcher tests a single node.
type Matcher func(n *tree.Node) bool

// fold lowercases s with the locale-independent Unicode mapping, so "ß" stays
// "ß" and only letter case differs between matching strings. A cases.Caser
// keeps state, so each call gets its own.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// HasClass matches nodes carrying the exact token.
func HasClass(class string) Matcher {
	return func(n *tree.Node) bool {
		return n.HasClass(class)
	}
}

// HasAllClasses matches nodes carrying every token, in any order.
func HasAllClasses(classes ...string) Matcher {
	return func(n *tree.Node) bool {
		for _, c := range classes {
			if !n.HasClass(c) {
				return false
			}
		}
		return true
	}
}

// HasAnyClass matches nodes carrying at least one of the tokens.
func HasAnyClass(classes ...string) Matcher {
	return func(n *tree.Node) bool {
		for _, c := range classes {
			if n.HasClass(c) {
				return true
			}
		}
		return false
	}
}

// ClassMatches matches nodes with at least one token matching re.
func ClassMatches(re *regexp.Regexp) Matcher {
	return func(n *tree.Node) bool {
		for _, c := range n.Classes {
			if re.MatchString(c) {
				return true
			}
		}
		return false
	}
}

// ClassHasPrefix matches nodes with a token starting with any of prefixes.
func ClassHasPrefix(prefixes ...string) Matcher {
	return func(n *tree.Node) bool {
		for _, c := range n.Classes {
			for _, p := range prefixes {
				if strings.HasPrefix(c, p) {
					return true
				}
			}
		}
		return false
	}
}

// TagIs matches nodes whose tag is one of tags.
func TagIs(tags ...tree.Tag) Matcher {
	return func(n *tree.Node) bool {
		for _, t := range tags {
			if n.Tag == t {
				return true
			}
		}
		return false
	}
}

// TagHasPrefix matches nodes whose tag starts with prefix ("h" for headings).
func TagHasPrefix(prefix string) Matcher {
	return func(n *tree.Node) bool {
		return strings.HasPrefix(string(n.Tag), prefix)
	}
}

// ContentContains matches nodes whose content contains s, ignoring case.
func ContentContains(s string) Matcher {
	want := fold(s)
	return func(n *tree.Node) bool {
		return strings.Contains(fold(n.Content), want)
	}
}

// ContentEquals matches nodes whose trimmed content equals s, ignoring case.
func ContentEquals(s string) Matcher {
	want := fold(strings.TrimSpace(s))
	return func(n *tree.Node) bool {
		return fold(strings.TrimSpace(n.Content)) == want
	}
}

// ContentMatches matches nodes whose content matches re.
func ContentMatches(re *regexp.Regexp) Matcher {
	return func(n *tree.Node) bool {
		return re.MatchString(n.Content)
	}
}

// ContentNotBlank matches nodes with non-whitespace content.
func ContentNotBlank() Matcher {
	return func(n *tree.Node) bool {
		return strings.TrimSpace(n.Content) != ""
	}
}

// All matches when every matcher matches. All() matches everything.
func All(ms ...Matcher) Matcher {
	return func(n *tree.Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// AnyOf matches when at least one matcher matches.
func AnyOf(ms ...Matcher) Matcher {
	return func(n *tree.Node) bool {
		for _, m := range ms {
			if m(n) {
				return true
			}
		}
		return false
	}
}

// Not inverts m.
func Not(m Matcher) Matcher {
	return func(n *tree.Node) bool {
		return !m(n)
	}
}

// Any passes when some node matches.
func Any(m Matcher) Predicate {
	return AtLeast(1, m)
}

// AtLeast passes when at least count nodes match.
func AtLeast(count int, m Matcher) Predicate {
	return func(nodes []*tree.Node) bool {
		if count <= 0 {
			return true
		}
		seen := 0
		for _, n := range nodes {
			if m(n) {
				seen++
				if seen >= count {
					return true
				}
			}
		}
		return false
	}
}

// First returns the first node matching m, or nil.
func First(nodes []*tree.Node, m Matcher) *tree.Node {
	for _, n := range nodes {
		if m(n) {
			return n
		}
	}
	return nil
}

// FirstThen locates the first node matching find and passes when it exists
// and also matches then. Later nodes matching find are not considered.
func FirstThen(find, then Matcher) Predicate {
	return func(nodes []*tree.Node) bool {
		n := First(nodes, find)
		return n != nil && then(n)
	}
}

// Every passes when all predicates pass.
func Every(ps ...Predicate) Predicate {
	return func(nodes []*tree.Node) bool {
		for _, p := range ps {
			if !p(nodes) {
				return false
			}
		}
		return true
	}
}
