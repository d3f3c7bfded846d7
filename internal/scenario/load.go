package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/treelab/internal/editor"
	"github.com/roach88/treelab/internal/evaluate"
	"github.com/roach88/treelab/internal/tree"
)

// Definition is the YAML form of a scenario.
type Definition struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Level       string `yaml:"level,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Starter is the tree a candidate begins from.
	Starter tree.Forest `yaml:"starter,omitempty"`

	// StarterPrefix, when set, rewrites starter ids with
	// editor.CloneWithPrefix so several scenarios can share a starter shape.
	StarterPrefix string `yaml:"starter_prefix,omitempty"`

	Target tree.Forest `yaml:"target,omitempty"`

	Checks []CheckDef `yaml:"checks"`
}

// CheckDef declares one weighted check. Exactly one of Any, AtLeast, First
// or Expr must be set.
type CheckDef struct {
	ID     string  `yaml:"id"`
	Label  string  `yaml:"label,omitempty"`
	Weight float64 `yaml:"weight"`

	// Any passes when some node matches the rule.
	Any *Rule `yaml:"any,omitempty"`

	// AtLeast passes when Count or more nodes match the rule.
	AtLeast *CountRule `yaml:"at_least,omitempty"`

	// First passes when the first node matching Find also matches Then.
	First *FirstRule `yaml:"first,omitempty"`

	// Expr is an expr program over nodes (see evaluate.CompileExpr).
	Expr string `yaml:"expr,omitempty"`
}

// Rule matches a single node. Every set field must match; an empty rule
// matches every node.
type Rule struct {
	// Tag lists acceptable tags.
	Tag []string `yaml:"tag,omitempty"`
	// Classes must all be present.
	Classes []string `yaml:"classes,omitempty"`
	// AnyClass needs at least one present.
	AnyClass []string `yaml:"any_class,omitempty"`
	// ClassPattern is a regexp some class must match.
	ClassPattern string `yaml:"class_pattern,omitempty"`
	// ContentContains is a case-insensitive substring of the content.
	ContentContains string `yaml:"content_contains,omitempty"`
	// ContentPattern is a regexp the content must match.
	ContentPattern string `yaml:"content_pattern,omitempty"`
}

// CountRule is a Rule with a minimum match count.
type CountRule struct {
	Count int `yaml:"count"`
	Rule  `yaml:",inline"`
}

// FirstRule locates a node with Find and tests it with Then.
type FirstRule struct {
	Find Rule `yaml:"find"`
	Then Rule `yaml:"then"`
}

// Load reads and compiles a scenario YAML file.
// Unknown fields are rejected.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and compiles a scenario definition.
func Parse(data []byte) (*Scenario, error) {
	var def Definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return def.Compile()
}

// LoadDir loads every *.yaml and *.yml file in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	scenarios := make([]*Scenario, 0, len(names))
	seen := make(map[string]string)
	for _, name := range names {
		s, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("scenario %q defined in both %s and %s", s.ID, prev, name)
		}
		seen[s.ID] = name
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Compile validates the definition and builds its check battery.
func (d *Definition) Compile() (*Scenario, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("invalid scenario: id is required")
	}
	if len(d.Checks) == 0 {
		return nil, fmt.Errorf("invalid scenario %q: checks list is required and must be non-empty", d.ID)
	}

	checks := make([]evaluate.Check, 0, len(d.Checks))
	seen := make(map[string]bool)
	for i, cd := range d.Checks {
		c, err := cd.compile()
		if err != nil {
			return nil, fmt.Errorf("invalid scenario %q: checks[%d]: %w", d.ID, i, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("invalid scenario %q: checks[%d]: duplicate check id %q", d.ID, i, c.ID)
		}
		seen[c.ID] = true
		checks = append(checks, c)
	}

	starter := tree.Normalize(d.Starter)
	if d.StarterPrefix != "" {
		starter = editor.CloneWithPrefix(starter, d.StarterPrefix)
	}

	title := d.Title
	if title == "" {
		title = d.ID
	}
	return &Scenario{
		ID:          d.ID,
		Title:       title,
		Level:       d.Level,
		Description: d.Description,
		Starter:     starter,
		Target:      tree.Normalize(d.Target),
		Checks:      checks,
	}, nil
}

func (cd CheckDef) compile() (evaluate.Check, error) {
	if cd.ID == "" {
		return evaluate.Check{}, fmt.Errorf("id is required")
	}
	if cd.Weight <= 0 {
		return evaluate.Check{}, fmt.Errorf("check %q: weight must be positive, got %v", cd.ID, cd.Weight)
	}

	set := 0
	for _, ok := range []bool{cd.Any != nil, cd.AtLeast != nil, cd.First != nil, cd.Expr != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return evaluate.Check{}, fmt.Errorf("check %q: exactly one of any, at_least, first, expr is required", cd.ID)
	}

	var (
		pred evaluate.Predicate
		err  error
	)
	switch {
	case cd.Any != nil:
		pred, err = anyPredicate(*cd.Any)
	case cd.AtLeast != nil:
		pred, err = atLeastPredicate(*cd.AtLeast)
	case cd.First != nil:
		pred, err = firstPredicate(*cd.First)
	default:
		pred, err = evaluate.CompileExpr(cd.Expr)
	}
	if err != nil {
		return evaluate.Check{}, fmt.Errorf("check %q: %w", cd.ID, err)
	}

	label := cd.Label
	if label == "" {
		label = cd.ID
	}
	return evaluate.Check{ID: cd.ID, Label: label, Weight: cd.Weight, Predicate: pred}, nil
}

func anyPredicate(r Rule) (evaluate.Predicate, error) {
	m, err := r.Matcher()
	if err != nil {
		return nil, err
	}
	return evaluate.Any(m), nil
}

func atLeastPredicate(r CountRule) (evaluate.Predicate, error) {
	if r.Count < 1 {
		return nil, fmt.Errorf("at_least.count must be at least 1, got %d", r.Count)
	}
	m, err := r.Rule.Matcher()
	if err != nil {
		return nil, err
	}
	return evaluate.AtLeast(r.Count, m), nil
}

func firstPredicate(r FirstRule) (evaluate.Predicate, error) {
	find, err := r.Find.Matcher()
	if err != nil {
		return nil, fmt.Errorf("first.find: %w", err)
	}
	then, err := r.Then.Matcher()
	if err != nil {
		return nil, fmt.Errorf("first.then: %w", err)
	}
	return evaluate.FirstThen(find, then), nil
}

// Matcher compiles the rule.
func (r Rule) Matcher() (evaluate.Matcher, error) {
	var ms []evaluate.Matcher
	if len(r.Tag) > 0 {
		tags := make([]tree.Tag, len(r.Tag))
		for i, t := range r.Tag {
			tags[i] = tree.Tag(t)
		}
		ms = append(ms, evaluate.TagIs(tags...))
	}
	if len(r.Classes) > 0 {
		ms = append(ms, evaluate.HasAllClasses(r.Classes...))
	}
	if len(r.AnyClass) > 0 {
		ms = append(ms, evaluate.HasAnyClass(r.AnyClass...))
	}
	if r.ClassPattern != "" {
		re, err := regexp.Compile(r.ClassPattern)
		if err != nil {
			return nil, fmt.Errorf("class_pattern: %w", err)
		}
		ms = append(ms, evaluate.ClassMatches(re))
	}
	if r.ContentContains != "" {
		ms = append(ms, evaluate.ContentContains(r.ContentContains))
	}
	if r.ContentPattern != "" {
		re, err := regexp.Compile(r.ContentPattern)
		if err != nil {
			return nil, fmt.Errorf("content_pattern: %w", err)
		}
		ms = append(ms, evaluate.ContentMatches(re))
	}
	return evaluate.All(ms...), nil
}
