package schema

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cuejson "cuelang.org/go/encoding/json"
	cueyaml "cuelang.org/go/encoding/yaml"

	"github.com/roach88/treelab/internal/tree"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Issue is one validation failure.
type Issue struct {
	// Path locates the offending value, e.g. "0.children.1.tag".
	Path    string
	Message string
	Pos     token.Pos
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Pos.IsValid() {
		fmt.Fprintf(&b, "%s:%d:%d: ", i.Pos.Filename(), i.Pos.Line(), i.Pos.Column())
	}
	if i.Path != "" {
		b.WriteString(i.Path)
		b.WriteString(": ")
	}
	b.WriteString(i.Message)
	return b.String()
}

// ValidationError lists every issue found in a document.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "invalid tree document: " + e.Issues[0].String()
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("invalid tree document: %d issues:\n  %s", len(e.Issues), strings.Join(parts, "\n  "))
}

// Validator checks tree documents against a catalog.
// A Validator holds a CUE context and is not safe for concurrent use.
type Validator struct {
	ctx    *cue.Context
	forest cue.Value
}

// NewValidator compiles the document schema for catalog.
func NewValidator(catalog tree.Catalog) (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(Source(catalog), cue.Filename("treelab-schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{
		ctx:    ctx,
		forest: schema.LookupPath(cue.ParsePath("#Forest")),
	}, nil
}

// Source returns the CUE schema text for catalog.
func Source(catalog tree.Catalog) string {
	tags := catalog.Tags()
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = strconv.Quote(string(t))
	}
	tagExpr := "string"
	if len(quoted) > 0 {
		tagExpr = strings.Join(quoted, " | ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "#Tag: %s\n\n", tagExpr)
	b.WriteString(`#Node: {
	id:        string & !=""
	tag:       #Tag
	content?:  string
	classes?:  [...string]
	children?: [...#Node]
}

#Forest: [...#Node]
`)
	return b.String()
}

// Validate checks data against the schema and for duplicate ids.
// It returns a *ValidationError for schema violations.
func (v *Validator) Validate(data []byte, format Format) error {
	_, err := v.DecodeForest(data, format)
	return err
}

// DecodeForest validates data and decodes it into a normalized forest.
func (v *Validator) DecodeForest(data []byte, format Format) (tree.Forest, error) {
	doc, err := v.build(data, format)
	if err != nil {
		return nil, err
	}

	unified := v.forest.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, toValidationError(err)
	}

	var f tree.Forest
	if err := unified.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode tree document: %w", err)
	}
	f = tree.Normalize(f)

	if issues := duplicateIDs(f); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return f, nil
}

func (v *Validator) build(data []byte, format Format) (cue.Value, error) {
	var doc cue.Value
	switch format {
	case FormatYAML:
		file, err := cueyaml.Extract("document.yaml", data)
		if err != nil {
			return cue.Value{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
		doc = v.ctx.BuildFile(file)
	case FormatJSON:
		expr, err := cuejson.Extract("document.json", data)
		if err != nil {
			return cue.Value{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
		doc = v.ctx.BuildExpr(expr)
	default:
		return cue.Value{}, fmt.Errorf("unsupported format %q", format)
	}
	if err := doc.Err(); err != nil {
		return cue.Value{}, toValidationError(err)
	}
	return doc, nil
}

func toValidationError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Issues: []Issue{{Message: err.Error()}}}
	}
	issues := make([]Issue, 0, len(errs))
	for _, e := range errs {
		format, args := e.Msg()
		issues = append(issues, Issue{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
			Pos:     e.Position(),
		})
	}
	return &ValidationError{Issues: issues}
}

func duplicateIDs(f tree.Forest) []Issue {
	seen := make(map[string]string)
	var issues []Issue
	var visit func(nodes []*tree.Node, prefix string)
	visit = func(nodes []*tree.Node, prefix string) {
		for i, n := range nodes {
			path := prefix + strconv.Itoa(i)
			if first, ok := seen[n.ID]; ok {
				issues = append(issues, Issue{
					Path:    path + ".id",
					Message: fmt.Sprintf("duplicate id %q (first used at %s)", n.ID, first),
				})
			} else {
				seen[n.ID] = path
			}
			visit(n.Children, path+".children.")
		}
	}
	visit(f, "")
	return issues
}
