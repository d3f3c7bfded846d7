package evaluate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/roach88/treelab/internal/tree"
)

// NodeView is the read-only shape of a node inside a check script.
type NodeView struct {
	ID      string
	Tag     string
	Content string
	Classes []string
	// Children counts direct children.
	Children int
}

// CompileExpr compiles a boolean expr program into a Predicate.
//
// The program sees one variable, nodes, the preorder flattening of the forest
// as []NodeView, plus these helpers:
//
//	hasClass(node, "text-white")
//	hasAll(node, ["rounded-xl", "border"])
//	classLike(node, "^shadow")      // some class matches the regexp
//	hasText(node, "panel")          // case-insensitive content substring
//
// Example:
//
//	any(nodes, {.Tag == "button" && hasAll(#, ["bg-blue-600", "text-white"])})
//
// Errors at run time make the check fail rather than abort the battery.
func CompileExpr(src string) (Predicate, error) {
	program, err := expr.Compile(src, exprOptions()...)
	if err != nil {
		return nil, fmt.Errorf("compile check expression: %w", err)
	}
	return func(nodes []*tree.Node) bool {
		return runProgram(program, nodes)
	}, nil
}

func runProgram(program *vm.Program, nodes []*tree.Node) bool {
	out, err := expr.Run(program, map[string]any{"nodes": views(nodes)})
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

func views(nodes []*tree.Node) []NodeView {
	out := make([]NodeView, len(nodes))
	for i, n := range nodes {
		out[i] = NodeView{
			ID:       n.ID,
			Tag:      string(n.Tag),
			Content:  n.Content,
			Classes:  n.Classes,
			Children: len(n.Children),
		}
	}
	return out
}

var patternCache sync.Map // string -> *regexp.Regexp

func cachedPattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache.Store(pattern, re)
	return re, nil
}

func exprOptions() []expr.Option {
	return []expr.Option{
		expr.Env(map[string]any{"nodes": []NodeView{}}),
		expr.AsBool(),
		expr.Function("hasClass", func(params ...any) (any, error) {
			n := params[0].(NodeView)
			return slices.Contains(n.Classes, params[1].(string)), nil
		},
			new(func(NodeView, string) bool)),
		expr.Function("hasAll", func(params ...any) (any, error) {
			n := params[0].(NodeView)
			for _, c := range params[1].([]any) {
				s, ok := c.(string)
				if !ok || !slices.Contains(n.Classes, s) {
					return false, nil
				}
			}
			return true, nil
		},
			new(func(NodeView, []any) bool)),
		expr.Function("classLike", func(params ...any) (any, error) {
			n := params[0].(NodeView)
			re, err := cachedPattern(params[1].(string))
			if err != nil {
				return nil, err
			}
			for _, c := range n.Classes {
				if re.MatchString(c) {
					return true, nil
				}
			}
			return false, nil
		},
			new(func(NodeView, string) bool)),
		expr.Function("hasText", func(params ...any) (any, error) {
			n := params[0].(NodeView)
			return strings.Contains(fold(n.Content), fold(params[1].(string))), nil
		},
			new(func(NodeView, string) bool)),
	}
}
