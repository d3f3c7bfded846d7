package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/treelab/internal/tree"
)

// ClassesOptions holds flags for the classes command.
type ClassesOptions struct {
	*RootOptions
	Category string
	Query    string
}

// NewClassesCommand creates the classes command.
func NewClassesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClassesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Browse the utility class palette",
		Long: `List the utility classes offered to the builder, grouped by category.

--category restricts the list to one group and --query keeps the classes
that contain the text, ignoring case.

Examples:
  treelab classes
  treelab classes --category Fondos
  treelab classes --query hover --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "only this category")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "only classes containing this text")

	return cmd
}

func runClasses(opts *ClassesOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	groups := tree.DefaultClassGroups()

	if opts.Category != "" && !hasCategory(groups, opts.Category) {
		names := make([]string, len(groups))
		for i, g := range groups {
			names[i] = g.Category
		}
		return formatter.fail(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("unknown category %q (one of: %s)", opts.Category, strings.Join(names, ", ")), nil)
	}

	out := []tree.ClassGroup{}
	for _, g := range groups {
		if opts.Category != "" && g.Category != opts.Category {
			continue
		}
		classes := tree.FilterClasses(groups, g.Category, opts.Query)
		if len(classes) == 0 && opts.Category == "" {
			continue
		}
		out = append(out, tree.ClassGroup{Category: g.Category, Classes: classes})
	}
	opts.Logger().Debug("palette filtered", "category", opts.Category, "query", opts.Query, "groups", len(out))

	if formatter.JSON() {
		return formatter.Success(out)
	}
	if len(out) == 0 {
		fmt.Fprintln(formatter.Writer, "No classes match.")
		return nil
	}
	for _, g := range out {
		fmt.Fprintf(formatter.Writer, "%s:\n", g.Category)
		if len(g.Classes) == 0 {
			fmt.Fprintln(formatter.Writer, "  (none)")
			continue
		}
		fmt.Fprintf(formatter.Writer, "  %s\n", strings.Join(g.Classes, " "))
	}
	return nil
}

func hasCategory(groups []tree.ClassGroup, category string) bool {
	for _, g := range groups {
		if g.Category == category {
			return true
		}
	}
	return false
}
