package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/treelab/internal/editor"
	"github.com/roach88/treelab/internal/tree"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	Example string // example slug or name
	Prefix  string // id prefix applied with CloneWithPrefix
	Force   bool   // overwrite an existing file
	List    bool   // list examples instead of creating a file
}

// ExampleSummary is one template in new --list output.
type ExampleSummary struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Nodes int    `json:"nodes"`
}

// NewResult is the JSON payload of new.
type NewResult struct {
	File        string `json:"file"`
	Example     string `json:"example"`
	Nodes       int    `json:"nodes"`
	Fingerprint string `json:"fingerprint"`
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new [tree-file]",
		Short: "Start a tree file from an example",
		Long: `Write a new tree file from one of the example templates.

The format follows the file extension (.yaml/.yml or JSON). Without a file,
or with "-", the tree is printed as YAML. With --prefix every id is rewritten
as <prefix>-<index>-<id>, so several copies can live in one document.

Examples:
  treelab new --list
  treelab new card.yaml --example tarjeta-basica
  treelab new button.json --example "Boton primario" --prefix cta`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runNew(opts, path, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Example, "example", "e", "inicial", "example slug or name")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "rewrite ids with this prefix")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list the examples")

	return cmd
}

func runNew(opts *NewOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	examples := tree.DefaultExamples()

	if opts.List {
		return outputExamples(formatter, examples)
	}

	ex, ok := tree.FindExample(examples, opts.Example)
	if !ok {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("unknown example %q", opts.Example), nil)
	}
	f := ex.Tree
	if opts.Prefix != "" {
		f = editor.CloneWithPrefix(f, opts.Prefix)
	}
	opts.Logger().Debug("example instantiated", "example", ex.Slug, "prefix", opts.Prefix, "file", path)

	if path == "-" {
		data, err := encodeTree(f, "tree.yaml")
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeGeneric, "failed to encode tree", err)
		}
		_, err = formatter.Writer.Write(data)
		return err
	}

	if !opts.Force {
		if _, err := os.Stat(path); err == nil {
			return formatter.fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
		} else if !errors.Is(err, os.ErrNotExist) {
			return formatter.fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("failed to check %s", path), err)
		}
	}
	if err := writeTree(f, path); err != nil {
		return formatter.fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("failed to write %s", path), err)
	}

	result := NewResult{
		File:        path,
		Example:     ex.Slug,
		Nodes:       len(tree.Walk(f)),
		Fingerprint: tree.Fingerprint(f),
	}
	if formatter.JSON() {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "Created %s from %q (%d nodes)\n", path, ex.Name, result.Nodes)
	return nil
}

func outputExamples(formatter *OutputFormatter, examples []tree.Example) error {
	summaries := make([]ExampleSummary, len(examples))
	for i, e := range examples {
		summaries[i] = ExampleSummary{Slug: e.Slug, Name: e.Name, Nodes: len(tree.Walk(e.Tree))}
	}
	if formatter.JSON() {
		return formatter.Success(summaries)
	}
	for _, s := range summaries {
		fmt.Fprintf(formatter.Writer, "%-16s %-20s %d nodes\n", s.Slug, s.Name, s.Nodes)
	}
	return nil
}
