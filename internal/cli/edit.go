package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/treelab/internal/editor"
	"github.com/roach88/treelab/internal/schema"
	"github.com/roach88/treelab/internal/tree"
)

// EditOptions holds flags shared by the edit subcommands.
type EditOptions struct {
	*RootOptions
	Output string // write here instead of back to the input file ("-" for stdout)
}

// nodeFlags holds the node fields of one subcommand.
type nodeFlags struct {
	ID      string
	Tag     string
	Content string
	Classes []string
}

// EditResult is the JSON payload of the edit subcommands.
type EditResult struct {
	File        string    `json:"file"`
	Op          editor.Op `json:"op"`
	ID          string    `json:"id"`
	Nodes       int       `json:"nodes"`
	Fingerprint string    `json:"fingerprint"`
}

// NewEditCommand creates the edit command and its subcommands.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Apply editor operations to a tree file",
		Long: `Apply one editor operation to a tree file and write the result back.

Missing target ids leave the tree unchanged. The edited tree is validated
before it is written.

Examples:
  treelab edit add-child card.yaml card --tag button --content "Comprar" --class rounded
  treelab edit add-root card.yaml --tag footer --content "Gracias"
  treelab edit update card.yaml title --content "Nuevo título"
  treelab edit remove card.yaml price
  treelab edit add-class card.yaml buy bg-blue-600 -o out.yaml`,
	}

	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "", "output file (default: overwrite input, - for stdout)")

	cmd.AddCommand(newAddNodeCommand(opts, editor.OpAddChild))
	cmd.AddCommand(newAddNodeCommand(opts, editor.OpAddRoot))
	cmd.AddCommand(newUpdateCommand(opts))
	cmd.AddCommand(newRemoveCommand(opts))
	cmd.AddCommand(newClassCommand(opts, editor.OpAddClass))
	cmd.AddCommand(newClassCommand(opts, editor.OpRemoveClass))

	return cmd
}

// cliName turns an op such as add_child into its subcommand name add-child.
func cliName(op editor.Op) string {
	b := []byte(op)
	for i, c := range b {
		if c == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}

func newAddNodeCommand(opts *EditOptions, op editor.Op) *cobra.Command {
	use := cliName(op) + " <tree-file> <parent-id>"
	short := "Append a new child to a node"
	args := cobra.ExactArgs(2)
	if op == editor.OpAddRoot {
		use = cliName(op) + " <tree-file>"
		short = "Append a new root node"
		args = cobra.ExactArgs(1)
	}
	nf := &nodeFlags{}

	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          args,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := editor.Edit{Op: op}
			if op == editor.OpAddChild {
				ed.ID = args[1]
			}
			ed.Node = nf.node(editor.New())
			return runEdit(opts, args[0], ed, cmd)
		},
	}

	cmd.Flags().StringVar(&nf.ID, "id", "", "id for the new node (default: generated)")
	cmd.Flags().StringVar(&nf.Tag, "tag", string(editor.DefaultTag), "tag for the new node")
	cmd.Flags().StringVar(&nf.Content, "content", editor.DefaultContent, "content for the new node")
	cmd.Flags().StringArrayVar(&nf.Classes, "class", nil, "class for the new node (repeatable)")

	return cmd
}

func newUpdateCommand(opts *EditOptions) *cobra.Command {
	nf := &nodeFlags{}
	cmd := &cobra.Command{
		Use:   "update <tree-file> <id>",
		Short: "Change a node's tag, content or classes",
		Long: `Change a node's tag, content or classes. Only the flags given are applied;
--class replaces the whole class list.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := editor.Edit{Op: editor.OpUpdate, ID: args[1]}
			flags := cmd.Flags()
			if flags.Changed("tag") {
				ed.Tag = tree.Tag(nf.Tag)
			}
			if flags.Changed("content") {
				content := nf.Content
				ed.Content = &content
			}
			if flags.Changed("class") {
				ed.Classes = editor.UniqueClasses(nf.Classes)
			}
			if ed.Tag == "" && ed.Content == nil && ed.Classes == nil {
				formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
				return formatter.fail(ExitCommandError, ErrCodeBadEdit, "update needs at least one of --tag, --content, --class", nil)
			}
			return runEdit(opts, args[0], ed, cmd)
		},
	}

	cmd.Flags().StringVar(&nf.Tag, "tag", "", "new tag")
	cmd.Flags().StringVar(&nf.Content, "content", "", "new content")
	cmd.Flags().StringArrayVar(&nf.Classes, "class", nil, "new class list (repeatable)")

	return cmd
}

func newRemoveCommand(opts *EditOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <tree-file> <id>",
		Short:         "Remove a node and its subtree",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, args[0], editor.Edit{Op: editor.OpRemove, ID: args[1]}, cmd)
		},
	}
}

func newClassCommand(opts *EditOptions, op editor.Op) *cobra.Command {
	short := "Add a class token to a node"
	if op == editor.OpRemoveClass {
		short = "Remove a class token from a node"
	}
	return &cobra.Command{
		Use:           cliName(op) + " <tree-file> <id> <class>",
		Short:         short,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, args[0], editor.Edit{Op: op, ID: args[1], Class: args[2]}, cmd)
		},
	}
}

func runEdit(opts *EditOptions, path string, ed editor.Edit, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	f, err := readTreeOrFail(formatter, path)
	if err != nil {
		return err
	}

	next, err := editor.New().Apply(f, ed)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeBadEdit, "invalid edit", err)
	}
	next = tree.Normalize(next)

	if err := validateEdited(next); err != nil {
		return formatter.fail(ExitFailure, ErrCodeInvalidTree, "edit produced an invalid tree", err)
	}

	target := opts.Output
	if target == "" {
		target = path
	}

	id := ed.ID
	if ed.Node != nil {
		id = ed.Node.ID
	}
	opts.Logger().Debug("edit applied", "op", ed.Op, "id", id, "file", target)

	if target == "-" {
		data, err := encodeTree(next, path)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeGeneric, "failed to encode tree", err)
		}
		_, err = formatter.Writer.Write(data)
		return err
	}
	if err := writeTree(next, target); err != nil {
		return formatter.fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("failed to write %s", target), err)
	}

	result := EditResult{
		File:        target,
		Op:          ed.Op,
		ID:          id,
		Nodes:       len(tree.Walk(next)),
		Fingerprint: tree.Fingerprint(next),
	}
	if formatter.JSON() {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "%s %s: wrote %s (%d nodes)\n", cliName(ed.Op), id, target, result.Nodes)
	return nil
}

// node builds the node inserted by add-child and add-root.
func (nf *nodeFlags) node(e *editor.Editor) *tree.Node {
	var n *tree.Node
	if nf.ID != "" {
		tag := tree.Tag(nf.Tag)
		if tag == "" {
			tag = editor.DefaultTag
		}
		n = &tree.Node{ID: nf.ID, Tag: tag, Content: nf.Content}
	} else {
		n = e.CreateNode(tree.Tag(nf.Tag), nf.Content)
	}
	n.Classes = editor.UniqueClasses(nf.Classes)
	n.Children = []*tree.Node{}
	return n
}

// validateEdited runs the edited tree back through the document schema, which
// catches unknown tags and ids given with --id that are already in use.
func validateEdited(f tree.Forest) error {
	r, err := newTreeReader()
	if err != nil {
		return err
	}
	data, err := encodeTree(f, "tree.json")
	if err != nil {
		return err
	}
	return r.validator.Validate(data, schema.FormatJSON)
}
