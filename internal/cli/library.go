package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/treelab/internal/library"
	"github.com/roach88/treelab/internal/markup"
	"github.com/roach88/treelab/internal/tree"
)

// LibraryOptions holds flags shared by the library subcommands.
type LibraryOptions struct {
	*RootOptions
	DBPath string // SQLite database path
}

// ComponentSummary is one library entry without its tree.
type ComponentSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
	Seq         int64  `json:"seq"`
	Nodes       int    `json:"nodes"`
}

// ComponentDetail is the JSON payload of library show.
type ComponentDetail struct {
	ComponentSummary
	Markup string      `json:"markup"`
	Tree   tree.Forest `json:"tree"`
}

// NewLibraryCommand creates the library command and its subcommands.
func NewLibraryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LibraryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Save and reuse components",
		Long: `Manage saved components in a SQLite library.

A component is a named copy of a tree. Saved components can be embedded
in a page layout by id.

Examples:
  treelab library save "Tarjeta" card.yaml --db lib.db
  treelab library list --db lib.db
  treelab library show cmp-0190... --db lib.db
  treelab library layout page.yaml --db lib.db --preview`,
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "treelab.db", "library database path")

	cmd.AddCommand(newLibrarySaveCommand(opts))
	cmd.AddCommand(newLibraryListCommand(opts))
	cmd.AddCommand(newLibraryShowCommand(opts))
	cmd.AddCommand(newLibraryFindCommand(opts))
	cmd.AddCommand(newLibraryDeleteCommand(opts))
	cmd.AddCommand(newLibraryLayoutCommand(opts))

	return cmd
}

// openLibrary opens the database named by --db.
func openLibrary(opts *LibraryOptions, formatter *OutputFormatter) (*library.Store, error) {
	s, err := library.Open(opts.DBPath, library.WithLogger(opts.Logger()))
	if err != nil {
		return nil, formatter.fail(ExitCommandError, ErrCodeLibrary, fmt.Sprintf("failed to open library %s", opts.DBPath), err)
	}
	return s, nil
}

func summarizeComponent(c library.Component) ComponentSummary {
	return ComponentSummary{
		ID:          c.ID,
		Name:        c.Name,
		Fingerprint: c.Fingerprint,
		Seq:         c.Seq,
		Nodes:       len(tree.Walk(c.Tree)),
	}
}

func newLibrarySaveCommand(opts *LibraryOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "save <name> <tree-file>",
		Short:         "Save a tree file as a component",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

			f, err := readTreeOrFail(formatter, args[1])
			if err != nil {
				return err
			}

			s, err := openLibrary(opts, formatter)
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := s.Save(cmd.Context(), args[0], f)
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeLibrary, "failed to save component", err)
			}

			if formatter.JSON() {
				return formatter.Success(summarizeComponent(c))
			}
			fmt.Fprintf(formatter.Writer, "Saved %q as %s\n", c.Name, c.ID)
			return nil
		},
	}
}

func newLibraryListCommand(opts *LibraryOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved components, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

			s, err := openLibrary(opts, formatter)
			if err != nil {
				return err
			}
			defer s.Close()

			all, err := s.List(cmd.Context())
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeLibrary, "failed to list components", err)
			}
			return outputComponents(formatter, all)
		},
	}
}

func newLibraryFindCommand(opts *LibraryOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "find <tree-file>",
		Short:         "List saved components equal to a tree file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

			f, err := readTreeOrFail(formatter, args[0])
			if err != nil {
				return err
			}

			s, err := openLibrary(opts, formatter)
			if err != nil {
				return err
			}
			defer s.Close()

			found, err := s.FindByFingerprint(cmd.Context(), tree.Fingerprint(f))
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeLibrary, "failed to search components", err)
			}
			return outputComponents(formatter, found)
		},
	}
}

func outputComponents(formatter *OutputFormatter, components []library.Component) error {
	summaries := make([]ComponentSummary, len(components))
	for i, c := range components {
		summaries[i] = summarizeComponent(c)
	}
	if formatter.JSON() {
		return formatter.Success(summaries)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(formatter.Writer, "No components.")
		return nil
	}
	for _, c := range summaries {
		fmt.Fprintf(formatter.Writer, "%-44s %-24s %d nodes\n", c.ID, c.Name, c.Nodes)
	}
	return nil
}

func newLibraryShowCommand(opts *LibraryOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Show a saved component's markup",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

			s, err := openLibrary(opts, formatter)
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := s.Get(cmd.Context(), args[0])
			if errors.Is(err, library.ErrNotFound) {
				return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("component not found: %s", args[0]), nil)
			}
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeLibrary, "failed to load component", err)
			}

			detail := ComponentDetail{
				ComponentSummary: summarizeComponent(c),
				Markup:           markup.Serialize(c.Tree),
				Tree:             c.Tree,
			}
			if formatter.JSON() {
				return formatter.Success(detail)
			}
			fmt.Fprintf(formatter.Writer, "%s (%s)\n", boldText("%s", c.Name), c.ID)
			fmt.Fprintln(formatter.Writer, detail.Markup)
			return nil
		},
	}
}

func newLibraryDeleteCommand(opts *LibraryOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a saved component",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

			s, err := openLibrary(opts, formatter)
			if err != nil {
				return err
			}
			defer s.Close()

			removed, err := s.Delete(cmd.Context(), args[0])
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeLibrary, "failed to delete component", err)
			}

			if formatter.JSON() {
				return formatter.Success(map[string]any{"id": args[0], "removed": removed})
			}
			if removed {
				fmt.Fprintf(formatter.Writer, "Deleted %s\n", args[0])
			} else {
				fmt.Fprintf(formatter.Writer, "No component %s\n", args[0])
			}
			return nil
		},
	}
}

// LayoutOptions holds flags for library layout.
type LayoutOptions struct {
	*LibraryOptions
	Preview bool
	Content []string // component ids appended to the content slot
}

func newLibraryLayoutCommand(libOpts *LibraryOptions) *cobra.Command {
	opts := &LayoutOptions{LibraryOptions: libOpts}

	cmd := &cobra.Command{
		Use:   "layout [layout-file]",
		Short: "Render a page layout with saved components",
		Long: `Render a page layout, embedding saved components by id.

The layout file is YAML with the fields of the default layout; fields left
out keep their default values. Without a file the default layout is used.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

			l := markup.DefaultLayout()
			if len(args) == 1 {
				var err error
				if l, err = loadLayout(args[0]); err != nil {
					return formatter.fail(ExitCommandError, ErrCodeGeneric, "failed to load layout", err)
				}
			}
			l.ContentComponentIDs = append(l.ContentComponentIDs, opts.Content...)

			s, err := openLibrary(opts.LibraryOptions, formatter)
			if err != nil {
				return err
			}
			defer s.Close()

			resolve, err := s.Resolve(cmd.Context())
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeLibrary, "failed to read components", err)
			}

			out := markup.RenderLayout(l, resolve)
			if opts.Preview {
				out = markup.PreviewDocument(out)
			}
			if formatter.JSON() {
				return formatter.Success(map[string]string{"markup": out})
			}
			fmt.Fprintln(formatter.Writer, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "wrap markup in a preview document")
	cmd.Flags().StringArrayVar(&opts.Content, "content", nil, "component id for the content slot (repeatable)")

	return cmd
}

// loadLayout reads a layout file over the default layout. Unknown fields are
// rejected.
func loadLayout(path string) (markup.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return markup.Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	l := markup.DefaultLayout()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&l); err != nil && !errors.Is(err, io.EOF) {
		return markup.Layout{}, fmt.Errorf("failed to parse layout YAML: %w", err)
	}
	return l, nil
}
