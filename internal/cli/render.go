package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/roach88/treelab/internal/markup"
	"github.com/roach88/treelab/internal/tree"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Preview bool // wrap the markup in a standalone document
	Watch   bool // re-render whenever the file changes
}

// RenderResult is the JSON payload of the render command.
type RenderResult struct {
	File        string `json:"file"`
	Markup      string `json:"markup"`
	Fingerprint string `json:"fingerprint"`
	Nodes       int    `json:"nodes"`
}

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 50 * time.Millisecond

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <tree-file>",
		Short: "Serialize a tree file to markup",
		Long: `Serialize a YAML or JSON tree file to markup text.

With --preview the markup is wrapped in a standalone HTML document.
With --watch the file is rendered again on every change until interrupted.

Examples:
  treelab render card.yaml
  treelab render card.yaml --preview > card.html
  treelab render card.yaml --watch`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return runRenderWatch(ctx, opts, args[0], cmd)
			}
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "wrap markup in a preview document")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "re-render when the file changes")

	return cmd
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	f, err := readTreeOrFail(formatter, path)
	if err != nil {
		return err
	}
	return writeRender(formatter, opts, path, f)
}

func writeRender(formatter *OutputFormatter, opts *RenderOptions, path string, f tree.Forest) error {
	out := markup.Serialize(f)
	if opts.Preview {
		out = markup.PreviewDocument(out)
	}

	if formatter.JSON() {
		return formatter.Success(RenderResult{
			File:        path,
			Markup:      out,
			Fingerprint: tree.Fingerprint(f),
			Nodes:       len(tree.Walk(f)),
		})
	}
	fmt.Fprintln(formatter.Writer, out)
	return nil
}

// runRenderWatch renders path once and again after every write until ctx is
// done. The parent directory is watched so editors that replace the file on
// save are still seen.
func runRenderWatch(ctx context.Context, opts *RenderOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := opts.Logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeGeneric, "failed to create watcher", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeGeneric, "failed to resolve path", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("failed to watch %s", path), err)
	}

	renderOnce(formatter, opts, path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("tree file changed", "file", event.Name, "op", event.Op.String())
			pending = time.After(watchDebounce)
		case <-pending:
			pending = nil
			renderOnce(formatter, opts, path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}

// renderOnce renders path and reports problems without stopping the watch.
func renderOnce(formatter *OutputFormatter, opts *RenderOptions, path string) {
	r, err := newTreeReader()
	if err == nil {
		var f tree.Forest
		if f, err = r.read(path); err == nil {
			err = writeRender(formatter, opts, path, f)
		}
	}
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidTree, err.Error(), nil)
	}
	if !formatter.JSON() {
		fmt.Fprintln(formatter.Writer, "---")
	}
}
