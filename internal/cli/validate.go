package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/treelab/internal/schema"
	"github.com/roach88/treelab/internal/tree"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	PrintSchema bool // print the CUE schema instead of validating
}

// FileValidation is the validation outcome of one file.
type FileValidation struct {
	File   string        `json:"file"`
	Valid  bool          `json:"valid"`
	Nodes  int           `json:"nodes,omitempty"`
	Errors []IssueDetail `json:"errors,omitempty"`
}

// IssueDetail is one schema issue in JSON output.
type IssueDetail struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <tree-file>...",
		Short: "Validate tree files against the document schema",
		Long: `Validate YAML or JSON tree files against the document schema.

Checks that every node has a non-empty id and a known tag, that no unknown
fields are present, and that ids are unique across the whole tree.

Exit codes:
  0 - All files valid
  1 - One or more files invalid
  2 - Command error (missing files, etc.)

Examples:
  treelab validate card.yaml
  treelab validate trees/*.json --format json
  treelab validate --schema`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.PrintSchema {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.PrintSchema {
				fmt.Fprint(cmd.OutOrStdout(), schema.Source(tree.DefaultCatalog()))
				return nil
			}
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.PrintSchema, "schema", false, "print the CUE schema")

	return cmd
}

func runValidate(opts *ValidateOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	r, err := newTreeReader()
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeGeneric, "failed to load schema", err)
	}

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(paths))}
	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)

		f, err := r.read(path)
		if err != nil && errors.Is(err, os.ErrNotExist) {
			return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("tree file not found: %s", path), nil)
		}
		fv := FileValidation{File: path, Valid: err == nil}
		if err != nil {
			fv.Errors = issueDetails(err)
			result.Valid = false
		} else {
			fv.Nodes = len(tree.Walk(f))
		}
		result.Files = append(result.Files, fv)
	}

	if formatter.JSON() {
		if result.Valid {
			if err := formatter.Success(result); err != nil {
				return err
			}
		} else if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeInvalidTree,
				Message: "validation failed",
			},
		}); err != nil {
			return err
		}
	} else {
		outputValidationText(formatter, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d file(s)", countInvalid(result)))
	}
	return nil
}

// issueDetails flattens a schema error into per-issue details.
func issueDetails(err error) []IssueDetail {
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		return []IssueDetail{{Message: err.Error()}}
	}
	out := make([]IssueDetail, len(verr.Issues))
	for i, is := range verr.Issues {
		out[i] = IssueDetail{Path: is.Path, Message: is.Message}
		if is.Pos.IsValid() {
			out[i].Line = is.Pos.Line()
		}
	}
	return out
}

func outputValidationText(formatter *OutputFormatter, result ValidationResult) {
	for _, fv := range result.Files {
		if fv.Valid {
			fmt.Fprintf(formatter.Writer, "%s %s (%d nodes)\n", passMark("✓"), fv.File, fv.Nodes)
			continue
		}
		fmt.Fprintf(formatter.Writer, "%s %s\n", failMark("✗"), fv.File)
		for _, is := range fv.Errors {
			prefix := ""
			if is.Line > 0 {
				prefix = fmt.Sprintf("line %d: ", is.Line)
			}
			if is.Path != "" {
				prefix += is.Path + ": "
			}
			fmt.Fprintf(formatter.Writer, "  %s%s\n", prefix, is.Message)
		}
	}
}

func countInvalid(result ValidationResult) int {
	n := 0
	for _, fv := range result.Files {
		if !fv.Valid {
			n++
		}
	}
	return n
}
