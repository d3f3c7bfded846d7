package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/treelab/internal/schema"
	"github.com/roach88/treelab/internal/tree"
)

// treeReader loads tree files through the document schema.
type treeReader struct {
	validator *schema.Validator
}

func newTreeReader() (*treeReader, error) {
	v, err := schema.NewValidator(tree.DefaultCatalog())
	if err != nil {
		return nil, fmt.Errorf("failed to build validator: %w", err)
	}
	return &treeReader{validator: v}, nil
}

// read decodes and validates the tree file at path. The format follows the
// file extension: .yaml and .yml are YAML, anything else is JSON.
func (r *treeReader) read(path string) (tree.Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	f, err := r.validator.DecodeForest(data, schema.FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// readTreeOrFail reads a tree file and maps failures to exit codes. A missing
// or unreadable file is a command error; a file that does not parse or fails
// validation is a failure.
func readTreeOrFail(formatter *OutputFormatter, path string) (tree.Forest, error) {
	r, err := newTreeReader()
	if err != nil {
		return nil, formatter.fail(ExitCommandError, ErrCodeGeneric, "failed to load schema", err)
	}
	f, err := r.read(path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("tree file not found: %s", path), nil)
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return nil, formatter.fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("failed to load %s", path), err)
	}
	return nil, formatter.fail(ExitFailure, ErrCodeInvalidTree, fmt.Sprintf("invalid tree file %s", path), err)
}

// encodeTree renders f in the format implied by path.
func encodeTree(f tree.Forest, path string) ([]byte, error) {
	f = tree.Normalize(f)
	if schema.FormatFromPath(path) == schema.FormatJSON {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("failed to encode tree: %w", err)
		}
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode tree: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode tree: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTree writes f to path.
func writeTree(f tree.Forest, path string) error {
	data, err := encodeTree(f, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write tree file: %w", err)
	}
	return nil
}
