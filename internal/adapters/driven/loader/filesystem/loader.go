// Package filesystem provides a document loader over a local directory
// tree. It walks the root recursively and reads every file with a
// recognised text extension.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/traceleaf/docrag/internal/core/domain"
	"github.com/traceleaf/docrag/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// DefaultExtensions are the file extensions loaded when none are
// configured.
var DefaultExtensions = []string{".txt", ".md", ".adoc"}

// Loader reads raw text documents from a directory tree.
type Loader struct {
	extensions map[string]struct{}
}

// Option configures the loader.
type Option func(*Loader)

// WithExtensions sets the file extensions to load (lower-cased,
// including the dot). Empty input keeps the defaults.
func WithExtensions(exts []string) Option {
	return func(l *Loader) {
		if len(exts) == 0 {
			return
		}
		l.extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			l.extensions[strings.ToLower(ext)] = struct{}{}
		}
	}
}

// New creates a filesystem loader.
func New(opts ...Option) *Loader {
	l := &Loader{}
	WithExtensions(DefaultExtensions)(l)

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load returns a mapping from file path to raw text for every matching
// file under root. A missing root fails with domain.ErrSourceNotFound.
func (l *Loader) Load(ctx context.Context, root string) (map[string]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	docs := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := l.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		docs[path] = string(content)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}
