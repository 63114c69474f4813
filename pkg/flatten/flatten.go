// Package flatten walks a directory tree and concatenates the contents of
// files matching the configured extensions into a single text document,
// pruning skipped folder names before descent.
package flatten

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Flattener assembles matching file contents under a root into a Document.
// It is read-only against the scanned tree; a single call runs synchronously
// on the caller's goroutine.
type Flattener struct {
	cfg    Config
	logger *zap.Logger
}

// New returns a Flattener for cfg. The configuration is normalized once at
// construction. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) *Flattener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flattener{cfg: cfg.Normalize(), logger: logger}
}

// FlattenDir validates dir and flattens the tree rooted there. The returned
// document's root header carries the absolute path of dir. A missing or
// non-directory path yields ErrInvalidDirectory; an empty include-extension
// set yields ErrNoExtensions before the filesystem is touched.
func (f *Flattener) FlattenDir(dir string) (*Document, error) {
	if len(f.cfg.IncludeExts) == 0 {
		return nil, fmt.Errorf("flatten %s: %w", dir, ErrNoExtensions)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("flatten %s: %w", dir, ErrInvalidDirectory)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	return f.FlattenFS(os.DirFS(dir), abs)
}

// FlattenFS flattens the tree rooted at fsys. label becomes the document's
// root header, typically the absolute path of the tree. The walk visits
// entries in lexical order, so output for an unchanged tree is
// byte-identical across calls.
func (f *Flattener) FlattenFS(fsys fs.FS, label string) (*Document, error) {
	if len(f.cfg.IncludeExts) == 0 {
		return nil, fmt.Errorf("flatten %s: %w", label, ErrNoExtensions)
	}

	start := time.Now()
	doc := &Document{Root: label}

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == "." {
				return fmt.Errorf("flatten %s: %w", label, ErrInvalidDirectory)
			}
			f.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil
		}

		if d.IsDir() {
			// Prune before descent so excluded trees are never enumerated.
			if path != "." && f.cfg.skipsDir(d.Name()) {
				f.logger.Debug("Pruning directory", zap.String("path", path))
				return fs.SkipDir
			}
			return nil
		}

		if !f.cfg.matchesFile(d.Name()) {
			return nil
		}
		doc.Entries = append(doc.Entries, Entry{Path: path, Content: f.readFile(fsys, path)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info("Flatten completed",
		zap.String("root", label),
		zap.Int("totalFiles", len(doc.Entries)),
		zap.Duration("elapsed", time.Since(start)))
	return doc, nil
}

// readFile returns the file's UTF-8 content, or the inline error text on a
// read or decode failure. Per-file failures never abort the walk.
func (f *Flattener) readFile(fsys fs.FS, path string) string {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		f.logger.Warn("Failed to read file", zap.String("path", path), zap.Error(err))
		return "Error reading file: " + err.Error()
	}
	if !utf8.Valid(data) {
		f.logger.Warn("File is not valid UTF-8", zap.String("path", path))
		return "Error reading file: invalid UTF-8 content"
	}
	return string(data)
}
