// Package docstore persists small ordered collections as whole JSON documents.
//
// Every write rewrites the entire document through a temp file and a rename,
// so a reader sees either the previous or the next full document. Writers to
// the same document are serialized in-process.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// ErrCorrupt is returned when a document exists but is not a JSON array.
var ErrCorrupt = errors.New("docstore: document is not a JSON array")

// Store roots a set of documents in one directory.
type Store struct {
	fs  afero.Fs
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a store over fs rooted at dir. The directory is created on
// first write.
func New(fs afero.Fs, dir string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs, dir: dir, locks: make(map[string]*sync.Mutex)}
}

// NewOS creates a store on the real filesystem.
func NewOS(dir string) *Store {
	return New(afero.NewOsFs(), dir)
}

// Dir returns the root directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) lockFor(path string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[path]
	if !ok {
		l = &sync.Mutex{}
		s.locks[path] = l
	}
	return l
}

// Document is a single JSON file holding an ordered []T.
type Document[T any] struct {
	store *Store
	path  string
	lock  *sync.Mutex
}

// Open returns the document called name (e.g. "collabs.json"). Documents
// opened twice under the same store share one write lock.
func Open[T any](s *Store, name string) *Document[T] {
	path := filepath.Join(s.dir, name)
	return &Document[T]{store: s, path: path, lock: s.lockFor(path)}
}

// Path returns the document's file path.
func (d *Document[T]) Path() string {
	return d.path
}

// Load reads the full sequence. A missing, empty or null document is an
// empty sequence.
func (d *Document[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(d.store.fs, d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("docstore: read %s: %w", d.path, err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, d.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Update runs a read-modify-write cycle under the document lock. fn receives
// the current sequence and returns the sequence to persist; if fn fails
// nothing is written.
func (d *Document[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	items, err := d.Load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return d.write(next)
}

func (d *Document[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("docstore: marshal %s: %w", d.path, err)
	}
	return writeFileAtomic(d.store.fs, d.path, data, 0o644)
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it into place. On failure the original file is untouched.
func writeFileAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("docstore: mkdir %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("docstore: temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("docstore: write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("docstore: sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("docstore: close %s: %w", tmpPath, err)
	}
	if err := fs.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("docstore: chmod %s: %w", tmpPath, err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("docstore: rename %s: %w", path, err)
	}

	success = true
	return nil
}
