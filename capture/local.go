package capture

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hupe1980/sonarscan/internal/mmap"
)

// LocalStore implements Store using the local file system.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Location returns the store root.
func (s *LocalStore) Location() string {
	return "file://" + filepath.ToSlash(filepath.Clean(s.root))
}

// Open maps the named file read-only.
// Names must stay inside the root; "../x" and absolute names are rejected
// with ErrInvalidName.
func (s *LocalStore) Open(_ context.Context, name string) (Object, error) {
	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	path := filepath.Join(s.root, rel)
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &localObject{m: m}, nil
}

type localObject struct {
	m *mmap.Mapping
}

func (o *localObject) Size() int64 {
	return int64(o.m.Len())
}

func (o *localObject) Path() string {
	return o.m.Path()
}

// ReadRange reads through the mapping. The range is advised as sequential
// since spooling streams it front to back.
func (o *localObject) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	length, err := ClampRange(off, length, int64(o.m.Len()))
	if err != nil {
		return nil, err
	}

	if r, err := o.m.Region(int(off), int(length)); err == nil {
		_ = r.Advise(mmap.AccessSequential)
	}
	return io.NopCloser(io.NewSectionReader(o.m, off, length)), nil
}

func (o *localObject) Close() error {
	return o.m.Close()
}
