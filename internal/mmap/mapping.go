package mmap

import (
	"io"
	"os"
	"sync/atomic"
)

// Mapping is a read-only view of a whole file.
type Mapping struct {
	path    string
	data    []byte
	closed  atomic.Bool
	release func() error
}

// Open maps the file at path read-only. The descriptor is closed before
// Open returns; the view keeps the pages alive on its own. Empty files get
// a Mapping with no pages.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	m := &Mapping{path: path}

	size := fi.Size()
	switch {
	case size == 0:
		return m, nil
	case size < 0 || int64(int(size)) != size:
		return nil, ErrInvalidSize
	}

	m.data, m.release, err = osMap(f, int(size))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Close unmaps the file. Calls after the first are no-ops.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) || m.release == nil {
		return nil
	}
	return m.release()
}

// Path returns the path the mapping was opened from.
func (m *Mapping) Path() string {
	return m.path
}

// Len returns the file size. It does not change after Close.
func (m *Mapping) Len() int {
	return len(m.data)
}

// Bytes returns the whole mapping, or nil after Close. The slice must not
// be used once Close has been called.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// view returns data[start:end] with the capacity capped at end.
func (m *Mapping) view(start, end int) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	if start < 0 || start > end || end > len(m.data) {
		return nil, ErrOutOfBounds
	}
	return m.data[start:end:end], nil
}

// Slice returns the bytes in [start, end). end is clamped to Len.
// A negative start, a start past Len or a start past end is out of bounds.
func (m *Mapping) Slice(start, end int) ([]byte, error) {
	return m.view(start, min(end, len(m.data)))
}

// Advise passes an access hint for the whole file to the kernel.
func (m *Mapping) Advise(p AccessPattern) error {
	b, err := m.view(0, len(m.data))
	if err != nil {
		return err
	}
	return osAdvise(b, p)
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		if m.closed.Load() {
			return 0, ErrClosed
		}
		return 0, io.EOF
	}

	b, err := m.view(int(off), len(m.data))
	if err != nil {
		return 0, err
	}
	n := copy(p, b)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
