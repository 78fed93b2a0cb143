package capture

import (
	"context"
	"errors"
	"io"
	"os"
)

// ErrInvalidName is returned for object names that leave the store root.
var ErrInvalidName = errors.New("capture: invalid object name")

// ErrNotFound is returned when a capture does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for reading immutable capture objects.
type Store interface {
	// Open opens an object for reading.
	Open(ctx context.Context, name string) (Object, error)
}

// Object is a read-only handle to a stored capture.
type Object interface {
	io.Closer
	// Size returns the size of the object in bytes.
	Size() int64
	// ReadRange returns a reader for length bytes starting at off.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
}

// Downloader is an optional interface for Objects that can fetch their full
// content faster than a single sequential read, e.g. with parallel ranged
// requests.
type Downloader interface {
	DownloadTo(ctx context.Context, w io.WriterAt) (int64, error)
}

// Locator is an optional interface for Stores that can say where their
// objects live. Spool files are keyed by it, so the same name fetched from
// two stores is spooled twice.
type Locator interface {
	Location() string
}

// Pather is an optional interface for Objects that already live on the
// local file system.
type Pather interface {
	Path() string
}

// ClampRange bounds a ReadRange request against an object of the given
// size and returns the number of bytes to read. An offset outside
// [0, size] yields io.EOF.
func ClampRange(off, length, size int64) (int64, error) {
	if off < 0 || off > size {
		return 0, io.EOF
	}
	return max(0, min(length, size-off)), nil
}
