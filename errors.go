package sonarscan

import (
	"errors"
	"fmt"

	"github.com/hupe1980/sonarscan/geo"
	"github.com/hupe1980/sonarscan/internal/cache"
	"github.com/hupe1980/sonarscan/internal/mmap"
)

var (
	// ErrOutOfBounds is returned when a requested byte range lies outside
	// the capture.
	ErrOutOfBounds = errors.New("range out of bounds")

	// ErrClosed is returned when a Scanner is used after Close.
	ErrClosed = errors.New("scanner is closed")

	// ErrLengthMismatch is returned when coordinate slices differ in length.
	ErrLengthMismatch = errors.New("coordinate length mismatch")

	// ErrInvalidChunkSize is returned when a chunk size is not positive.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
)

// OpenError indicates that a capture could not be opened or mapped.
//
// The original underlying error can be accessed via errors.Unwrap.
type OpenError struct {
	Path  string
	cause error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open capture %s: %v", e.Path, e.cause)
}

func (e *OpenError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mmap.ErrOutOfBounds) || errors.Is(err, cache.ErrOutOfBounds) {
		return fmt.Errorf("%w: %w", ErrOutOfBounds, err)
	}
	if errors.Is(err, mmap.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	if errors.Is(err, geo.ErrLengthMismatch) {
		return fmt.Errorf("%w: %w", ErrLengthMismatch, err)
	}

	return err
}
