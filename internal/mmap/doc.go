// Package mmap maps capture files read-only so the scanner can walk them as
// one byte slice shared by every worker goroutine.
//
//	m, err := mmap.Open("survey.rsd")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.AccessSequential)
//	window, err := m.Slice(start, end) // end is clamped to Len
//
// Unix builds use mmap(2) and madvise(2). Windows builds use a file mapping
// view and ignore access hints.
//
// All accessors are safe for concurrent use. Close is idempotent; slices
// handed out earlier must not be touched after it returns.
package mmap
