//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

var madvice = [...]int{
	AccessDefault:    unix.MADV_NORMAL,
	AccessSequential: unix.MADV_SEQUENTIAL,
	AccessRandom:     unix.MADV_RANDOM,
	AccessWillNeed:   unix.MADV_WILLNEED,
	AccessDontNeed:   unix.MADV_DONTNEED,
}

func osMap(f *os.File, size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return unix.Munmap(data) }, nil
}

func osAdvise(b []byte, p AccessPattern) error {
	if len(b) == 0 {
		return nil
	}
	advice := unix.MADV_NORMAL
	if p >= 0 && int(p) < len(madvice) {
		advice = madvice[p]
	}

	// Regions rarely start on a page boundary and Linux rejects those with
	// EINVAL. Hints are best effort.
	if err := unix.Madvise(b, advice); err != nil && !errors.Is(err, unix.EINVAL) {
		return err
	}
	return nil
}
