package pattern

import (
	"fmt"

	"github.com/hupe1980/sonarscan/internal/simd"
)

// Finder locates all occurrences of needle in haystack.
// Implementations are stateless and safe for concurrent use.
type Finder interface {
	// AppendFind appends base+o to dst for every offset o where
	// haystack[o:o+len(needle)] equals needle, in ascending order.
	AppendFind(dst []int, haystack, needle []byte, base int) []int

	// Name identifies the strategy (e.g. "scalar", "lanes-32").
	Name() string

	// LaneWidth returns the bytes compared per step, 0 for scalar.
	LaneWidth() int
}

var defaultFinder = forISA(simd.ActiveISA())

// Default returns the fastest Finder available on this machine.
func Default() Finder {
	return defaultFinder
}

// Find returns the ascending offsets of needle in haystack using Default.
// An empty needle, or one longer than haystack, yields no offsets.
func Find(haystack, needle []byte) []int {
	return defaultFinder.AppendFind(nil, haystack, needle, 0)
}

func forISA(isa simd.ISA) Finder {
	if w := isa.LaneWidth(); w > 0 {
		return Lanes(w)
	}
	return Scalar()
}

// ForISA returns the Finder used for the given instruction set.
// It does not check that the ISA is available; callers forcing a path in
// tests can use it freely because the lane strategy is portable Go.
func ForISA(isa simd.ISA) Finder {
	return forISA(isa)
}

// Lanes returns the lane strategy with the given width in bytes.
// Valid widths are 16, 32 and 64.
func Lanes(width int) Finder {
	switch width {
	case 16, 32, 64:
		return laneFinder{width: width}
	default:
		panic(fmt.Sprintf("pattern: unsupported lane width %d", width))
	}
}

// Scalar returns the scalar strategy.
func Scalar() Finder {
	return scalarFinder{}
}

// ParseFinder maps a strategy name such as "scalar", "generic", "avx2" or
// "lanes-32" to a Finder.
func ParseFinder(name string) (Finder, error) {
	switch name {
	case "", "default":
		return Default(), nil
	case "scalar":
		return Scalar(), nil
	case "lanes-16":
		return Lanes(16), nil
	case "lanes-32":
		return Lanes(32), nil
	case "lanes-64":
		return Lanes(64), nil
	}
	if isa, ok := simd.ParseISA(name); ok {
		return forISA(isa), nil
	}
	return nil, fmt.Errorf("pattern: unknown finder %q", name)
}
