package pattern

import "bytes"

type scalarFinder struct{}

func (scalarFinder) Name() string   { return "scalar" }
func (scalarFinder) LaneWidth() int { return 0 }

func (scalarFinder) AppendFind(dst []int, haystack, needle []byte, base int) []int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return dst
	}
	return appendScalar(dst, haystack, needle, base, 0)
}

// appendScalar scans candidate start positions from..len(haystack)-len(needle).
func appendScalar(dst []int, haystack, needle []byte, base, from int) []int {
	first := needle[0]
	last := len(haystack) - len(needle)
	for i := from; i <= last; i++ {
		if haystack[i] == first && bytes.Equal(haystack[i:i+len(needle)], needle) {
			dst = append(dst, base+i)
		}
	}
	return dst
}
