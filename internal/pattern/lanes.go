package pattern

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"
)

const (
	lo7  = 0x7f7f7f7f7f7f7f7f
	ones = 0x0101010101010101
)

type laneFinder struct {
	width int
}

func (f laneFinder) Name() string   { return fmt.Sprintf("lanes-%d", f.width) }
func (f laneFinder) LaneWidth() int { return f.width }

func (f laneFinder) AppendFind(dst []int, haystack, needle []byte, base int) []int {
	n := len(needle)
	if n == 0 || n > len(haystack) {
		return dst
	}
	if len(haystack) < f.width {
		return appendScalar(dst, haystack, needle, base, 0)
	}

	broadcast := uint64(needle[0]) * ones
	i := 0
	for ; i+f.width <= len(haystack); i += f.width {
		mask := laneMask(haystack[i:i+f.width], broadcast)
		for mask != 0 {
			pos := i + bits.TrailingZeros64(mask)
			mask &= mask - 1
			if pos+n <= len(haystack) && bytes.Equal(haystack[pos:pos+n], needle) {
				dst = append(dst, base+pos)
			}
		}
	}
	return appendScalar(dst, haystack, needle, base, i)
}

// laneMask returns a bitmask with bit k set iff lane[k] equals the broadcast
// byte. len(lane) is a multiple of 8 and at most 64.
func laneMask(lane []byte, broadcast uint64) uint64 {
	var mask uint64
	for w := 0; w < len(lane); w += 8 {
		hits := zeroBytes(binary.LittleEndian.Uint64(lane[w:]) ^ broadcast)
		// Compress the high bit of each byte into 8 contiguous mask bits.
		mask |= ((hits >> 7) * 0x0102040810204080 >> 56) << w
	}
	return mask
}

// zeroBytes sets the high bit of every zero byte of x and clears all other
// bits. Unlike the classic (x-0x01..)&^x&0x80.. trick it has no false
// positives next to a real zero byte.
func zeroBytes(x uint64) uint64 {
	y := (x & lo7) + lo7
	return ^(y | x | lo7)
}
