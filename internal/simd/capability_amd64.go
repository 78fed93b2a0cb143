//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func detect() features {
	return features{
		sse2:     cpu.X86.HasSSE2,
		avx2:     cpu.X86.HasAVX2,
		avx512bw: cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW,
	}
}
