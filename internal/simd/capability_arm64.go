//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func detect() features {
	return features{asimd: cpu.ARM64.HasASIMD}
}
