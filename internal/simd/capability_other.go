//go:build !amd64 && !arm64

package simd

func detect() features { return features{} }
