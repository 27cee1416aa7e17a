//go:build !amd64

package matrix

import "github.com/viterin/vek/vek32"

// Without AVX2 vek32 falls back to its own unrolled pure Go loops.

func dot4(a, b []float32) float32 {
	return vek32.Dot(a, b)
}

func norm4(v []float32) float32 {
	return vek32.Norm(v)
}

func runtimeInfo() RuntimeInfo {
	info := vek32.Info()
	return RuntimeInfo{
		Implementation: ImplGeneric,
		Features:       info.CPUFeatures,
		Accelerated:    info.Acceleration,
	}
}
