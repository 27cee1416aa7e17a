//go:build amd64

package matrix

import (
	"github.com/viterin/vek/vek32"
	"golang.org/x/sys/cpu"
)

// hasAVX2 is resolved once at startup and never written again.
var hasAVX2 = cpu.X86.HasAVX2 && cpu.X86.HasFMA

func dot4(a, b []float32) float32 {
	if hasAVX2 {
		return vek32.Dot(a, b)
	}
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

func norm4(v []float32) float32 {
	return vek32.Norm(v)
}

func runtimeInfo() RuntimeInfo {
	if !hasAVX2 {
		return RuntimeInfo{Implementation: ImplGeneric}
	}
	info := vek32.Info()
	return RuntimeInfo{
		Implementation: ImplAVX2,
		Features:       info.CPUFeatures,
		Accelerated:    info.Acceleration,
	}
}
