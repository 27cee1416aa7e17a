package matrix

// Implementation names the backend running the row dot products.
type Implementation string

const (
	// ImplGeneric is the fallback: an unrolled scalar dot product on amd64
	// without AVX2+FMA, vek32's pure Go loops on other architectures.
	ImplGeneric Implementation = "generic"
	// ImplAVX2 is the x86 AVX2+FMA path.
	ImplAVX2 Implementation = "avx2"
)

// RuntimeInfo describes the active backend.
type RuntimeInfo struct {
	Implementation Implementation
	Features       []string
	Accelerated    bool
}

// Info reports which backend TransformVector uses on this machine.
func Info() RuntimeInfo {
	return runtimeInfo()
}
