package core

import "unsafe"

// CacheLineSize is the assumed cache line size for scratch allocations.
const CacheLineSize = 64

// IsAligned reports whether addr sits on a cache line boundary.
func IsAligned(addr uintptr) bool {
	return addr%CacheLineSize == 0
}

// AlignedBytes allocates a byte slice whose backing array starts on a cache
// line boundary.
func AlignedBytes(size int) []byte {
	if size == 0 {
		return nil
	}
	buf := make([]byte, size+CacheLineSize-1)

	ptr := uintptr(unsafe.Pointer(&buf[0]))
	offset := uintptr(0)
	if mod := ptr % CacheLineSize; mod != 0 {
		offset = CacheLineSize - mod
	}
	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// AlignedFloat32s allocates n float32 values on a cache line boundary.
// A Mat4 (64 bytes) then occupies exactly one line.
func AlignedFloat32s(n int) []float32 {
	if n == 0 {
		return nil
	}
	b := AlignedBytes(n * Float32Size)
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), n)
}
