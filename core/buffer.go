// Package core provides the primitives shared by the vrkernels kernel groups.
//
// The host owns every buffer passed into a kernel. Kernels borrow those buffers
// for the duration of a single call and never keep a reference afterwards, so
// the helpers here always copy into freshly allocated slices.
//
// Key components:
//   - Error taxonomy: ErrInvalidBufferLength, ErrEmptyPattern, ErrIndexOutOfRange
//   - Little-endian float32 and string payload encoding for the host boundary
//   - Cache-line aligned scratch allocation
package core

import (
	"encoding/binary"
	"math"
)

// Float32Size is the encoded width of a float32 sample.
const Float32Size = 4

// PutFloat32s writes src into dst as little-endian IEEE-754 values.
// dst must hold at least len(src)*4 bytes.
func PutFloat32s(dst []byte, src []float32) error {
	if err := CheckMinLen("core.PutFloat32s", "dst", len(dst), len(src)*Float32Size); err != nil {
		return err
	}
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[i*Float32Size:], math.Float32bits(v))
	}
	return nil
}

// AppendFloat32s appends src to dst as little-endian IEEE-754 values.
func AppendFloat32s(dst []byte, src []float32) []byte {
	for _, v := range src {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}

// ReadFloat32s decodes a little-endian float32 payload into a new slice.
func ReadFloat32s(src []byte) ([]float32, error) {
	if len(src)%Float32Size != 0 {
		return nil, &BufferError{
			Op:   "core.ReadFloat32s",
			Arg:  "src",
			Want: len(src) - len(src)%Float32Size,
			Got:  len(src),
			Err:  ErrInvalidBufferLength,
		}
	}
	out := make([]float32, len(src)/Float32Size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*Float32Size:]))
	}
	return out, nil
}

// ReadString reads a u32 length-prefixed string starting at off and returns it
// together with the offset just past it.
func ReadString(src []byte, off int) (string, int, error) {
	if off < 0 || off+4 > len(src) {
		return "", off, OutOfRange("core.ReadString", "length prefix", off+4, len(src))
	}
	n := int(binary.LittleEndian.Uint32(src[off:]))
	off += 4
	if n > len(src)-off {
		return "", off, OutOfRange("core.ReadString", "body", off+n, len(src))
	}
	return string(src[off : off+n]), off + n, nil
}

// AppendString appends s to dst with a u32 little-endian length prefix.
func AppendString(dst []byte, s string) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s)))
	return append(dst, s...)
}
