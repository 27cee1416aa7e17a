// Package kernels exposes every vrkernels operation behind a single byte-level
// calling convention for the host boundary.
//
// A kernel takes one little-endian payload and returns a freshly allocated
// result payload. The payload is borrowed: nothing in it is retained after the
// call returns. Kernels are registered in the Catalog array and looked up by
// opcode, which is what the WASM exports in cmd/vrkernels-wasm dispatch on.
//
// Payload layouts (f32 = IEEE-754 LE, u32 = LE, str = u32 length + UTF-8 bytes):
//
//	OpMatMul       in: A[16]f32 B[16]f32        out: C[16]f32
//	OpTransform    in: M[16]f32 v[4]f32         out: w[4]f32
//	OpQuatToMat    in: x y z w f32              out: M[16]f32
//	OpSearch       in: text str, pattern str    out: index i32 (-1 if absent)
//	OpNormalize    in: UTF-8 text               out: UTF-8 text
//	OpKeywords     in: max u32, UTF-8 text      out: count u32, words str...
//	OpCompress     in: raw bytes                out: token stream (or raw if < 16 bytes)
//	OpDecompress   in: rawLen u32, stream       out: raw bytes
//	OpDeltaEncode  in: samples f32...           out: deltas i16...
//	OpDeltaDecode  in: deltas i16...            out: samples f32...
package kernels

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sbl8/vrkernels/codec"
	"github.com/sbl8/vrkernels/core"
	"github.com/sbl8/vrkernels/matrix"
	"github.com/sbl8/vrkernels/textproc"
)

// KernelFn runs one operation over an encoded payload.
type KernelFn func(payload []byte) ([]byte, error)

// ErrUnknownOp reports an opcode with no registered kernel.
var ErrUnknownOp = errors.New("unknown kernel opcode")

// Kernel operation codes
const (
	OpNoop        = 0x00
	OpMatMul      = 0x01
	OpTransform   = 0x02
	OpQuatToMat   = 0x03
	OpSearch      = 0x10
	OpNormalize   = 0x11
	OpKeywords    = 0x12
	OpCompress    = 0x20
	OpDecompress  = 0x21
	OpDeltaEncode = 0x22
	OpDeltaDecode = 0x23
)

// Catalog maps opcodes to kernel implementations
var Catalog = [256]KernelFn{
	OpNoop:        noop,
	OpMatMul:      matMul,
	OpTransform:   transform,
	OpQuatToMat:   quatToMat,
	OpSearch:      search,
	OpNormalize:   normalize,
	OpKeywords:    keywords,
	OpCompress:    compress,
	OpDecompress:  decompress,
	OpDeltaEncode: deltaEncode,
	OpDeltaDecode: deltaDecode,
}

// Names maps opcodes to their operation names, for logs and tools.
var Names = map[byte]string{
	OpNoop:        "noop",
	OpMatMul:      "multiply_matrices",
	OpTransform:   "transform_vector",
	OpQuatToMat:   "quaternion_to_matrix",
	OpSearch:      "search",
	OpNormalize:   "normalize_text",
	OpKeywords:    "extract_keywords",
	OpCompress:    "compress",
	OpDecompress:  "decompress",
	OpDeltaEncode: "delta_encode",
	OpDeltaDecode: "delta_decode",
}

// GetKernel returns the kernel function for the given opcode
func GetKernel(opcode byte) KernelFn {
	return Catalog[opcode]
}

// Run dispatches payload to the kernel registered for opcode.
func Run(opcode byte, payload []byte) ([]byte, error) {
	fn := Catalog[opcode]
	if fn == nil {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownOp, opcode)
	}
	return fn(payload)
}

func noop(payload []byte) ([]byte, error) {
	return nil, nil
}

// -------- MatrixMath ----------

// floatsOut encodes v into a cache-line aligned result payload.
func floatsOut(v []float32) ([]byte, error) {
	out := core.AlignedBytes(len(v) * core.Float32Size)
	if err := core.PutFloat32s(out, v); err != nil {
		return nil, err
	}
	return out, nil
}

func matMul(payload []byte) ([]byte, error) {
	f, err := readFloats("kernels.matMul", payload, 2*matrix.Mat4Len)
	if err != nil {
		return nil, err
	}
	defer matrixScratch.put(f)
	c := core.AlignedFloat32s(matrix.Mat4Len)
	if err := matrix.MultiplyInto(c, f[:16], f[16:]); err != nil {
		return nil, err
	}
	return floatsOut(c)
}

func transform(payload []byte) ([]byte, error) {
	f, err := readFloats("kernels.transform", payload, matrix.Mat4Len+matrix.Vec4Len)
	if err != nil {
		return nil, err
	}
	defer matrixScratch.put(f)
	w := core.AlignedFloat32s(matrix.Vec4Len)
	if err := matrix.TransformInto(w, f[:16], f[16:]); err != nil {
		return nil, err
	}
	return floatsOut(w)
}

func quatToMat(payload []byte) ([]byte, error) {
	f, err := readFloats("kernels.quatToMat", payload, 4)
	if err != nil {
		return nil, err
	}
	defer matrixScratch.put(f)
	m := core.AlignedFloat32s(matrix.Mat4Len)
	if err := matrix.QuaternionInto(m, f[0], f[1], f[2], f[3]); err != nil {
		return nil, err
	}
	return floatsOut(m)
}

// -------- TextProcessor ----------

func search(payload []byte) ([]byte, error) {
	text, off, err := core.ReadString(payload, 0)
	if err != nil {
		return nil, err
	}
	pattern, off, err := core.ReadString(payload, off)
	if err != nil {
		return nil, err
	}
	if off != len(payload) {
		return nil, core.CheckLen("kernels.search", "payload", len(payload), off)
	}
	idx := textproc.Search(text, pattern)
	return binary.LittleEndian.AppendUint32(nil, uint32(int32(idx))), nil
}

func normalize(payload []byte) ([]byte, error) {
	return []byte(textproc.NormalizeText(string(payload))), nil
}

func keywords(payload []byte) ([]byte, error) {
	if err := core.CheckMinLen("kernels.keywords", "payload", len(payload), 4); err != nil {
		return nil, err
	}
	limit := binary.LittleEndian.Uint32(payload)
	if limit > uint32(len(payload)) {
		// more keywords than bytes of text is never reachable
		limit = uint32(len(payload))
	}
	words := textproc.ExtractKeywords(string(payload[4:]), int(limit))

	out := binary.LittleEndian.AppendUint32(nil, uint32(len(words)))
	for _, w := range words {
		out = core.AppendString(out, w)
	}
	return out, nil
}

// DecodeKeywords parses the OpKeywords result payload.
func DecodeKeywords(out []byte) ([]string, error) {
	if err := core.CheckMinLen("kernels.DecodeKeywords", "out", len(out), 4); err != nil {
		return nil, err
	}
	n := int(binary.LittleEndian.Uint32(out))
	words := make([]string, 0, n)
	off := 4
	for i := 0; i < n; i++ {
		w, next, err := core.ReadString(out, off)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
		off = next
	}
	return words, nil
}

// -------- DataCompressor ----------

func compress(payload []byte) ([]byte, error) {
	return codec.Compress(payload), nil
}

func decompress(payload []byte) ([]byte, error) {
	if err := core.CheckMinLen("kernels.decompress", "payload", len(payload), 4); err != nil {
		return nil, err
	}
	rawLen := binary.LittleEndian.Uint32(payload)
	return codec.Decompress(payload[4:], int(rawLen))
}

func deltaEncode(payload []byte) ([]byte, error) {
	samples, err := core.ReadFloat32s(payload)
	if err != nil {
		return nil, err
	}
	return codec.DeltaEncode(samples), nil
}

func deltaDecode(payload []byte) ([]byte, error) {
	return floatsOut(codec.DeltaDecode(payload))
}
