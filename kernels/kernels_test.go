package kernels

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/vrkernels/codec"
	"github.com/sbl8/vrkernels/core"
	"github.com/sbl8/vrkernels/matrix"
)

func floatsPayload(parts ...[]float32) []byte {
	var out []byte
	for _, p := range parts {
		out = core.AppendFloat32s(out, p)
	}
	return out
}

func mustFloats(t *testing.T, b []byte) []float32 {
	t.Helper()
	f, err := core.ReadFloat32s(b)
	require.NoError(t, err)
	return f
}

func TestCatalogRegistered(t *testing.T) {
	ops := []byte{
		OpNoop, OpMatMul, OpTransform, OpQuatToMat,
		OpSearch, OpNormalize, OpKeywords,
		OpCompress, OpDecompress, OpDeltaEncode, OpDeltaDecode,
	}
	for _, op := range ops {
		assert.NotNil(t, GetKernel(op), "opcode 0x%02x", op)
		assert.NotEmpty(t, Names[op], "opcode 0x%02x", op)
	}
	assert.Nil(t, GetKernel(0xFF))
}

func TestRunUnknownOp(t *testing.T) {
	_, err := Run(0xFE, nil)
	assert.ErrorIs(t, err, ErrUnknownOp)
	assert.Contains(t, err.Error(), "0xfe")
}

func TestMatMulKernel(t *testing.T) {
	id := matrix.Identity()
	b := matrix.Mat4{}
	for i := range b {
		b[i] = float32(i + 1)
	}

	out, err := Run(OpMatMul, floatsPayload(id[:], b[:]))
	require.NoError(t, err)
	require.Len(t, out, 64)
	assert.True(t, core.IsAligned(uintptr(unsafe.Pointer(&out[0]))))
	assert.Equal(t, b[:], mustFloats(t, out))
}

func TestMatMulKernelBadLength(t *testing.T) {
	id := matrix.Identity()
	_, err := Run(OpMatMul, floatsPayload(id[:]))
	assert.ErrorIs(t, err, core.ErrInvalidBufferLength)

	var be *core.BufferError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 128, be.Want)
	assert.Equal(t, 64, be.Got)
}

func TestTransformKernel(t *testing.T) {
	m := matrix.Identity()
	m[3], m[7], m[11] = 1, 2, 3 // translation column

	out, err := Run(OpTransform, floatsPayload(m[:], []float32{1, 1, 1, 1}))
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3, 4, 1}, mustFloats(t, out))

	_, err = Run(OpTransform, floatsPayload(m[:]))
	assert.ErrorIs(t, err, core.ErrInvalidBufferLength)
}

func TestQuatToMatKernel(t *testing.T) {
	out, err := Run(OpQuatToMat, floatsPayload([]float32{0, 0, 0, 1}))
	require.NoError(t, err)
	id := matrix.Identity()
	assert.Equal(t, id[:], mustFloats(t, out))

	_, err = Run(OpQuatToMat, floatsPayload([]float32{0, 0, 1}))
	assert.ErrorIs(t, err, core.ErrInvalidBufferLength)
}

func TestMatrixKernelsReuseScratch(t *testing.T) {
	id := matrix.Identity()
	payload := floatsPayload(id[:], id[:])
	for i := 0; i < 100; i++ {
		out, err := Run(OpMatMul, payload)
		require.NoError(t, err)
		require.Equal(t, id[:], mustFloats(t, out))
	}
}

func TestScratchPool(t *testing.T) {
	p := newScratchPool(8, 1)
	a := p.get()
	assert.Len(t, a, 8)

	// empty pool still hands out a buffer
	b := p.get()
	assert.Len(t, b, 8)

	p.put(a[:3])
	assert.Len(t, p.get(), 8)

	p.put(make([]float32, 2))
	p.put(b)
	p.put(make([]float32, 8)) // pool full, dropped
	assert.Len(t, p.buffers, 1)
}

func searchPayload(text, pattern string) []byte {
	return core.AppendString(core.AppendString(nil, text), pattern)
}

func TestSearchKernel(t *testing.T) {
	tests := []struct {
		text, pattern string
		want          int32
	}{
		{"hello world", "world", 6},
		{"hello world", "xyz", -1},
		{"abc", "", 0},
		{"héllo", "llo", 2},
	}
	for _, tt := range tests {
		out, err := Run(OpSearch, searchPayload(tt.text, tt.pattern))
		require.NoError(t, err)
		require.Len(t, out, 4)
		assert.Equal(t, tt.want, int32(binary.LittleEndian.Uint32(out)), "%q in %q", tt.pattern, tt.text)
	}
}

func TestSearchKernelMalformed(t *testing.T) {
	_, err := Run(OpSearch, core.AppendString(nil, "only text"))
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)

	_, err = Run(OpSearch, append(searchPayload("a", "b"), 0x00))
	assert.ErrorIs(t, err, core.ErrInvalidBufferLength)

	bad := binary.LittleEndian.AppendUint32(nil, 100)
	_, err = Run(OpSearch, append(bad, "short"...))
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
}

func TestNormalizeKernel(t *testing.T) {
	out, err := Run(OpNormalize, []byte("Hello WORLD"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(out))

	out, err = Run(OpNormalize, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func keywordsPayload(limit uint32, text string) []byte {
	return append(binary.LittleEndian.AppendUint32(nil, limit), text...)
}

func TestKeywordsKernel(t *testing.T) {
	out, err := Run(OpKeywords, keywordsPayload(2, "mesh mesh the shader mesh shader a texture"))
	require.NoError(t, err)

	words, err := DecodeKeywords(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"mesh", "shader"}, words)
}

func TestKeywordsKernelHugeLimit(t *testing.T) {
	out, err := Run(OpKeywords, keywordsPayload(0xFFFFFFFF, "alpha beta gamma"))
	require.NoError(t, err)

	words, err := DecodeKeywords(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, words)
}

func TestKeywordsKernelEdgeCases(t *testing.T) {
	out, err := Run(OpKeywords, keywordsPayload(0, "plenty of words here"))
	require.NoError(t, err)
	words, err := DecodeKeywords(out)
	require.NoError(t, err)
	assert.Empty(t, words)

	_, err = Run(OpKeywords, []byte{1, 0})
	assert.ErrorIs(t, err, core.ErrInvalidBufferLength)

	_, err = DecodeKeywords([]byte{2, 0, 0, 0, 1, 0, 0, 0, 'x'})
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
}

func TestCompressKernelRoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("short"),
		[]byte(strings.Repeat("vertex normal uv ", 40)),
		bytes.Repeat([]byte{7}, 1000),
	}
	for _, in := range inputs {
		enc, err := Run(OpCompress, in)
		require.NoError(t, err)
		assert.Equal(t, codec.Compress(in), enc)

		payload := append(binary.LittleEndian.AppendUint32(nil, uint32(len(in))), enc...)
		dec, err := Run(OpDecompress, payload)
		require.NoError(t, err)
		assert.Equal(t, len(in), len(dec))
		if len(in) > 0 {
			assert.Equal(t, in, dec)
		}
	}
}

func TestDecompressKernelMalformed(t *testing.T) {
	_, err := Run(OpDecompress, []byte{1, 2})
	assert.ErrorIs(t, err, core.ErrInvalidBufferLength)

	payload := append(binary.LittleEndian.AppendUint32(nil, 32), 0x00)
	_, err = Run(OpDecompress, payload)
	assert.ErrorIs(t, err, codec.ErrCorrupt)
}

func TestDeltaKernels(t *testing.T) {
	samples := []float32{0, 10, 5, 1000, -200}

	enc, err := Run(OpDeltaEncode, floatsPayload(samples))
	require.NoError(t, err)
	assert.Len(t, enc, len(samples)*codec.DeltaSize)

	dec, err := Run(OpDeltaDecode, enc)
	require.NoError(t, err)
	assert.Equal(t, samples, mustFloats(t, dec))

	_, err = Run(OpDeltaEncode, []byte{1, 2, 3})
	assert.ErrorIs(t, err, core.ErrInvalidBufferLength)

	dec, err = Run(OpDeltaDecode, nil)
	require.NoError(t, err)
	assert.Empty(t, dec)
}

func TestNoop(t *testing.T) {
	out, err := Run(OpNoop, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func BenchmarkRunMatMul(b *testing.B) {
	id := matrix.Identity()
	payload := floatsPayload(id[:], id[:])

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Run(OpMatMul, payload)
	}
}

func BenchmarkRunSearch(b *testing.B) {
	payload := searchPayload(strings.Repeat("the quick brown fox ", 200)+"needle", "needle")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Run(OpSearch, payload)
	}
}
