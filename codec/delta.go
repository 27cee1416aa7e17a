package codec

import (
	"encoding/binary"
	"math"

	"github.com/sbl8/vrkernels/core"
)

// DeltaSize is the encoded width of one delta.
const DeltaSize = 2

// DeltaEncode stores each sample as its difference from the previous sample
// (the first against 0), truncated toward zero and narrowed to int16 with
// two's-complement wraparound, little-endian.
//
// The codec is lossy: fractional deltas lose their fraction and deltas outside
// [-32768, 32767] wrap. A NaN or infinite delta encodes as 0.
func DeltaEncode(samples []float32) []byte {
	out := make([]byte, len(samples)*DeltaSize)
	var last float32
	for i, v := range samples {
		binary.LittleEndian.PutUint16(out[i*DeltaSize:], uint16(wrapInt16(v-last)))
		last = v
	}
	return out
}

// wrapInt16 truncates d and keeps its low 16 bits.
func wrapInt16(d float32) int16 {
	t := math.Trunc(float64(d))
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	// Mod keeps |t| < 2^16 so the int64 conversion is exact; int16 then wraps.
	return int16(int64(math.Mod(t, 1<<16)))
}

// DeltaDecode rebuilds samples as the running sum of the deltas in src,
// starting at 0. A trailing odd byte is ignored.
func DeltaDecode(src []byte) []float32 {
	out := make([]float32, len(src)/DeltaSize)
	decodeDeltas(out, src)
	return out
}

// DeltaDecodeInto writes the decoded samples into dst and returns how many
// were written. dst must hold at least len(src)/2 values.
func DeltaDecodeInto(dst []float32, src []byte) (int, error) {
	n := len(src) / DeltaSize
	if err := core.CheckMinLen("codec.DeltaDecodeInto", "dst", len(dst), n); err != nil {
		return 0, err
	}
	decodeDeltas(dst[:n], src)
	return n, nil
}

func decodeDeltas(dst []float32, src []byte) {
	var cur float32
	for i := range dst {
		cur += float32(int16(binary.LittleEndian.Uint16(src[i*DeltaSize:])))
		dst[i] = cur
	}
}
