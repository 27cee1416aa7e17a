// Package codec implements the byte-stream kernels: a greedy window compressor
// with its decoder, and a lossy float32 delta codec.
//
// Token stream format (no header, tokens back to back):
//
//	literal  [n]          n = 1..15, followed by n raw bytes
//	match    [0x80|l-3]   l = 3..17, followed by the offset 1..4096 big-endian [hi][lo]
//
// Inputs shorter than MinCompressLen are not tokenized at all: Compress returns
// them verbatim, and the caller tells the two cases apart by the raw length
// (see Decompress).
package codec

// Format constants.
const (
	MinCompressLen = 16   // shorter inputs pass through untouched
	WindowSize     = 4096 // farthest back-reference
	MinMatch       = 3
	MaxMatch       = 15 // longest match the encoder emits
	MaxLiteral     = 15

	matchFlag     = 0x80
	maxMatchToken = 17 // longest match the format can express
)

// Compress encodes data with a greedy longest-match scan. The result is a fresh
// slice; data is only read.
//
// The window trails i, so for inputs longer than WindowSize the token stream is
// not byte-identical to encoders that search only the first 4096 bytes.
func Compress(data []byte) []byte {
	if len(data) < MinCompressLen {
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}

	out := make([]byte, 0, len(data)+len(data)/MaxLiteral+1)
	for i := 0; i < len(data); {
		length, offset := longestMatch(data, i)
		if length >= MinMatch {
			out = append(out, matchFlag|byte(length-MinMatch), byte(offset>>8), byte(offset))
			i += length
			continue
		}

		n := len(data) - i
		if n > MaxLiteral {
			n = MaxLiteral
		}
		out = append(out, byte(n))
		out = append(out, data[i:i+n]...)
		i += n
	}
	return out
}

// longestMatch scans candidate starts in [i-WindowSize, i) oldest first and
// returns the first longest run. Runs never extend past i, so every match
// copies bytes that are already in the output.
func longestMatch(data []byte, i int) (length, offset int) {
	start := i - WindowSize
	if start < 0 {
		start = 0
	}
	for j := start; j < i; j++ {
		l := 0
		for i+l < len(data) && j+l < i && data[i+l] == data[j+l] {
			l++
			if l >= MaxMatch {
				break
			}
		}
		if l > length {
			length = l
			offset = i - j
			if length == MaxMatch {
				break
			}
		}
	}
	return length, offset
}
