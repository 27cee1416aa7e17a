package codec

import (
	"errors"
	"fmt"

	"github.com/sbl8/vrkernels/core"
)

// ErrCorrupt reports a malformed token stream.
var ErrCorrupt = errors.New("codec: corrupt token stream")

// Decode expands a token stream produced by Compress. It does not handle the
// short-input passthrough; use Decompress when the raw length is known.
func Decode(src []byte) ([]byte, error) {
	out := make([]byte, 0, 2*len(src))
	for i := 0; i < len(src); {
		tag := src[i]

		if tag&matchFlag != 0 {
			if i+3 > len(src) {
				return nil, fmt.Errorf("%w: truncated match token at %d", ErrCorrupt, i)
			}
			length := int(tag&^matchFlag) + MinMatch
			if length > maxMatchToken {
				return nil, fmt.Errorf("%w: match length %d at %d", ErrCorrupt, length, i)
			}
			offset := int(src[i+1])<<8 | int(src[i+2])
			if offset == 0 || offset > WindowSize || offset > len(out) {
				return nil, core.OutOfRange("codec.Decode", "offset", offset, len(out))
			}

			// byte by byte: a run may overlap the bytes it produces
			from := len(out) - offset
			for k := 0; k < length; k++ {
				out = append(out, out[from+k])
			}
			i += 3
			continue
		}

		n := int(tag)
		if n == 0 || n > MaxLiteral {
			return nil, fmt.Errorf("%w: literal length %d at %d", ErrCorrupt, n, i)
		}
		if i+1+n > len(src) {
			return nil, fmt.Errorf("%w: truncated literal at %d", ErrCorrupt, i)
		}
		out = append(out, src[i+1:i+1+n]...)
		i += 1 + n
	}
	return out, nil
}

// Decompress reverses Compress given the length of the original input.
// rawLen < MinCompressLen means src is the input itself.
func Decompress(src []byte, rawLen int) ([]byte, error) {
	const op = "codec.Decompress"
	if rawLen < 0 {
		return nil, core.OutOfRange(op, "rawLen", rawLen, 0)
	}
	if rawLen < MinCompressLen {
		if err := core.CheckLen(op, "src", len(src), rawLen); err != nil {
			return nil, err
		}
		out := make([]byte, rawLen)
		copy(out, src)
		return out, nil
	}

	out, err := Decode(src)
	if err != nil {
		return nil, err
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("%w: decoded %d bytes, want %d", ErrCorrupt, len(out), rawLen)
	}
	return out, nil
}
