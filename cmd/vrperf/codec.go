package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"

	"github.com/sbl8/vrkernels/codec"
	"github.com/sbl8/vrkernels/config"
	"github.com/sbl8/vrkernels/core"
)

// baseline is a general-purpose codec the in-house compressor is measured against.
type baseline struct {
	name   string
	encode func(src []byte) ([]byte, error)
	decode func(src []byte) ([]byte, error)
}

func s2Baseline() baseline {
	return baseline{
		name:   config.BaselineS2,
		encode: func(src []byte) ([]byte, error) { return s2.Encode(nil, src), nil },
		decode: func(src []byte) ([]byte, error) { return s2.Decode(nil, src) },
	}
}

func zstdBaseline() (baseline, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return baseline{}, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return baseline{}, fmt.Errorf("zstd decoder: %w", err)
	}
	return baseline{
		name:   config.BaselineZstd,
		encode: func(src []byte) ([]byte, error) { return enc.EncodeAll(src, nil), nil },
		decode: func(src []byte) ([]byte, error) { return dec.DecodeAll(src, nil) },
	}, nil
}

func gzipBaseline() baseline {
	return baseline{
		name: config.BaselineGzip,
		encode: func(src []byte) ([]byte, error) {
			var buf bytes.Buffer
			w, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
			if err != nil {
				return nil, err
			}
			if _, err := w.Write(src); err != nil {
				return nil, err
			}
			if err := w.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		decode: func(src []byte) ([]byte, error) {
			r, err := gzip.NewReader(bytes.NewReader(src))
			if err != nil {
				return nil, err
			}
			defer r.Close()
			return io.ReadAll(r)
		},
	}
}

// baselines returns the codecs enabled in cfg, in configured order.
func baselines(cfg *config.Config) ([]baseline, error) {
	var out []baseline
	for _, name := range cfg.Perf.Baselines {
		switch name {
		case config.BaselineS2:
			out = append(out, s2Baseline())
		case config.BaselineZstd:
			b, err := zstdBaseline()
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		case config.BaselineGzip:
			out = append(out, gzipBaseline())
		default:
			return nil, fmt.Errorf("unknown baseline codec %q", name)
		}
	}
	return out, nil
}

// codecResult is one compressor's measurement.
type codecResult struct {
	name    string
	ratio   float64
	encTime time.Duration
	decTime time.Duration
}

// measure times iter encode and decode passes of one codec over data and
// checks that the round trip is lossless.
func measure(b baseline, data []byte, iter int) (codecResult, error) {
	var enc []byte
	var err error
	start := time.Now()
	for i := 0; i < iter; i++ {
		if enc, err = b.encode(data); err != nil {
			return codecResult{}, fmt.Errorf("%s encode: %w", b.name, err)
		}
	}
	encTime := time.Since(start)

	var dec []byte
	start = time.Now()
	for i := 0; i < iter; i++ {
		if dec, err = b.decode(enc); err != nil {
			return codecResult{}, fmt.Errorf("%s decode: %w", b.name, err)
		}
	}
	decTime := time.Since(start)

	if !bytes.Equal(dec, data) {
		return codecResult{}, fmt.Errorf("%s: round trip mismatch", b.name)
	}
	return codecResult{
		name:    b.name,
		ratio:   float64(len(enc)) / float64(len(data)),
		encTime: encTime,
		decTime: decTime,
	}, nil
}

func vrkBaseline(rawLen int) baseline {
	return baseline{
		name:   "vrkernels",
		encode: func(src []byte) ([]byte, error) { return codec.Compress(src), nil },
		decode: func(src []byte) ([]byte, error) { return codec.Decompress(src, rawLen) },
	}
}

func (p *perf) runCodecTests() error {
	p.printf("Compression Performance\n")
	p.printf("-----------------------\n")

	data := []byte(generateText(p.cfg.Perf.Size))
	iter := p.cfg.Perf.Iterations

	others, err := baselines(p.cfg)
	if err != nil {
		return err
	}
	all := append([]baseline{vrkBaseline(len(data))}, others...)

	for _, b := range all {
		r, err := measure(b, data, iter)
		if err != nil {
			return err
		}
		p.printf("%-12s ratio %.3f  enc %v (%.2f MB/s)  dec %v (%.2f MB/s)\n",
			r.name, r.ratio,
			r.encTime, mbPerSecond(len(data), iter, r.encTime),
			r.decTime, mbPerSecond(len(data), iter, r.decTime))
	}
	p.printf("\n")

	return p.runDeltaTests(others)
}

func (p *perf) runDeltaTests(others []baseline) error {
	p.printf("Delta Coding Performance\n")
	p.printf("------------------------\n")

	n := p.cfg.Perf.Size / core.Float32Size
	if n == 0 {
		n = 1
	}
	samples := generateSignal(n)
	raw := core.AppendFloat32s(nil, samples)
	iter := p.cfg.Perf.Iterations

	var enc []byte
	start := time.Now()
	for i := 0; i < iter; i++ {
		enc = codec.DeltaEncode(samples)
	}
	encTime := time.Since(start)

	var dec []float32
	start = time.Now()
	for i := 0; i < iter; i++ {
		dec = codec.DeltaDecode(enc)
	}
	decTime := time.Since(start)

	var maxErr float32
	for i := range samples {
		d := samples[i] - dec[i]
		if d < 0 {
			d = -d
		}
		if d > maxErr {
			maxErr = d
		}
	}

	p.printf("%-12s ratio %.3f  enc %v (%.2f MB/s)  dec %v (%.2f MB/s)  max error %g\n",
		"delta", float64(len(enc))/float64(len(raw)),
		encTime, mbPerSecond(len(raw), iter, encTime),
		decTime, mbPerSecond(len(raw), iter, decTime),
		maxErr)

	// lossless general-purpose codecs over the same raw samples, then stacked on the deltas
	for _, b := range others {
		r, err := measure(b, raw, iter)
		if err != nil {
			return err
		}
		stacked, err := b.encode(enc)
		if err != nil {
			return fmt.Errorf("%s encode: %w", b.name, err)
		}
		p.printf("%-12s ratio %.3f  enc %v  delta+%s ratio %.3f\n",
			r.name, r.ratio, r.encTime, b.name, float64(len(stacked))/float64(len(raw)))
	}
	p.printf("\n")
	return nil
}

// generateSignal returns a quantized random walk, the shape of a tracked
// joint coordinate.
func generateSignal(n int) []float32 {
	out := make([]float32, n)
	var cur float32
	for i := range out {
		cur += float32(rand.Intn(201) - 100)
		out[i] = cur
	}
	return out
}
