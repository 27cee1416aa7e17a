package kernels

import (
	"encoding/binary"
	"math"
	"runtime"

	"github.com/sbl8/vrkernels/core"
	"github.com/sbl8/vrkernels/matrix"
)

// scratchPool is a bounded free list of float32 buffers used to decode
// fixed-size matrix payloads without allocating on every call.
type scratchPool struct {
	buffers chan []float32
	size    int
}

func newScratchPool(size, n int) *scratchPool {
	p := &scratchPool{
		buffers: make(chan []float32, n),
		size:    size,
	}
	for i := 0; i < n; i++ {
		p.buffers <- core.AlignedFloat32s(size)
	}
	return p
}

// get retrieves a buffer, allocating when the pool is empty.
func (p *scratchPool) get() []float32 {
	select {
	case buf := <-p.buffers:
		return buf[:p.size]
	default:
		return core.AlignedFloat32s(p.size)
	}
}

// put returns buf to the pool. Undersized buffers are dropped.
func (p *scratchPool) put(buf []float32) {
	if cap(buf) < p.size {
		return
	}
	select {
	case p.buffers <- buf:
	default:
		// pool full, let GC handle it
	}
}

// matrixScratch holds room for the largest matrix payload: two Mat4 operands.
var matrixScratch = newScratchPool(2*matrix.Mat4Len, runtime.NumCPU()*2)

// readFloats decodes exactly want float32 values from payload into a pooled
// buffer. The caller returns it with matrixScratch.put.
func readFloats(op string, payload []byte, want int) ([]float32, error) {
	if err := core.CheckLen(op, "payload", len(payload), want*core.Float32Size); err != nil {
		return nil, err
	}
	f := matrixScratch.get()[:want]
	for i := range f {
		f[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*core.Float32Size:]))
	}
	return f, nil
}
