// WASM module exposing the kernel catalog to a JavaScript or native host.
//
// Uses pre-allocated static buffers so no call allocates on the host side.
// The host writes a payload into the input buffer, calls run with an opcode
// from package kernels, then copies the result out of the output buffer.
//
// Build: tinygo build -o vrkernels.wasm -target=wasi -opt=2 ./cmd/vrkernels-wasm
package main

import (
	"errors"
	"log"
	"unsafe"

	"github.com/sbl8/vrkernels/codec"
	"github.com/sbl8/vrkernels/core"
	"github.com/sbl8/vrkernels/kernels"
	"github.com/sbl8/vrkernels/matrix"
)

// Buffer capacity in bytes, per direction.
const capacity = 1 << 20

// Static buffers - allocated once, stable addresses
var (
	inBuf  [capacity]byte
	outBuf [capacity]byte
	errBuf [256]byte
	errLen int
)

// Status codes returned by run in place of a length.
const (
	statusUnknownOp      = -1
	statusInvalidLength  = -2
	statusEmptyPattern   = -3
	statusOutOfRange     = -4
	statusCorrupt        = -5
	statusOutputTooLarge = -6
	statusInputTooLarge  = -7
	statusFailed         = -8
)

func init() {
	log.Printf("vrkernels module loaded (matrix backend %s)", matrix.Info().Implementation)
}

// main is required but empty for WASM library
func main() {}

//export in_ptr
func inPtr() uint32 {
	return uint32(uintptr(unsafe.Pointer(&inBuf[0])))
}

//export out_ptr
func outPtr() uint32 {
	return uint32(uintptr(unsafe.Pointer(&outBuf[0])))
}

//export buffer_capacity
func bufferCapacity() uint32 {
	return capacity
}

//export last_error_ptr
func lastErrorPtr() uint32 {
	return uint32(uintptr(unsafe.Pointer(&errBuf[0])))
}

//export last_error_len
func lastErrorLen() uint32 {
	return uint32(errLen)
}

// run executes opcode over the first n bytes of the input buffer. It returns
// the result length in the output buffer, or a negative status code with the
// message available through last_error_ptr/last_error_len.
//
//export run
func run(opcode uint32, n uint32) int32 {
	errLen = 0
	if n > capacity {
		return fail(statusInputTooLarge, errors.New("input exceeds buffer capacity"))
	}
	if opcode > 0xFF {
		return fail(statusUnknownOp, kernels.ErrUnknownOp)
	}

	out, err := kernels.Run(byte(opcode), inBuf[:n])
	if err != nil {
		return fail(statusOf(err), err)
	}
	if len(out) > capacity {
		return fail(statusOutputTooLarge, errors.New("result exceeds buffer capacity"))
	}
	return int32(copy(outBuf[:], out))
}

func statusOf(err error) int32 {
	switch {
	case errors.Is(err, kernels.ErrUnknownOp):
		return statusUnknownOp
	case errors.Is(err, core.ErrInvalidBufferLength):
		return statusInvalidLength
	case errors.Is(err, core.ErrEmptyPattern):
		return statusEmptyPattern
	case errors.Is(err, core.ErrIndexOutOfRange):
		return statusOutOfRange
	case errors.Is(err, codec.ErrCorrupt):
		return statusCorrupt
	default:
		return statusFailed
	}
}

func fail(status int32, err error) int32 {
	errLen = copy(errBuf[:], err.Error())
	return status
}
