// Package vrkernels collects the hot-path kernels of a VR scene-graph runtime:
// 4x4 matrix math, text search and keyword extraction, and byte-stream
// compression.
//
// Each kernel is a pure function. Inputs are borrowed for the duration of one
// call, results are freshly allocated, and nothing is retained between calls,
// so every kernel is safe to call from any number of goroutines.
//
// # Architecture Overview
//
// The kernels are grouped by the data they touch:
//
//   - matrix: Mat4 multiply, vector transform, quaternion to rotation matrix
//   - textproc: Boyer-Moore search, NFKC normalization, keyword ranking
//   - codec: greedy window compressor and its decoder, lossy int16 delta codec
//   - kernels: opcode catalog running every kernel over little-endian payloads
//
// # Performance Characteristics
//
//   - Row dot products go through vek32, which uses AVX2 when the CPU has it
//   - Matrix results at the host boundary are cache-line aligned
//   - Fixed-size payload decoding reuses pooled scratch buffers
//
// # Basic Usage
//
//	a := matrix.Identity()
//	b := matrix.QuaternionToMatrix(matrix.Quaternion{W: 1})
//	m := matrix.MultiplyMatrices(a, b)
//
//	idx := textproc.Search("left controller", "controller") // 5
//
//	packed := codec.Compress(data)
//	raw, err := codec.Decompress(packed, len(data))
//
// # Package Structure
//
//   - core: error taxonomy, payload encoding, aligned allocation
//   - matrix, textproc, codec: the kernel groups
//   - kernels: byte-level catalog for host bindings
//   - config: YAML and environment configuration for the tools
//   - cmd: command-line tools (vrkernels, vrperf) and the WASM module
package vrkernels
