package main

import (
	"math/rand"
	"strings"
	"time"

	"github.com/sbl8/vrkernels/core"
	"github.com/sbl8/vrkernels/kernels"
	"github.com/sbl8/vrkernels/matrix"
	"github.com/sbl8/vrkernels/textproc"
)

// sceneWords feeds the synthetic text corpus.
var sceneWords = []string{
	"mesh", "shader", "texture", "vertex", "normal", "quaternion", "matrix",
	"camera", "render", "frame", "the", "a", "of", "to", "scene", "graph",
	"Controller", "HAND", "pose", "anchor", "ＶＲ", "café",
}

func (p *perf) runMatrixTests() {
	p.printf("Matrix Operations Performance\n")
	p.printf("----------------------------\n")

	iter := p.cfg.Perf.Iterations * 1000
	a := randomMat4()
	b := randomMat4()
	v := matrix.Vec4{1, 2, 3, 1}
	q := matrix.Quaternion{X: 0.1, Y: 0.2, Z: 0.3, W: 0.9}.Normalize()

	var sink matrix.Mat4
	start := time.Now()
	for i := 0; i < iter; i++ {
		sink = matrix.MultiplyMatrices(a, b)
	}
	mulTime := time.Since(start)

	var vsink matrix.Vec4
	start = time.Now()
	for i := 0; i < iter; i++ {
		vsink = matrix.TransformVector(a, v)
	}
	transformTime := time.Since(start)

	start = time.Now()
	for i := 0; i < iter; i++ {
		sink = matrix.QuaternionToMatrix(q)
	}
	quatTime := time.Since(start)

	// the same multiply through the byte-level host boundary
	payload := core.AppendFloat32s(core.AppendFloat32s(nil, a[:]), b[:])
	start = time.Now()
	for i := 0; i < iter; i++ {
		_, _ = kernels.Run(kernels.OpMatMul, payload)
	}
	boundaryTime := time.Since(start)
	_, _ = sink, vsink

	opsPerSecond := func(d time.Duration) float64 {
		return float64(iter) / d.Seconds()
	}
	p.printf("Multiply 4x4:                %v (%.2f Mops/s)\n", mulTime, opsPerSecond(mulTime)/1e6)
	p.printf("Transform Vec4:              %v (%.2f Mops/s)\n", transformTime, opsPerSecond(transformTime)/1e6)
	p.printf("Quaternion -> Matrix:        %v (%.2f Mops/s)\n", quatTime, opsPerSecond(quatTime)/1e6)
	p.printf("Multiply via kernels.Run:    %v (%.2f Mops/s)\n", boundaryTime, opsPerSecond(boundaryTime)/1e6)
	if p.cfg.Log.Verbose {
		p.printf("  Boundary overhead: %.2fx\n", float64(boundaryTime)/float64(mulTime))
	}
	p.printf("\n")
}

func (p *perf) runTextTests() {
	p.printf("Text Processing Performance\n")
	p.printf("--------------------------\n")

	text := generateText(p.cfg.Perf.Size)
	haystack := text + " needle"
	iter := p.cfg.Perf.Iterations

	var found int
	start := time.Now()
	for i := 0; i < iter; i++ {
		found = textproc.Search(haystack, "needle")
	}
	searchTime := time.Since(start)

	start = time.Now()
	for i := 0; i < iter; i++ {
		_ = textproc.NormalizeText(text)
	}
	normalizeTime := time.Since(start)

	var top []string
	start = time.Now()
	for i := 0; i < iter; i++ {
		top = textproc.ExtractKeywords(text, p.cfg.Text.MaxKeywords)
	}
	keywordsTime := time.Since(start)

	p.printf("Search:                      %v (%.2f MB/s)\n", searchTime, mbPerSecond(len(haystack), iter, searchTime))
	p.printf("Normalize:                   %v (%.2f MB/s)\n", normalizeTime, mbPerSecond(len(text), iter, normalizeTime))
	p.printf("Extract Keywords:            %v (%.2f MB/s)\n", keywordsTime, mbPerSecond(len(text), iter, keywordsTime))
	if p.cfg.Log.Verbose {
		p.printf("  Needle at character %d\n", found)
		p.printf("  Top keywords: %s\n", strings.Join(top, ", "))
	}
	p.printf("\n")
}

func mbPerSecond(n, iter int, d time.Duration) float64 {
	return float64(n) * float64(iter) / d.Seconds() / 1e6
}

func randomMat4() matrix.Mat4 {
	var m matrix.Mat4
	for i := range m {
		m[i] = rand.Float32()*200 - 100 // Range: -100 to 100
	}
	return m
}

// generateText builds roughly size bytes of space-separated scene words with
// a skewed frequency distribution.
func generateText(size int) string {
	var sb strings.Builder
	sb.Grow(size + 16)
	for sb.Len() < size {
		// squaring biases toward the front of the list
		r := rand.Float64()
		sb.WriteString(sceneWords[int(r*r*float64(len(sceneWords)))])
		sb.WriteByte(' ')
	}
	return sb.String()
}
