// Package matrix provides the 3-D linear algebra kernels used on the render path.
//
// All matrices are 4×4, single precision and row-major: element (i, j) lives at
// index i*4+j. The kernels are pure functions over value types; the slice forms
// (MultiplyInto, TransformInto, QuaternionInto) exist for host-owned buffers and
// validate their lengths instead of indexing blindly.
//
// Available operations:
//   - MultiplyMatrices: C = A·B, 64 multiply-adds
//   - TransformVector: w = M·v in homogeneous coordinates
//   - QuaternionToMatrix: unit quaternion to rotation matrix with zero translation
//
// On amd64 with AVX2+FMA the row dot products run through vek32. Other amd64
// CPUs use an unrolled scalar expression, and other architectures use vek32's
// pure Go loops. See Info.
package matrix

import "github.com/sbl8/vrkernels/core"

// Mat4 is a row-major 4×4 transform.
type Mat4 [16]float32

// Vec4 is a homogeneous 4-component vector.
type Vec4 [4]float32

// Quaternion is a rotation (x, y, z, w). It is assumed, not verified, to have
// unit norm; a non-unit quaternion yields a non-orthogonal matrix.
type Quaternion struct {
	X, Y, Z, W float32
}

// Element counts of the fixed-size buffers.
const (
	Mat4Len = 16
	Vec4Len = 4
)

// Identity returns the 4×4 identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromSlice copies a 16-element slice into a Mat4.
func FromSlice(s []float32) (Mat4, error) {
	var m Mat4
	if err := core.CheckLen("matrix.FromSlice", "s", len(s), Mat4Len); err != nil {
		return m, err
	}
	copy(m[:], s)
	return m, nil
}

// At returns element (row, col).
func (m Mat4) At(row, col int) float32 {
	return m[row*4+col]
}

// Transpose returns the transposed matrix. It converts between the row-major
// layout used here and column-major APIs such as WebGL uniforms.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t[j*4+i] = m[i*4+j]
		}
	}
	return t
}

// MultiplyMatrices computes C[i][j] = Σ_k A[i][k]·B[k][j].
func MultiplyMatrices(a, b Mat4) Mat4 {
	var c Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[i*4+k] * b[k*4+j]
			}
			c[i*4+j] = sum
		}
	}
	return c
}

// TransformVector computes w[i] = Σ_j M[i][j]·v[j].
func TransformVector(m Mat4, v Vec4) Vec4 {
	var w Vec4
	for i := 0; i < 4; i++ {
		w[i] = dot4(m[i*4:i*4+4], v[:])
	}
	return w
}

// QuaternionToMatrix converts q to a rotation matrix with zero translation.
// q is not normalized here; see Quaternion.Normalize.
func QuaternionToMatrix(q Quaternion) Mat4 {
	x2 := q.X * q.X
	y2 := q.Y * q.Y
	z2 := q.Z * q.Z
	xy := q.X * q.Y
	xz := q.X * q.Z
	yz := q.Y * q.Z
	wx := q.W * q.X
	wy := q.W * q.Y
	wz := q.W * q.Z

	return Mat4{
		1 - 2*(y2+z2), 2 * (xy - wz), 2 * (xz + wy), 0,
		2 * (xy + wz), 1 - 2*(x2+z2), 2 * (yz - wx), 0,
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(x2+y2), 0,
		0, 0, 0, 1,
	}
}

// Normalize returns q scaled to unit length. The zero quaternion is returned
// unchanged.
func (q Quaternion) Normalize() Quaternion {
	n := norm4([]float32{q.X, q.Y, q.Z, q.W})
	if n == 0 {
		return q
	}
	return Quaternion{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// MultiplyInto writes a·b into dst. All three slices must hold exactly 16
// elements; dst is left untouched on error and may alias a or b.
func MultiplyInto(dst, a, b []float32) error {
	const op = "matrix.MultiplyInto"
	if err := core.CheckLen(op, "a", len(a), Mat4Len); err != nil {
		return err
	}
	if err := core.CheckLen(op, "b", len(b), Mat4Len); err != nil {
		return err
	}
	if err := core.CheckLen(op, "dst", len(dst), Mat4Len); err != nil {
		return err
	}
	c := MultiplyMatrices(Mat4(a), Mat4(b))
	copy(dst, c[:])
	return nil
}

// TransformInto writes m·v into dst. m must hold 16 elements, v and dst 4.
func TransformInto(dst, m, v []float32) error {
	const op = "matrix.TransformInto"
	if err := core.CheckLen(op, "m", len(m), Mat4Len); err != nil {
		return err
	}
	if err := core.CheckLen(op, "v", len(v), Vec4Len); err != nil {
		return err
	}
	if err := core.CheckLen(op, "dst", len(dst), Vec4Len); err != nil {
		return err
	}
	w := TransformVector(Mat4(m), Vec4(v))
	copy(dst, w[:])
	return nil
}

// QuaternionInto writes the rotation matrix for (x, y, z, w) into dst.
func QuaternionInto(dst []float32, x, y, z, w float32) error {
	if err := core.CheckLen("matrix.QuaternionInto", "dst", len(dst), Mat4Len); err != nil {
		return err
	}
	m := QuaternionToMatrix(Quaternion{X: x, Y: y, Z: z, W: w})
	copy(dst, m[:])
	return nil
}
