package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sbl8/vrkernels/core"
	"github.com/sbl8/vrkernels/matrix"
)

// parseFixed parses s and requires exactly n values.
func parseFixed(op, arg, s string, n int) ([]float32, error) {
	v, err := parseFloats(s)
	if err != nil {
		return nil, err
	}
	if err := core.CheckLen(op, arg, len(v), n); err != nil {
		return nil, err
	}
	return v, nil
}

func printMat4(w io.Writer, m matrix.Mat4) {
	for r := 0; r < 4; r++ {
		fmt.Fprintln(w, formatFloats(m[r*4:r*4+4]))
	}
}

func newMatMulCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "matmul A B",
		Short: "Multiply two 4x4 matrices",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ma, err := parseFixed("matmul", "A", args[0], matrix.Mat4Len)
			if err != nil {
				return err
			}
			mb, err := parseFixed("matmul", "B", args[1], matrix.Mat4Len)
			if err != nil {
				return err
			}
			a.debugf("matmul using %s", matrix.Info().Implementation)
			printMat4(cmd.OutOrStdout(), matrix.MultiplyMatrices(matrix.Mat4(ma), matrix.Mat4(mb)))
			return nil
		},
	}
}

func newTransformCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "transform M V",
		Short: "Transform a 4-vector by a 4x4 matrix",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseFixed("transform", "M", args[0], matrix.Mat4Len)
			if err != nil {
				return err
			}
			v, err := parseFixed("transform", "V", args[1], matrix.Vec4Len)
			if err != nil {
				return err
			}
			w := matrix.TransformVector(matrix.Mat4(m), matrix.Vec4(v))
			fmt.Fprintln(cmd.OutOrStdout(), formatFloats(w[:]))
			return nil
		},
	}
}

func newQuatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quat X,Y,Z,W",
		Short: "Convert a quaternion to a rotation matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFixed("quat", "q", args[0], 4)
			if err != nil {
				return err
			}
			q := matrix.Quaternion{X: v[0], Y: v[1], Z: v[2], W: v[3]}
			if normalize, _ := cmd.Flags().GetBool("normalize"); normalize {
				q = q.Normalize()
				a.debugf("normalized to %v", q)
			}
			printMat4(cmd.OutOrStdout(), matrix.QuaternionToMatrix(q))
			return nil
		},
	}
	cmd.Flags().Bool("normalize", false, "Normalize the quaternion first")
	return cmd
}
