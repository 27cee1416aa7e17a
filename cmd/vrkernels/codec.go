package main

import (
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbl8/vrkernels/codec"
	"github.com/sbl8/vrkernels/core"
	"github.com/sbl8/vrkernels/kernels"
)

// The compress container is the OpDecompress payload: u32 LE raw length
// followed by the codec output.

func newCompressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Compress bytes into a length-prefixed token stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd)
			if err != nil {
				return err
			}
			enc, err := kernels.Run(kernels.OpCompress, raw)
			if err != nil {
				return err
			}
			a.debugf("compressed %d -> %d bytes", len(raw), len(enc))
			out := binary.LittleEndian.AppendUint32(make([]byte, 0, 4+len(enc)), uint32(len(raw)))
			return writeOutput(cmd, append(out, enc...))
		},
	}
	addIOFlags(cmd)
	return cmd
}

func newDecompressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompress",
		Short: "Expand the output of compress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readInput(cmd)
			if err != nil {
				return err
			}
			raw, err := kernels.Run(kernels.OpDecompress, payload)
			if err != nil {
				return err
			}
			a.debugf("decompressed %d -> %d bytes", len(payload), len(raw))
			return writeOutput(cmd, raw)
		},
	}
	addIOFlags(cmd)
	return cmd
}

func newDeltaCmd(a *app) *cobra.Command {
	deltaCmd := &cobra.Command{
		Use:   "delta",
		Short: "Lossy 16-bit delta coding of float samples",
	}

	encodeCmd := &cobra.Command{
		Use:   "encode [SAMPLES]",
		Short: "Encode numbers (args or stdin) to little-endian int16 deltas",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textArg(cmd, args)
			if err != nil {
				return err
			}
			samples, err := parseFloats(text)
			if err != nil {
				return err
			}
			a.debugf("encoding %d samples", len(samples))
			return writeOutput(cmd, codec.DeltaEncode(samples))
		},
	}
	encodeCmd.Flags().String("out", "", "Output file (default stdout)")

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode int16 deltas and print one sample per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd)
			if err != nil {
				return err
			}
			if len(src)%codec.DeltaSize != 0 {
				a.debugf("ignoring trailing byte")
			}
			dec, err := kernels.Run(kernels.OpDeltaDecode, src)
			if err != nil {
				return err
			}
			samples, err := core.ReadFloat32s(dec)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range samples {
				fmt.Fprintln(out, formatFloats([]float32{s}))
			}
			return nil
		},
	}
	decodeCmd.Flags().String("in", "", "Input file (default stdin)")

	deltaCmd.AddCommand(encodeCmd, decodeCmd)
	return deltaCmd
}
