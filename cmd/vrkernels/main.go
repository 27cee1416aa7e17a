// Package main provides the vrkernels CLI: every kernel as a subcommand, for
// scripting and for checking results against a host integration.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sbl8/vrkernels/config"
	"github.com/sbl8/vrkernels/matrix"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// app carries state resolved before any subcommand runs.
type app struct {
	cfg     *config.Config
	verbose bool
}

// debugf logs only in verbose mode.
func (a *app) debugf(format string, args ...any) {
	if a.verbose {
		log.Printf(format, args...)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vrkernels",
		Short: "VR hot-path kernels: matrices, text and compression",
		Long: `vrkernels runs the scene-graph kernels from the command line.

Matrices are 16 comma-separated floats in row-major order, vectors and
quaternions are 4. Text commands read their argument or stdin. Byte
commands read --in (default stdin) and write --out (default stdout).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Log.Verbose, _ = cmd.Flags().GetBool("verbose")
			}
			a.cfg = cfg
			a.verbose = cfg.Log.Verbose

			log.SetFlags(0)
			log.SetPrefix(cfg.Log.Prefix)
			a.debugf("loaded %s", cfg)
			return nil
		},
	}
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vrkernels v%s (%s)\n", version, commit)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show runtime and acceleration details",
		Run: func(cmd *cobra.Command, args []string) {
			info := matrix.Info()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "CPUs: %d\n", runtime.NumCPU())
			fmt.Fprintf(out, "Matrix Implementation: %s\n", info.Implementation)
			fmt.Fprintf(out, "Accelerated: %t\n", info.Accelerated)
			fmt.Fprintf(out, "CPU Features: %s\n", strings.Join(info.Features, " "))
		},
	})

	rootCmd.AddCommand(
		newMatMulCmd(a),
		newTransformCmd(a),
		newQuatCmd(a),
		newSearchCmd(a),
		newNormalizeCmd(a),
		newKeywordsCmd(a),
		newCompressCmd(a),
		newDecompressCmd(a),
		newDeltaCmd(a),
	)
	return rootCmd
}

// parseFloats parses a comma or whitespace separated list of numbers.
func parseFloats(s string) ([]float32, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", f, err)
		}
		out = append(out, float32(v))
	}
	return out, nil
}

// formatFloats renders values space-separated with the shortest exact form.
func formatFloats(v []float32) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	return strings.Join(parts, " ")
}

// textArg returns the joined args, or stdin when there are none.
func textArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// readInput reads --in, or stdin when it is empty or "-".
func readInput(cmd *cobra.Command) ([]byte, error) {
	path, _ := cmd.Flags().GetString("in")
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// writeOutput writes data to --out, or stdout when it is empty or "-".
func writeOutput(cmd *cobra.Command, data []byte) error {
	path, _ := cmd.Flags().GetString("out")
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func addIOFlags(cmd *cobra.Command) {
	cmd.Flags().String("in", "", "Input file (default stdin)")
	cmd.Flags().String("out", "", "Output file (default stdout)")
}
