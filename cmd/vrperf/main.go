package main

import (
	"fmt"
	"io"
	"log"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sbl8/vrkernels/config"
	"github.com/sbl8/vrkernels/matrix"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// perf runs one benchmark session.
type perf struct {
	cfg *config.Config
	out io.Writer
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "vrperf",
		Short:         "vrkernels performance analysis tool",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return err
			}
			config.ApplyEnv(cfg)

			// flags win over file and environment
			if cmd.Flags().Changed("test") {
				cfg.Perf.Test, _ = cmd.Flags().GetString("test")
			}
			if cmd.Flags().Changed("size") {
				cfg.Perf.Size, _ = cmd.Flags().GetInt("size")
			}
			if cmd.Flags().Changed("iter") {
				cfg.Perf.Iterations, _ = cmd.Flags().GetInt("iter")
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Log.Verbose, _ = cmd.Flags().GetBool("verbose")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log.SetFlags(0)
			log.SetPrefix("vrperf: ")
			p := &perf{cfg: cfg, out: cmd.OutOrStdout()}
			return p.run()
		},
	}
	cmd.Flags().String("test", config.TestAll, "Test type: all, matrix, text, codec")
	cmd.Flags().Int("size", 64*1024, "Payload size in bytes for text and codec tests")
	cmd.Flags().Int("iter", 100, "Number of iterations")
	cmd.Flags().String("config", "", "YAML config file")
	cmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	return cmd
}

func (p *perf) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *perf) run() error {
	info := matrix.Info()

	p.printf("vrkernels Performance Analysis Tool\n")
	p.printf("===================================\n")
	p.printf("Go Version: %s\n", runtime.Version())
	p.printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	p.printf("CPUs: %d\n", runtime.NumCPU())
	p.printf("Test Size: %d bytes\n", p.cfg.Perf.Size)
	p.printf("Iterations: %d\n", p.cfg.Perf.Iterations)
	p.printf("Matrix Backend: %s (accelerated: %t)\n", info.Implementation, info.Accelerated)
	p.printf("\n")
	if p.cfg.Log.Verbose {
		log.Printf("config %s", p.cfg)
	}

	switch p.cfg.Perf.Test {
	case config.TestAll:
		p.printf("Running comprehensive performance tests...\n\n")
		p.runMatrixTests()
		p.runTextTests()
		return p.runCodecTests()
	case config.TestMatrix:
		p.runMatrixTests()
	case config.TestText:
		p.runTextTests()
	case config.TestCodec:
		return p.runCodecTests()
	}
	return nil
}
