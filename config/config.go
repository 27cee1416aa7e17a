// Package config holds the settings shared by the vrkernels command-line tools.
//
// Settings are resolved in this order, later sources winning:
//
//  1. Built-in defaults (LoadDefaults)
//  2. A YAML file (LoadFromFile)
//  3. VRK_* environment variables (ApplyEnv)
//  4. Command-line flags, applied by each tool
//
// Example YAML:
//
//	perf:
//	  test: codec
//	  size: 65536
//	  iterations: 200
//	  baselines: [s2, zstd, gzip]
//	text:
//	  max_keywords: 10
//	log:
//	  verbose: true
//
// Environment variables:
//
//	VRK_PERF_TEST        benchmark group: all, matrix, text or codec
//	VRK_PERF_SIZE        payload size in bytes for text and codec benchmarks
//	VRK_PERF_ITERATIONS  iterations per benchmark
//	VRK_PERF_BASELINES   comma-separated baseline codecs
//	VRK_MAX_KEYWORDS     default keyword limit
//	VRK_VERBOSE          verbose logging (true/1/yes/on)
//	VRK_LOG_PREFIX       log line prefix
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Benchmark groups accepted by PerfConfig.Test.
const (
	TestAll    = "all"
	TestMatrix = "matrix"
	TestText   = "text"
	TestCodec  = "codec"
)

// Baseline codecs vrperf can compare against.
const (
	BaselineS2   = "s2"
	BaselineZstd = "zstd"
	BaselineGzip = "gzip"
)

// Config is the resolved configuration.
type Config struct {
	Perf PerfConfig `yaml:"perf"`
	Text TextConfig `yaml:"text"`
	Log  LogConfig  `yaml:"log"`
}

// PerfConfig controls the vrperf harness.
type PerfConfig struct {
	Test       string   `yaml:"test"`
	Size       int      `yaml:"size"`
	Iterations int      `yaml:"iterations"`
	Baselines  []string `yaml:"baselines"`
}

// TextConfig holds defaults for the text kernels.
type TextConfig struct {
	MaxKeywords int `yaml:"max_keywords"`
}

// LogConfig controls tool logging.
type LogConfig struct {
	Verbose bool   `yaml:"verbose"`
	Prefix  string `yaml:"prefix"`
}

// LoadDefaults returns the built-in configuration.
func LoadDefaults() *Config {
	return &Config{
		Perf: PerfConfig{
			Test:       TestAll,
			Size:       64 * 1024,
			Iterations: 100,
			Baselines:  []string{BaselineS2, BaselineZstd, BaselineGzip},
		},
		Text: TextConfig{
			MaxKeywords: 10,
		},
		Log: LogConfig{
			Prefix: "vrkernels: ",
		},
	}
}

// LoadFromFile overlays the YAML file at path onto the defaults. A missing
// file yields the defaults. Unknown keys are rejected.
func LoadFromFile(path string) (*Config, error) {
	cfg := LoadDefaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Load resolves defaults, the file at path and the environment, then validates.
func Load(path string) (*Config, error) {
	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any VRK_* variables that are set. Values that do
// not parse are ignored.
func ApplyEnv(cfg *Config) {
	cfg.Perf.Test = getEnv("VRK_PERF_TEST", cfg.Perf.Test)
	cfg.Perf.Size = getEnvInt("VRK_PERF_SIZE", cfg.Perf.Size)
	cfg.Perf.Iterations = getEnvInt("VRK_PERF_ITERATIONS", cfg.Perf.Iterations)
	cfg.Perf.Baselines = getEnvStringSlice("VRK_PERF_BASELINES", cfg.Perf.Baselines)
	cfg.Text.MaxKeywords = getEnvInt("VRK_MAX_KEYWORDS", cfg.Text.MaxKeywords)
	cfg.Log.Verbose = getEnvBool("VRK_VERBOSE", cfg.Log.Verbose)
	cfg.Log.Prefix = getEnv("VRK_LOG_PREFIX", cfg.Log.Prefix)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Perf.Test {
	case TestAll, TestMatrix, TestText, TestCodec:
	default:
		return fmt.Errorf("invalid perf test %q (want all, matrix, text or codec)", c.Perf.Test)
	}
	if c.Perf.Size <= 0 {
		return fmt.Errorf("invalid perf size: %d", c.Perf.Size)
	}
	if c.Perf.Iterations <= 0 {
		return fmt.Errorf("invalid perf iterations: %d", c.Perf.Iterations)
	}
	for _, b := range c.Perf.Baselines {
		switch b {
		case BaselineS2, BaselineZstd, BaselineGzip:
		default:
			return fmt.Errorf("unknown baseline codec %q", b)
		}
	}
	if c.Text.MaxKeywords < 0 {
		return fmt.Errorf("invalid max keywords: %d", c.Text.MaxKeywords)
	}
	return nil
}

// HasBaseline reports whether name is among the configured baselines.
func (c *Config) HasBaseline(name string) bool {
	for _, b := range c.Perf.Baselines {
		if b == name {
			return true
		}
	}
	return false
}

// String returns a one-line summary suitable for logging.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Test: %s, Size: %d, Iterations: %d, Baselines: %v, MaxKeywords: %d, Verbose: %v}",
		c.Perf.Test, c.Perf.Size, c.Perf.Iterations, c.Perf.Baselines, c.Text.MaxKeywords, c.Log.Verbose)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(val)
		return val == "true" || val == "1" || val == "yes" || val == "on"
	}
	return defaultVal
}

func getEnvStringSlice(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, s := range strings.Split(val, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
