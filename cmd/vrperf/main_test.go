package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/vrkernels/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBaselinesRoundTrip(t *testing.T) {
	all, err := baselines(config.LoadDefaults())
	require.NoError(t, err)
	require.Len(t, all, 3)

	data := []byte(strings.Repeat("pose anchor frame ", 200))
	for _, b := range all {
		t.Run(b.name, func(t *testing.T) {
			r, err := measure(b, data, 2)
			require.NoError(t, err)
			assert.Less(t, r.ratio, 1.0)
		})
	}
}

func TestBaselinesUnknown(t *testing.T) {
	cfg := config.LoadDefaults()
	cfg.Perf.Baselines = []string{"lz4"}
	_, err := baselines(cfg)
	assert.ErrorContains(t, err, "lz4")
}

func TestMeasureVrkernels(t *testing.T) {
	data := []byte(generateText(4096))
	r, err := measure(vrkBaseline(len(data)), data, 1)
	require.NoError(t, err)
	assert.Equal(t, "vrkernels", r.name)
	assert.Less(t, r.ratio, 1.0)
}

func TestGenerateText(t *testing.T) {
	text := generateText(1000)
	assert.GreaterOrEqual(t, len(text), 1000)
	assert.True(t, strings.HasSuffix(text, " "))
}

func TestGenerateSignal(t *testing.T) {
	s := generateSignal(100)
	require.Len(t, s, 100)
	for i := 1; i < len(s); i++ {
		d := s[i] - s[i-1]
		assert.LessOrEqual(t, d, float32(100))
		assert.GreaterOrEqual(t, d, float32(-100))
	}
}

func TestRunEachGroup(t *testing.T) {
	tests := []struct {
		test string
		want []string
	}{
		{"matrix", []string{"Matrix Operations Performance", "Multiply via kernels.Run"}},
		{"text", []string{"Text Processing Performance", "Extract Keywords"}},
		{"codec", []string{"Compression Performance", "vrkernels", "zstd", "Delta Coding Performance"}},
	}
	for _, tt := range tests {
		t.Run(tt.test, func(t *testing.T) {
			out, err := execute(t, "--test", tt.test, "--size", "512", "--iter", "1")
			require.NoError(t, err)
			assert.Contains(t, out, "vrkernels Performance Analysis Tool")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "--test", "gpu")
	assert.ErrorContains(t, err, "invalid perf test")

	_, err = execute(t, "--iter", "0")
	assert.ErrorContains(t, err, "invalid perf iterations")
}
