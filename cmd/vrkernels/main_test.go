package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/vrkernels/core"
)

const identity = "1,0,0,0,0,1,0,0,0,0,1,0,0,0,0,1"

func execute(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseFloats(t *testing.T) {
	v, err := parseFloats("1, 2.5\t-3\n4e1")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2.5, -3, 40}, v)

	v, err = parseFloats("")
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = parseFloats("1,two")
	assert.ErrorContains(t, err, `"two"`)
}

func TestFormatFloats(t *testing.T) {
	assert.Equal(t, "1 -0.5 100000", formatFloats([]float32{1, -0.5, 1e5}))
}

func TestMatMulCommand(t *testing.T) {
	out, err := execute(t, nil, "matmul", identity, "1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16")
	require.NoError(t, err)
	assert.Equal(t, "1 2 3 4\n5 6 7 8\n9 10 11 12\n13 14 15 16\n", out)
}

func TestMatMulCommandBadLength(t *testing.T) {
	_, err := execute(t, nil, "matmul", "1,2,3", identity)
	assert.ErrorIs(t, err, core.ErrInvalidBufferLength)
}

func TestTransformCommand(t *testing.T) {
	out, err := execute(t, nil, "transform", "1,0,0,5,0,1,0,6,0,0,1,7,0,0,0,1", "1,1,1,1")
	require.NoError(t, err)
	assert.Equal(t, "6 7 8 1\n", out)
}

func TestQuatCommand(t *testing.T) {
	out, err := execute(t, nil, "quat", "0,0,0,2", "--normalize")
	require.NoError(t, err)
	assert.Equal(t, "1 0 0 0\n0 1 0 0\n0 0 1 0\n0 0 0 1\n", out)
}

func TestSearchCommand(t *testing.T) {
	out, err := execute(t, nil, "search", "abcabc", "bc")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = execute(t, nil, "search", "--all", "aaaa", "aa")
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)

	_, err = execute(t, nil, "search", "--all", "aaaa", "")
	assert.ErrorIs(t, err, core.ErrEmptyPattern)
}

func TestNormalizeCommand(t *testing.T) {
	out, err := execute(t, nil, "normalize", "HeLLo", "World")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)

	out, err = execute(t, []byte("ＶＲ Scene\n"), "normalize")
	require.NoError(t, err)
	assert.Equal(t, "vr scene\n", out)
}

func TestKeywordsCommand(t *testing.T) {
	text := "mesh mesh mesh shader shader texture"
	out, err := execute(t, nil, "keywords", "-n", "2", text)
	require.NoError(t, err)
	assert.Equal(t, "mesh\nshader\n", out)

	out, err = execute(t, []byte(text), "keywords", "--counts")
	require.NoError(t, err)
	assert.Equal(t, "mesh\t3\nshader\t2\ntexture\t1\n", out)
}

func TestKeywordsCommandConfigLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("text:\n  max_keywords: 1\n"), 0o644))

	out, err := execute(t, nil, "--config", path, "keywords", "alpha alpha beta")
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", out)
}

func TestCompressDecompressCommands(t *testing.T) {
	raw := []byte(strings.Repeat("left hand right hand ", 30))

	enc, err := execute(t, raw, "compress")
	require.NoError(t, err)
	assert.Less(t, len(enc), len(raw))

	dec, err := execute(t, []byte(enc), "decompress")
	require.NoError(t, err)
	assert.Equal(t, string(raw), dec)
}

func TestCompressCommandFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	packed := filepath.Join(dir, "packed.bin")
	back := filepath.Join(dir, "back.bin")
	raw := []byte("short")
	require.NoError(t, os.WriteFile(in, raw, 0o644))

	_, err := execute(t, nil, "compress", "--in", in, "--out", packed)
	require.NoError(t, err)
	_, err = execute(t, nil, "decompress", "--in", packed, "--out", back)
	require.NoError(t, err)

	got, err := os.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestDeltaCommands(t *testing.T) {
	enc, err := execute(t, []byte("0 10 7 -3\n"), "delta", "encode")
	require.NoError(t, err)
	assert.Len(t, enc, 8)

	out, err := execute(t, []byte(enc), "delta", "decode")
	require.NoError(t, err)
	assert.Equal(t, "0\n10\n7\n-3\n", out)
}

func TestVersionAndInfo(t *testing.T) {
	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vrkernels v")

	out, err = execute(t, nil, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Matrix Implementation:")
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("perf:\n  test: gpu\n"), 0o644))

	_, err := execute(t, nil, "--config", path, "version")
	assert.ErrorContains(t, err, "invalid perf test")
}
