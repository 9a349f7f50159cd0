package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiinamiyuki/OneDenoiser/internal/denoise"
	"github.com/shiinamiyuki/OneDenoiser/internal/ir"
)

type identityEngine struct{}

func (identityEngine) Name() string { return "identity" }

func (identityEngine) Denoise(req denoise.Request) (*ir.Image, error) {
	return req.Color.Clone(), nil
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(40 * (i % 4))
		if i%4 == 3 {
			img.Pix[i] = 0xff
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestMissingUsePrintsUsage(t *testing.T) {
	stdout, _, err := execute(t, "-i", "in.png", "-o", "out.png")
	require.ErrorIs(t, err, errNoDenoiser)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "--use")
}

func TestMissingInput(t *testing.T) {
	_, _, err := execute(t, "--use", "oidn", "-o", "out.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input")
}

func TestMissingOutput(t *testing.T) {
	_, _, err := execute(t, "--use", "oidn", "-i", "in.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestUnsupportedEngineWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	output := filepath.Join(dir, "out.png")
	writeTestPNG(t, input)

	_, _, err := execute(t, "--use", "unsupported_engine", "--bogus", "-i", input, "-o", output)
	require.ErrorIs(t, err, denoise.ErrUnknownEngine)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDenoiseWithRegisteredEngine(t *testing.T) {
	denoise.Register("identity", identityEngine{})
	t.Cleanup(func() { denoise.Unregister("identity") })

	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	albedo := filepath.Join(dir, "albedo.png")
	output := filepath.Join(dir, "out.png")
	writeTestPNG(t, input)
	writeTestPNG(t, albedo)

	stdout, _, err := execute(t, "--use", "identity", "-i", input, "-a", albedo, "-o", output, "--threads", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Denoised 2x2 (3 channels) with identity")
	assert.FileExists(t, output)
}

func TestDenoiseUnsupportedOutputExtension(t *testing.T) {
	denoise.Register("identity", identityEngine{})
	t.Cleanup(func() { denoise.Unregister("identity") })

	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	output := filepath.Join(dir, "out.foo")
	writeTestPNG(t, input)

	stdout, stderr, err := execute(t, "--use", "identity", "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "not written")
	assert.Contains(t, stderr, "unsupported output format")
	assert.NoFileExists(t, output)
}

func TestEnginesListsOIDN(t *testing.T) {
	stdout, _, err := execute(t, "engines")
	require.NoError(t, err)
	assert.Contains(t, stdout, "oidn")
}

func TestIdentify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	writeTestPNG(t, path)

	stdout, _, err := execute(t, "identify", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dimensions: 2 x 2")
	assert.Contains(t, stdout, "Format:     uint8")
	assert.Contains(t, stdout, "Transfer:   srgb")
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	output := filepath.Join(dir, "out.pfm")
	writeTestPNG(t, input)

	stdout, _, err := execute(t, "convert", "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Converted 2x2")
	assert.FileExists(t, output)
}

func TestConvertAssume(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestPNG(t, input)

	_, _, err := execute(t, "convert", "-i", input, "-o", filepath.Join(dir, "out.exr"), "--assume", "linear")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out.exr"))

	_, _, err = execute(t, "convert", "-i", input, "-o", filepath.Join(dir, "bad.exr"), "--assume", "gamma22")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transfer function")
	assert.NoFileExists(t, filepath.Join(dir, "bad.exr"))
}

func TestConvertRequiresFlags(t *testing.T) {
	_, _, err := execute(t, "convert", "-i", "in.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}
