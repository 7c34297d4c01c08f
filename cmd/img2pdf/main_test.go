package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func imageDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(1, 1, color.Black)
	for _, n := range names {
		require.NoError(t, imgio.Save(filepath.Join(dir, n), img, imgio.PNGEncoder()))
	}
	return dir
}

func TestMissingArgument(t *testing.T) {
	out, err := run(t)
	require.Error(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestDefaultName(t *testing.T) {
	t.Setenv(nameEnv, "")
	dir := imageDir(t, "a.png", "b.png")
	outDir := filepath.Join(t.TempDir(), "output")

	out, err := run(t, dir, "--out-dir", outDir)
	require.NoError(t, err)

	want := filepath.Join(outDir, "output.pdf")
	assert.FileExists(t, want)
	assert.Contains(t, out, "Added image: "+filepath.Join(dir, "a.png"))
	assert.Contains(t, out, "Added image: "+filepath.Join(dir, "b.png"))
	assert.Contains(t, out, "PDF created successfully: "+want)
}

func TestNameFromEnvironment(t *testing.T) {
	t.Setenv(nameEnv, "report")
	dir := imageDir(t, "a.png")
	outDir := filepath.Join(t.TempDir(), "output")

	_, err := run(t, dir, "--out-dir", outDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "report.pdf"))
}

func TestNameFlagBeatsEnvironment(t *testing.T) {
	t.Setenv(nameEnv, "report")
	dir := imageDir(t, "a.png")
	outDir := filepath.Join(t.TempDir(), "output")

	_, err := run(t, dir, "--out-dir", outDir, "-o", "flagged.pdf")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "flagged.pdf"))
	assert.NoFileExists(t, filepath.Join(outDir, "report.pdf"))
}

func TestConfigFile(t *testing.T) {
	t.Setenv(nameEnv, "")
	dir := imageDir(t, "a.png")
	outDir := filepath.Join(t.TempDir(), "fromconfig")
	cfg := filepath.Join(t.TempDir(), "img2pdf.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("name: album\nout_dir: "+outDir+"\nmargin: 100\n"), 0o644))

	_, err := run(t, dir, "--config", cfg)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "album.pdf"))
}

func TestMissingConfigFile(t *testing.T) {
	dir := imageDir(t, "a.png")
	_, err := run(t, dir, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNoImages(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "output")

	out, err := run(t, dir, "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "No images found to convert.")
	assert.NoDirExists(t, outDir)
}

func TestCorruptImageIsReported(t *testing.T) {
	dir := imageDir(t, "a.png", "c.png")
	bad := filepath.Join(dir, "b.png")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))
	outDir := filepath.Join(t.TempDir(), "output")

	out, err := run(t, dir, "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Error processing image "+bad)
	assert.Contains(t, out, "PDF created successfully")
}

func TestNegativeMarginIsRejected(t *testing.T) {
	dir := imageDir(t, "a.png")
	outDir := filepath.Join(t.TempDir(), "output")

	_, err := run(t, dir, "--out-dir", outDir, "--margin=-10")
	assert.ErrorContains(t, err, "invalid margin")
	assert.NoDirExists(t, outDir)

	t.Setenv("IMG2PDF_MARGIN", "NaN")
	_, err = run(t, dir, "--out-dir", outDir)
	assert.ErrorContains(t, err, "invalid margin")
	assert.NoDirExists(t, outDir)
}

func TestWatchNeedsDirectory(t *testing.T) {
	dir := imageDir(t, "a.png")
	outDir := filepath.Join(t.TempDir(), "output")

	_, err := run(t, filepath.Join(dir, "a.png"), "--out-dir", outDir, "--watch")
	assert.ErrorContains(t, err, "--watch needs a directory")
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/in/a.jpg", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/in/a.png", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/in/a.jpeg", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/in/a.jpeg", Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "/in/a.jpg", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/in/.a.jpg", Op: fsnotify.Create}, false},
		{fsnotify.Event{Name: "/in/output.pdf", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/in/A.PNG", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, relevant(tt.event), tt.event.String())
	}
}
