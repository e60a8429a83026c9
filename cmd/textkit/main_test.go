package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textkit/internal/config"
)

func TestRender(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Styling.Language = "go"

	opts := options{output: filepath.Join(dir, "out.png"), width: 320}
	require.NoError(t, render(cfg, opts, "package main\n\nfunc main() {}\n"))

	f, err := os.Open(opts.output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Positive(t, img.Bounds().Dy())
}

func TestRenderOpenError(t *testing.T) {
	cfg := config.Default()
	cfg.Styling.Language = "cobol"

	opts := options{output: filepath.Join(t.TempDir(), "out.png"), width: 320}
	assert.Error(t, render(cfg, opts, "meow"))
	assert.NoFileExists(t, opts.output)
}
