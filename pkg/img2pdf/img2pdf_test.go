package img2pdf

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		base string
		dir  string
		want string
	}{
		{want: filepath.Join("output", "output.pdf")},
		{base: "report", want: filepath.Join("output", "report.pdf")},
		{base: "report.pdf", want: filepath.Join("output", "report.pdf")},
		{base: "report.PDF", want: filepath.Join("output", "report.PDF.pdf")},
		{base: "scan", dir: "/tmp/pdfs", want: filepath.Join("/tmp/pdfs", "scan.pdf")},
	}

	for _, tt := range tests {
		c := DefaultConfig()
		if tt.base != "" {
			c.BaseName = tt.base
		}
		if tt.dir != "" {
			c.OutDir = tt.dir
		}
		assert.Equal(t, tt.want, c.OutputPath())
	}

	assert.Equal(t, filepath.Join("output", "output.pdf"), (&Config{}).OutputPath())
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "output", c.BaseName)
	assert.Equal(t, "output", c.OutDir)
	assert.Equal(t, 50.0, c.Margin)
	assert.Equal(t, Letter, c.Page)
	assert.Equal(t, Letter, (&Config{}).page())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	zero := DefaultConfig()
	zero.Margin = 0
	zero.MaxDPI = 0
	assert.NoError(t, zero.Validate())

	for name, mutate := range map[string]func(*Config){
		"negative margin": func(c *Config) { c.Margin = -1 },
		"NaN margin":      func(c *Config) { c.Margin = math.NaN() },
		"huge margin":     func(c *Config) { c.Margin = 612 },
		"negative dpi":    func(c *Config) { c.MaxDPI = -72 },
	} {
		c := DefaultConfig()
		mutate(c)
		assert.Error(t, c.Validate(), name)
	}
}
