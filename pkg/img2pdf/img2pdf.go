// Package img2pdf lays out raster images onto the pages of a single PDF document.
package img2pdf

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DefaultBaseName = "output"
	DefaultOutDir   = "output"
	DefaultMargin   = 50.0
	DefaultMaxDPI   = 300

	pdfExt = ".pdf"
)

// Page is a page size in PDF points.
type Page struct {
	Width  float64
	Height float64
}

// Letter is a US Letter page.
var Letter = Page{Width: 612, Height: 792}

// Config holds configuration for a conversion.
type Config struct {
	// BaseName is the output file name, with or without the .pdf extension.
	BaseName string
	// OutDir is the directory the document is written to. Created if absent.
	OutDir string
	// Margin is subtracted from each page dimension to get the largest image size.
	Margin float64
	Page   Page
	// MaxDPI caps the embedded resolution of an image. 0 keeps every pixel.
	MaxDPI int
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() *Config {
	return &Config{
		BaseName: DefaultBaseName,
		OutDir:   DefaultOutDir,
		Margin:   DefaultMargin,
		Page:     Letter,
		MaxDPI:   DefaultMaxDPI,
	}
}

// OutputPath returns where the document for c is written.
func (c *Config) OutputPath() string {
	name := c.BaseName
	if name == "" {
		name = DefaultBaseName
	}
	if !strings.HasSuffix(name, pdfExt) {
		name += pdfExt
	}

	dir := c.OutDir
	if dir == "" {
		dir = DefaultOutDir
	}
	return filepath.Join(dir, name)
}

// Validate reports settings that would place images off the page.
func (c *Config) Validate() error {
	if err := checkMargin(c.Margin); err != nil {
		return err
	}
	if c.MaxDPI < 0 {
		return fmt.Errorf("invalid max dpi %d", c.MaxDPI)
	}
	p := c.page()
	if p.Width-c.Margin <= 0 || p.Height-c.Margin <= 0 {
		return fmt.Errorf("margin %.1f leaves no room on a %.1fx%.1f page", c.Margin, p.Width, p.Height)
	}
	return nil
}

func (c *Config) page() Page {
	if c.Page.Width <= 0 || c.Page.Height <= 0 {
		return Letter
	}
	return c.Page
}
