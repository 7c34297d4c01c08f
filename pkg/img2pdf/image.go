package img2pdf

import (
	"bytes"
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	// Formats accepted for a single-path input.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"k8s.io/klog/v2"
)

// Source is an image on disk and its pixel dimensions.
type Source struct {
	Path   string
	Format string
	Width  int
	Height int
}

// embedded is image data ready to hand to the PDF writer.
type embedded struct {
	kind string
	data []byte
}

func readSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	ic, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode: %w", err)
	}

	return &Source{Path: path, Format: format, Width: ic.Width, Height: ic.Height}, nil
}

// embed decodes s and returns the bytes to draw into r. Sources holding
// more pixels than r needs at maxDPI are downsampled first.
func (s *Source) embed(r Rect, maxDPI int) (*embedded, error) {
	img, err := imgio.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("imgio.Open: %w", err)
	}

	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, fmt.Errorf("empty image: %+v", img.Bounds())
	}

	resized := false
	if maxDPI > 0 {
		x, y := pixelsFor(r, maxDPI)
		if x > 0 && y > 0 && x < img.Bounds().Dx() && y < img.Bounds().Dy() {
			klog.V(1).Infof("downsampling %s from %dx%d to %dx%d (%d dpi)", s.Path, img.Bounds().Dx(), img.Bounds().Dy(), x, y, maxDPI)
			img = transform.Resize(img, x, y, transform.Lanczos)
			resized = true
		}
	}

	if s.Format == "jpeg" && !resized {
		bs, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return &embedded{kind: "JPG", data: bs}, nil
	}

	// The PDF writer only takes 8-bit PNGs.
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, clone.AsRGBA(img)); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return &embedded{kind: "PNG", data: buf.Bytes()}, nil
}
