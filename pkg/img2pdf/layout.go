package img2pdf

import (
	"fmt"
	"math"
)

// Rect is an image placement in page coordinates, in points.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Fit scales an iw x ih image to the page minus margin and centers it.
//
// Wide images take the full usable width, everything else the full usable
// height. If that overflows the other axis the image is shrunk to fit, so a
// square image on a portrait page ends up shorter than the usable height.
func Fit(p Page, margin float64, iw, ih int) (Rect, error) {
	if iw <= 0 || ih <= 0 {
		return Rect{}, fmt.Errorf("invalid image size %dx%d", iw, ih)
	}
	if err := checkMargin(margin); err != nil {
		return Rect{}, err
	}

	maxW := p.Width - margin
	maxH := p.Height - margin
	if maxW <= 0 || maxH <= 0 {
		return Rect{}, fmt.Errorf("margin %.1f leaves no room on a %.1fx%.1f page", margin, p.Width, p.Height)
	}

	aspect := float64(iw) / float64(ih)
	var w, h float64
	if aspect > 1 {
		w = maxW
		h = w / aspect
	} else {
		h = maxH
		w = h * aspect
	}

	if w > maxW {
		w = maxW
		h = w / aspect
	}
	if h > maxH {
		h = maxH
		w = h * aspect
	}

	return Rect{
		X:      (p.Width - w) / 2,
		Y:      (p.Height - h) / 2,
		Width:  w,
		Height: h,
	}, nil
}

func checkMargin(margin float64) error {
	if margin < 0 || math.IsNaN(margin) || math.IsInf(margin, 0) {
		return fmt.Errorf("invalid margin %v", margin)
	}
	return nil
}

// pixelsFor returns the pixel size needed to print r at dpi.
func pixelsFor(r Rect, dpi int) (int, int) {
	return int(r.Width / 72 * float64(dpi)), int(r.Height / 72 * float64(dpi))
}
