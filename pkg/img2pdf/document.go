package img2pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// document is a PDF being assembled one image page at a time.
type document struct {
	pdf *gofpdf.Fpdf
}

func newDocument(p Page) *document {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: p.Width, Ht: p.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return &document{pdf: pdf}
}

// addPage appends a page holding e drawn at r. The image is registered
// before the page is added, so an image the writer rejects leaves no page
// behind.
func (d *document) addPage(name string, e *embedded, r Rect) error {
	opts := gofpdf.ImageOptions{ImageType: e.kind}

	info := d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(e.data))
	if err := d.takeError(); err != nil {
		return fmt.Errorf("register image: %w", err)
	}
	if info == nil || info.Width() <= 0 || info.Height() <= 0 {
		return fmt.Errorf("register image: no usable image data for %s", name)
	}

	d.pdf.AddPage()
	d.pdf.ImageOptions(name, r.X, r.Y, r.Width, r.Height, false, opts, 0, "")
	return d.takeError()
}

func (d *document) pages() int {
	return d.pdf.PageCount()
}

// save writes the document to path and closes it.
func (d *document) save(path string) error {
	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (d *document) takeError() error {
	if !d.pdf.Err() {
		return nil
	}
	err := d.pdf.Error()
	d.pdf.ClearError()
	return err
}
