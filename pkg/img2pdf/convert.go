package img2pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"
)

// Status is the outcome of placing one image.
type Status int

const (
	Added Status = iota
	Skipped
)

func (s Status) String() string {
	if s == Added {
		return "added"
	}
	return "skipped"
}

// Result describes what happened to one input image.
type Result struct {
	Path   string
	Status Status
	// Page is the 1-based page number for Added images.
	Page  int
	Place Rect
	// Err is why a Skipped image was left out.
	Err error
}

// Report is the outcome of a conversion.
type Report struct {
	// Output is the written document, or "" when nothing was written.
	Output  string
	Results []Result
}

// Empty reports whether the input resolved to no images at all.
func (r *Report) Empty() bool {
	return len(r.Results) == 0
}

// Added returns the number of pages in the document.
func (r *Report) Added() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == Added {
			n++
		}
	}
	return n
}

// Skipped returns the results of images that were left out.
func (r *Report) Skipped() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == Skipped {
			out = append(out, res)
		}
	}
	return out
}

// Convert writes one page per image in in to the document described by c.
// Images that cannot be read are skipped and recorded in the report. If in
// resolves to no images, nothing is written and the report is empty.
func Convert(in Input, c *Config) (*Report, error) {
	if c == nil {
		c = DefaultConfig()
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	paths, err := Resolve(in)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	rep := &Report{}
	if len(paths) == 0 {
		klog.Infof("no images found")
		return rep, nil
	}

	out := c.OutputPath()
	klog.V(1).Infof("converting %d images -> %s", len(paths), out)

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}

	page := c.page()
	doc := newDocument(page)
	for _, p := range paths {
		r, err := place(doc, p, page, c)
		if err != nil {
			klog.Warningf("skipping %s: %v", p, err)
			rep.Results = append(rep.Results, Result{Path: p, Status: Skipped, Err: err})
			continue
		}

		klog.V(1).Infof("added %s at %+v", p, r)
		rep.Results = append(rep.Results, Result{Path: p, Status: Added, Page: doc.pages(), Place: r})
	}

	if err := doc.save(out); err != nil {
		return nil, err
	}

	rep.Output = out
	klog.Infof("wrote %s: %d pages, %d skipped", out, rep.Added(), len(rep.Skipped()))
	return rep, nil
}

func place(doc *document, path string, page Page, c *Config) (Rect, error) {
	s, err := readSource(path)
	if err != nil {
		return Rect{}, err
	}

	r, err := Fit(page, c.Margin, s.Width, s.Height)
	if err != nil {
		return Rect{}, err
	}

	e, err := s.embed(r, c.MaxDPI)
	if err != nil {
		return Rect{}, err
	}

	if err := doc.addPage(path, e, r); err != nil {
		return Rect{}, err
	}
	return r, nil
}
