package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrOutputWrite is returned when the PDF cannot be created or written
var ErrOutputWrite = errors.New("output write failed")

// PageSide is the width and height of the square page, in inches
const PageSide = 8.5

// Document is a single-page PDF Canvas backed by gofpdf
type Document struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	logger    *zap.Logger
}

// NewDocument creates a square page with the given fonts registered
func NewDocument(fonts *FontSet, title string, logger *zap.Logger) (*Document, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: PageSide, Ht: PageSide},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("month-calendar", true)

	for _, face := range []Face{fonts.Text, fonts.Moon} {
		if !face.IsCore() {
			pdf.AddUTF8FontFromBytes(face.Family, "", face.Data)
		}
	}

	doc := &Document{
		pdf:       pdf,
		translate: func(s string) string { return s },
		logger:    logger,
	}
	if fonts.Text.IsCore() {
		// Core fonts are single-byte; map UTF-8 labels to cp1252
		doc.translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.AddPage()
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to set up pdf: %w", err)
	}

	return doc, nil
}

// RegisterImage makes img available to Image under img.Name
func (d *Document) RegisterImage(img *Image) error {
	d.pdf.RegisterImageOptionsReader(img.Name, gofpdf.ImageOptions{ImageType: img.Type}, bytes.NewReader(img.Data))
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("failed to register image %s: %w", img.Name, err)
	}
	return nil
}

// SetFont selects a registered font family and size in points
func (d *Document) SetFont(family string, size float64) {
	d.pdf.SetFont(family, "", size)
}

// Line draws a straight line
func (d *Document) Line(x1, y1, x2, y2 float64) {
	d.pdf.Line(x1, y1, x2, y2)
}

// Text draws s with its baseline starting at x, y
func (d *Document) Text(x, y float64, s string) {
	d.pdf.Text(x, y, d.text(s))
}

// CenteredText draws s horizontally centred on x
func (d *Document) CenteredText(x, y float64, s string) {
	s = d.text(s)
	d.pdf.Text(x-d.pdf.GetStringWidth(s)/2, y, s)
}

// Image draws a registered image scaled to w x h
func (d *Document) Image(name string, x, y, w, h float64) {
	d.pdf.ImageOptions(name, x, y, w, h, false, gofpdf.ImageOptions{}, 0, "")
}

func (d *Document) text(s string) string {
	if d.translate == nil {
		return s
	}
	return d.translate(s)
}

// Output finalizes the document and writes it to w
func (d *Document) Output(w io.Writer) error {
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}

// Save writes the document to path on fs. Nothing is created when
// rendering fails.
func (d *Document) Save(fs afero.Fs, path string) (err error) {
	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: closing %s: %v", ErrOutputWrite, path, cerr))
		}
	}()

	if _, err := buf.WriteTo(f); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}

	d.logger.Info("PDF written", zap.String("file", path))
	return nil
}
