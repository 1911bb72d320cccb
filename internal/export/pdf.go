// Package export renders a recognized canvas to PDF.
package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/csheth/mathscout/internal/geom"
	"github.com/csheth/mathscout/internal/overlay"
	"github.com/csheth/mathscout/internal/scene"
)

const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 15.0
	captionPt  = 11.0
	// world units per millimetre when the drawing is smaller than the page
	naturalScale = 4.0
)

// Page is everything that goes on the exported page.
type Page struct {
	Title    string
	Elements []scene.Element
	Lines    []overlay.Line
	Symbols  []*overlay.Symbol
}

// Fit maps world coordinates onto the printable area of an A4 page.
type Fit struct {
	Origin geom.Point
	Scale  float64 // mm per world unit
}

// Apply converts a world point to page millimetres.
func (f Fit) Apply(p geom.Point) (float64, float64) {
	return margin + (p.X-f.Origin.X)*f.Scale, margin + (p.Y-f.Origin.Y)*f.Scale
}

// FitPage picks a scale so that every point and anchor lands on the page.
func FitPage(page Page) Fit {
	b := geom.EmptyBounds()
	for _, el := range page.Elements {
		for _, p := range el.Points {
			b.Extend(el.X+p.X, el.Y+p.Y)
		}
	}
	for _, l := range page.Lines {
		b.Extend(l.Position.X, l.Position.Y)
	}
	for _, s := range page.Symbols {
		b.Extend(s.Position.X, s.Position.Y)
	}
	if b.Empty() {
		return Fit{Scale: 1 / naturalScale}
	}
	// leave room above the first line for its caption
	b.Extend(b.MinX, b.MinY-40)
	w := math.Max(b.MaxX-b.MinX, 1)
	h := math.Max(b.MaxY-b.MinY, 1)
	scale := math.Min((pageWidth-2*margin)/w, (pageHeight-2*margin)/h)
	scale = math.Min(scale, 1/naturalScale)
	return Fit{Origin: geom.Point{X: b.MinX, Y: b.MinY}, Scale: scale}
}

// Write renders page as PDF to w.
func Write(w io.Writer, page Page) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(page.Title, true)
	pdf.SetCreator("mathscout", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	fit := FitPage(page)

	if page.Title != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(margin, margin-5, tr(page.Title))
	}

	for _, el := range page.Elements {
		if el.Deleted || el.Type != scene.TypeFreeDraw {
			continue
		}
		r, g, b := rgb(el.DisplayColor())
		pdf.SetDrawColor(r, g, b)
		pdf.SetLineWidth(math.Max(el.StrokeWidth*fit.Scale, 0.2))
		pdf.SetLineCapStyle("round")
		for i := 1; i < len(el.Points); i++ {
			x1, y1 := fit.Apply(geom.Point{X: el.X + el.Points[i-1].X, Y: el.Y + el.Points[i-1].Y})
			x2, y2 := fit.Apply(geom.Point{X: el.X + el.Points[i].X, Y: el.Y + el.Points[i].Y})
			pdf.Line(x1, y1, x2, y2)
		}
	}

	pdf.SetFont("Helvetica", "", captionPt)
	pdf.SetTextColor(60, 60, 60)
	for _, l := range page.Lines {
		x, y := fit.Apply(l.Position)
		text := tr(l.Text)
		x -= pdf.GetStringWidth(text) / 2
		pdf.Text(x, y-3, text)
	}

	for _, s := range page.Symbols {
		x, y := fit.Apply(s.Position)
		mark := "X"
		r, g, b := rgb("#c0392b")
		if s.Correct {
			mark = "OK"
			r, g, b = rgb("#27ae60")
		}
		pdf.SetDrawColor(r, g, b)
		pdf.SetTextColor(int(r), int(g), int(b))
		pdf.SetLineWidth(0.4)
		pdf.Circle(x, y, 3, "D")
		pdf.SetFont("Helvetica", "B", 7)
		pdf.Text(x-pdf.GetStringWidth(mark)/2, y+1, mark)
		if len(s.Texts) > 0 {
			pdf.SetFont("Helvetica", "", 8)
			pdf.Text(x+5, y+1, tr(s.Texts[0]))
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// WriteFile renders page to path, creating parent directories.
func WriteFile(path string, page Page) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, page); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// rgb parses a hex color, falling back to black.
func rgb(hex string) (int, int, int) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0
	}
	r, g, b := c.RGB255()
	return int(r), int(g), int(b)
}
