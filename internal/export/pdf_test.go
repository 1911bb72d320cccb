package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/csheth/mathscout/internal/geom"
	"github.com/csheth/mathscout/internal/overlay"
	"github.com/csheth/mathscout/internal/scene"
)

func samplePage() Page {
	return Page{
		Title: "x = 2",
		Elements: []scene.Element{
			{ID: "a", Type: scene.TypeFreeDraw, X: 100, Y: 100, Points: []geom.Point{{X: 0, Y: 0}, {X: 40, Y: 40}}, Highlight: "#008b3a", StrokeWidth: 2},
			{ID: "b", Type: scene.TypeFreeDraw, X: 160, Y: 120, Points: []geom.Point{{X: 0, Y: 0}, {X: 30, Y: 0}}, Color: "#000000", StrokeWidth: 2},
		},
		Lines:   []overlay.Line{{Position: geom.Point{X: 145, Y: 100}, Text: "x=2"}},
		Symbols: []*overlay.Symbol{{Position: geom.Point{X: 230, Y: 120}, Texts: []string{"Well done!"}, Correct: true}},
	}
}

func TestWriteProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, samplePage()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:16])
	}
}

func TestWriteEmptyPage(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Page{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected a blank page")
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "canvas.pdf")
	if err := WriteFile(path, samplePage()); err != nil {
		t.Fatalf("write file: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("pdf file is empty")
	}
}

func TestFitPageKeepsEverythingOnPage(t *testing.T) {
	page := samplePage()
	page.Elements = append(page.Elements, scene.Element{
		ID: "wide", Type: scene.TypeFreeDraw, Points: []geom.Point{{X: -5000, Y: 0}, {X: 5000, Y: 3000}},
	})
	fit := FitPage(page)
	for _, p := range []geom.Point{{X: -5000, Y: 0}, {X: 5000, Y: 3000}, {X: 230, Y: 120}} {
		x, y := fit.Apply(p)
		if x < margin-0.001 || x > pageWidth-margin+0.001 || y < margin-0.001 || y > pageHeight-margin+0.001 {
			t.Fatalf("point %+v lands off the page at (%.2f, %.2f)", p, x, y)
		}
	}
}

func TestFitPageDoesNotEnlargeSmallDrawings(t *testing.T) {
	fit := FitPage(samplePage())
	if fit.Scale > 1/naturalScale {
		t.Fatalf("small drawings should keep their natural scale, got %v", fit.Scale)
	}
}

func TestRGBFallsBackToBlack(t *testing.T) {
	if r, g, b := rgb("not-a-color"); r != 0 || g != 0 || b != 0 {
		t.Fatalf("expected black, got %d %d %d", r, g, b)
	}
	if r, g, b := rgb("#fdbf14"); r != 0xfd || g != 0xbf || b != 0x14 {
		t.Fatalf("unexpected rgb %d %d %d", r, g, b)
	}
}
