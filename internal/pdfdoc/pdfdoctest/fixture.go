// Package pdfdoctest builds small PDFs for tests and inspects their pages.
package pdfdoctest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
)

var fixtureDate = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

// PageLabel is the single word drawn on page n of a fixture built with prefix.
func PageLabel(prefix string, n int) string {
	return fmt.Sprintf("%s-page-%d", prefix, n)
}

// Document returns a PDF with the given number of pages. Each page carries
// PageLabel(prefix, n) so tests can tell pages apart after merging.
func Document(t testing.TB, pages int, prefix string) []byte {
	t.Helper()
	pdf := newFixture()
	pdf.SetFont("Courier", "", 12)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Text(72, 100, PageLabel(prefix, i))
	}
	return output(t, pdf)
}

// RichDocument is Document with two fonts and an embedded PNG on every page.
func RichDocument(t testing.TB, pages int, prefix string) []byte {
	t.Helper()
	pdf := newFixture()
	logo := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("logo", logo, bytes.NewReader(pngLogo(t)))
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.SetFont("Courier", "", 12)
		pdf.Text(72, 100, PageLabel(prefix, i))
		pdf.SetFont("Times", "I", 10)
		pdf.Text(72, 120, "Senior engineer, Springfield")
		pdf.ImageOptions("logo", 72, 140, 24, 24, false, logo, 0, "")
	}
	return output(t, pdf)
}

func newFixture() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(fixtureDate)
	return pdf
}

func output(t testing.TB, pdf *gofpdf.Fpdf) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("build fixture pdf: %v", err)
	}
	return buf.Bytes()
}

func pngLogo(t testing.TB) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(60 * x), G: uint8(60 * y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
