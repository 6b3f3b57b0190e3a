// Package render lays out the cover letter page.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// DefaultTitle heads the page when the caller gives no title.
const DefaultTitle = "Cover Letter"

// fitEpsilon absorbs float drift when summing line heights.
const fitEpsilon = 0.01

// Renderer produces single-page cover letters. The zero value is usable.
type Renderer struct {
	// Now stamps the document creation date. Defaults to time.Now.
	Now func() time.Time
}

// New returns a Renderer using the wall clock.
func New() *Renderer {
	return &Renderer{Now: time.Now}
}

// Render lays out title and coverText on one Letter page and returns the PDF.
// Line breaks in coverText are kept; the body font shrinks when needed so the
// page never overflows.
func (r *Renderer) Render(coverText, title string) ([]byte, error) {
	if strings.TrimSpace(coverText) == "" {
		return nil, ErrEmptyCoverText
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(r.now())
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetCreator("cover-merge", false)

	titleLines := []string{tr(title)}
	bodyLines := splitLines(coverText)
	for i, line := range bodyLines {
		bodyLines[i] = tr(line)
	}

	body, err := fitBody(pdf, titleLines, bodyLines)
	if err != nil {
		return nil, err
	}

	pdf.AddPage()
	writeBlock(pdf, TitleStyle, titleLines)
	pdf.Ln(TitleStyle.SpaceAfter)
	writeBlock(pdf, body, bodyLines)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if n := pdf.PageCount(); n != 1 {
		return nil, fmt.Errorf("%w: produced %d pages", ErrRender, n)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) now() time.Time {
	if r == nil || r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// splitLines normalizes CRLF and lone CR to LF and returns one entry per
// input line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(strings.TrimSpace(text), "\n")
}

// fitBody picks the largest body style, stepping down from BodyStyle, at
// which title and body fit inside the content box.
func fitBody(pdf *gofpdf.Fpdf, titleLines, bodyLines []string) (Style, error) {
	titleHeight := blockHeight(pdf, TitleStyle, titleLines) + TitleStyle.SpaceAfter
	for size := BodyStyle.Size; size >= minBodySize; size -= bodySizeStep {
		style := BodyStyle.scaled(size)
		if titleHeight+blockHeight(pdf, style, bodyLines) <= contentHeight+fitEpsilon {
			return style, nil
		}
	}
	if err := pdf.Error(); err != nil {
		return Style{}, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return Style{}, ErrCoverTooLong
}

// blockHeight measures lines wrapped to the content width in style.
func blockHeight(pdf *gofpdf.Fpdf, style Style, lines []string) float64 {
	pdf.SetFont(style.Family, style.Weight, style.Size)
	rows := 0
	for _, line := range lines {
		rows += wrappedRows(pdf, line)
	}
	return float64(rows) * style.Leading
}

func wrappedRows(pdf *gofpdf.Fpdf, line string) int {
	if line == "" {
		return 1
	}
	if n := len(pdf.SplitLines([]byte(line), contentWidth)); n > 0 {
		return n
	}
	return 1
}

func writeBlock(pdf *gofpdf.Fpdf, style Style, lines []string) {
	pdf.SetFont(style.Family, style.Weight, style.Size)
	for _, line := range lines {
		if line == "" {
			pdf.Ln(style.Leading)
			continue
		}
		pdf.MultiCell(contentWidth, style.Leading, line, "", "L", false)
	}
}
