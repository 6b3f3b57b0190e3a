// Package pdfdoc opens PDFs as page sources and concatenates them.
package pdfdoc

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Source is a parsed, in-memory PDF whose pages can be read and copied.
// It is not safe for concurrent use.
type Source struct {
	data   []byte
	reader *pdf.Reader
	pages  int
}

// Open parses data as a PDF. The slice is retained, not copied.
func Open(data []byte) (src *Source, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidPDF)
	}
	// The reader panics on some malformed object graphs.
	defer func() {
		if rec := recover(); rec != nil {
			src = nil
			err = fmt.Errorf("%w: %v", ErrInvalidPDF, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	pages := reader.NumPage()
	if pages < 1 {
		return nil, fmt.Errorf("%w: document has no pages", ErrInvalidPDF)
	}
	return &Source{data: data, reader: reader, pages: pages}, nil
}

// Pages returns the number of pages.
func (s *Source) Pages() int {
	return s.pages
}

// Bytes returns the serialized document.
func (s *Source) Bytes() []byte {
	return s.data
}

// PageText returns the plain text drawn on page n (1-based).
func (s *Source) PageText(n int) (text string, err error) {
	page, err := s.page(n)
	if err != nil {
		return "", err
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d text: %v", n, rec)
		}
	}()
	return page.GetPlainText(nil)
}

// PageRows returns the text of page n grouped into visual rows, top to bottom.
func (s *Source) PageRows(n int) (out []string, err error) {
	page, err := s.page(n)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d rows: %v", n, rec)
		}
	}()
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("page %d rows: %w", n, err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})
	for _, row := range rows {
		var b strings.Builder
		for _, t := range row.Content {
			b.WriteString(t.S)
		}
		if line := strings.TrimSpace(b.String()); line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

func (s *Source) page(n int) (pdf.Page, error) {
	if n < 1 || n > s.pages {
		return pdf.Page{}, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, n, s.pages)
	}
	page := s.reader.Page(n)
	if page.V.IsNull() {
		return pdf.Page{}, fmt.Errorf("%w: page %d missing", ErrInvalidPDF, n)
	}
	return page, nil
}
