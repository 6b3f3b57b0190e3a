package applications

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"cover-merge/internal/pdfdoc"
)

// pdfHeaderWindow is how far into a file a PDF header may start.
const pdfHeaderWindow = 1024

// pdfLeadingSpace is the PDF whitespace set, NUL included.
const pdfLeadingSpace = " \t\r\n\f\x00"

var (
	pdfMagic = []byte("%PDF-")
	utf8BOM  = []byte("\xef\xbb\xbf")
)

// CoverRenderer lays out a cover page.
type CoverRenderer interface {
	Render(coverText, title string) ([]byte, error)
}

// DocumentMerger concatenates page sources in order.
type DocumentMerger interface {
	Merge(sources ...*pdfdoc.Source) (*pdfdoc.Source, error)
}

// Service assembles the cover page and résumé into one document.
type Service struct {
	Renderer     CoverRenderer
	Merger       DocumentMerger
	DefaultTitle string
}

// NewService constructs a Service. defaultTitle is used when a submission has no title.
func NewService(renderer CoverRenderer, merger DocumentMerger, defaultTitle string) *Service {
	return &Service{Renderer: renderer, Merger: merger, DefaultTitle: defaultTitle}
}

// ValidateFields checks what can be checked before the upload body is read:
// cover text, presence of a résumé and its file extension.
func ValidateFields(sub Submission) error {
	if strings.TrimSpace(sub.CoverText) == "" {
		return ErrMissingCoverText
	}
	if strings.TrimSpace(sub.ResumeFileName) == "" {
		return ErrMissingResume
	}
	if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(sub.ResumeFileName)), pdfExtension) {
		return ErrNotPDF
	}
	return nil
}

// Validate runs ValidateFields and then checks the upload carries a PDF header.
func Validate(sub Submission) error {
	if err := ValidateFields(sub); err != nil {
		return err
	}
	if !hasPDFHeader(sub.Resume) {
		return ErrNotPDF
	}
	return nil
}

// Assemble validates sub, renders its cover page and returns the cover
// followed by every résumé page.
func (s *Service) Assemble(ctx context.Context, sub Submission) (Result, error) {
	if err := Validate(sub); err != nil {
		return Result{}, err
	}
	fileName := DeriveFileName(sub.ApplicantName)

	title := strings.TrimSpace(sub.Title)
	if title == "" {
		title = s.DefaultTitle
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	coverPDF, err := s.Renderer.Render(strings.TrimSpace(sub.CoverText), title)
	if err != nil {
		return Result{}, fmt.Errorf("render cover page: %w", err)
	}
	cover, err := pdfdoc.Open(coverPDF)
	if err != nil {
		return Result{}, fmt.Errorf("open cover page: %w", err)
	}

	resume, err := pdfdoc.Open(sub.Resume)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnreadableResume, err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	merged, err := s.Merger.Merge(cover, resume)
	if err != nil {
		return Result{}, fmt.Errorf("merge documents: %w", err)
	}

	return Result{
		FileName: fileName,
		Data:     merged.Bytes(),
		Pages:    merged.Pages(),
	}, nil
}

// hasPDFHeader reports whether data starts with the PDF magic once a UTF-8
// byte order mark and leading whitespace are skipped.
func hasPDFHeader(data []byte) bool {
	head := data
	if len(head) > pdfHeaderWindow {
		head = head[:pdfHeaderWindow]
	}
	head = bytes.TrimPrefix(head, utf8BOM)
	head = bytes.TrimLeft(head, pdfLeadingSpace)
	return bytes.HasPrefix(head, pdfMagic)
}
