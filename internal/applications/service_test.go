package applications

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"cover-merge/internal/pdfdoc"
	"cover-merge/internal/pdfdoc/pdfdoctest"
	"cover-merge/internal/render"
)

func newTestService() *Service {
	renderer := &render.Renderer{Now: func() time.Time {
		return time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
	}}
	return NewService(renderer, pdfdoc.NewMerger(), render.DefaultTitle)
}

func validSubmission(t *testing.T, pages int) Submission {
	t.Helper()
	return Submission{
		ApplicantName:  "  Jane   Q. Public  ",
		CoverText:      "Dear team,\nPlease find my resume attached.",
		ResumeFileName: "Resume.PDF",
		Resume:         pdfdoctest.Document(t, pages, "resume"),
	}
}

func TestAssemblePrependsCoverPage(t *testing.T) {
	res, err := newTestService().Assemble(context.Background(), validSubmission(t, 3))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if res.FileName != "jane-public.pdf" {
		t.Fatalf("unexpected file name %q", res.FileName)
	}
	if res.Pages != 4 {
		t.Fatalf("expected 4 pages, got %d", res.Pages)
	}

	merged, err := pdfdoc.Open(res.Data)
	if err != nil {
		t.Fatalf("open merged: %v", err)
	}
	first, err := merged.PageText(1)
	if err != nil {
		t.Fatalf("cover text: %v", err)
	}
	if !strings.Contains(first, "Cover Letter") {
		t.Fatalf("first page is not the cover: %q", first)
	}
	for i := 1; i <= 3; i++ {
		text, err := merged.PageText(i + 1)
		if err != nil {
			t.Fatalf("page %d: %v", i+1, err)
		}
		if !strings.Contains(text, pdfdoctest.PageLabel("resume", i)) {
			t.Fatalf("page %d text %q, want resume page %d", i+1, text, i)
		}
	}
}

func TestAssembleUsesSubmittedTitle(t *testing.T) {
	sub := validSubmission(t, 1)
	sub.Title = "Application for Platform Engineer"
	res, err := newTestService().Assemble(context.Background(), sub)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	merged, err := pdfdoc.Open(res.Data)
	if err != nil {
		t.Fatalf("open merged: %v", err)
	}
	text, err := merged.PageText(1)
	if err != nil {
		t.Fatalf("cover text: %v", err)
	}
	if !strings.Contains(text, "Application for Platform Engineer") {
		t.Fatalf("title missing from cover: %q", text)
	}
}

func TestAssembleIsRepeatable(t *testing.T) {
	svc := newTestService()
	sub := validSubmission(t, 2)

	a, err := svc.Assemble(context.Background(), sub)
	if err != nil {
		t.Fatalf("first assemble: %v", err)
	}
	b, err := svc.Assemble(context.Background(), sub)
	if err != nil {
		t.Fatalf("second assemble: %v", err)
	}
	if a.FileName != b.FileName || a.Pages != b.Pages {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
	srcA, err := pdfdoc.Open(a.Data)
	if err != nil {
		t.Fatalf("open first result: %v", err)
	}
	srcB, err := pdfdoc.Open(b.Data)
	if err != nil {
		t.Fatalf("open second result: %v", err)
	}
	for i := 1; i <= a.Pages; i++ {
		ta, err := srcA.PageText(i)
		if err != nil {
			t.Fatalf("first result page %d: %v", i, err)
		}
		tb, err := srcB.PageText(i)
		if err != nil {
			t.Fatalf("second result page %d: %v", i, err)
		}
		if ta != tb {
			t.Fatalf("page %d differs between runs: %q vs %q", i, ta, tb)
		}
	}
}

func TestAssembleCopiesResumePagesUnchanged(t *testing.T) {
	sub := validSubmission(t, 3)
	sub.Resume = pdfdoctest.RichDocument(t, 3, "resume")

	res, err := newTestService().Assemble(context.Background(), sub)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if res.Pages != 4 {
		t.Fatalf("expected 4 pages, got %d", res.Pages)
	}
	for i := 1; i <= 3; i++ {
		want := pdfdoctest.Fingerprint(t, sub.Resume, i)
		got := pdfdoctest.Fingerprint(t, res.Data, i+1)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("merged page %d differs from resume page %d (-want +got):\n%s", i+1, i, diff)
		}
	}
}

func TestValidate(t *testing.T) {
	pdfBytes := []byte("%PDF-1.7\n...")
	tests := []struct {
		name string
		sub  Submission
		want error
	}{
		{name: "missing cover", sub: Submission{ResumeFileName: "r.pdf", Resume: pdfBytes}, want: ErrMissingCoverText},
		{name: "blank cover", sub: Submission{CoverText: " \n ", ResumeFileName: "r.pdf", Resume: pdfBytes}, want: ErrMissingCoverText},
		{name: "missing resume", sub: Submission{CoverText: "hi"}, want: ErrMissingResume},
		{name: "docx", sub: Submission{CoverText: "hi", ResumeFileName: "resume.docx", Resume: pdfBytes}, want: ErrNotPDF},
		{name: "mislabeled text file", sub: Submission{CoverText: "hi", ResumeFileName: "resume.pdf", Resume: []byte("plain text")}, want: ErrNotPDF},
		{name: "header after bom", sub: Submission{CoverText: "hi", ResumeFileName: "resume.pdf", Resume: append([]byte("\xef\xbb\xbf"), pdfBytes...)}, want: nil},
		{name: "header after whitespace", sub: Submission{CoverText: "hi", ResumeFileName: "resume.pdf", Resume: append([]byte(" \r\n\t"), pdfBytes...)}, want: nil},
		{name: "text mentioning magic", sub: Submission{CoverText: "hi", ResumeFileName: "resume.pdf", Resume: []byte("notes: files start with %PDF-1.7\n")}, want: ErrNotPDF},
		{name: "header past window", sub: Submission{CoverText: "hi", ResumeFileName: "resume.pdf", Resume: append([]byte(strings.Repeat(" ", 1024)), pdfBytes...)}, want: ErrNotPDF},
		{name: "upper case extension", sub: Submission{CoverText: "hi", ResumeFileName: "CV.PdF", Resume: pdfBytes}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.sub); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAssembleUnreadableResume(t *testing.T) {
	sub := validSubmission(t, 1)
	sub.Resume = []byte("%PDF-1.4\nthis is not really a pdf")
	_, err := newTestService().Assemble(context.Background(), sub)
	if !errors.Is(err, ErrUnreadableResume) {
		t.Fatalf("expected ErrUnreadableResume, got %v", err)
	}
}

func TestAssembleCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestService().Assemble(ctx, validSubmission(t, 1))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type failingRenderer struct{ err error }

func (f failingRenderer) Render(string, string) ([]byte, error) { return nil, f.err }

type failingMerger struct{ err error }

func (f failingMerger) Merge(...*pdfdoc.Source) (*pdfdoc.Source, error) { return nil, f.err }

func TestAssemblePropagatesComponentErrors(t *testing.T) {
	boom := errors.New("boom")

	svc := NewService(failingRenderer{err: boom}, pdfdoc.NewMerger(), "")
	if _, err := svc.Assemble(context.Background(), validSubmission(t, 1)); !errors.Is(err, boom) {
		t.Fatalf("expected renderer error, got %v", err)
	}

	svc = NewService(render.New(), failingMerger{err: boom}, "")
	if _, err := svc.Assemble(context.Background(), validSubmission(t, 1)); !errors.Is(err, boom) {
		t.Fatalf("expected merger error, got %v", err)
	}
}
