package pdfdoc

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cover-merge/internal/pdfdoc/pdfdoctest"
)

func TestMergeKeepsOrderAndCount(t *testing.T) {
	cover, err := Open(pdfdoctest.Document(t, 1, "cover"))
	if err != nil {
		t.Fatalf("open cover: %v", err)
	}
	resume, err := Open(pdfdoctest.Document(t, 4, "resume"))
	if err != nil {
		t.Fatalf("open resume: %v", err)
	}

	merged, err := NewMerger().Merge(cover, resume)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.Pages() != 5 {
		t.Fatalf("expected 5 pages, got %d", merged.Pages())
	}

	assertPageContains(t, merged, 1, pdfdoctest.PageLabel("cover", 1))
	for i := 1; i <= resume.Pages(); i++ {
		want, err := resume.PageText(i)
		if err != nil {
			t.Fatalf("resume page %d: %v", i, err)
		}
		got, err := merged.PageText(i + 1)
		if err != nil {
			t.Fatalf("merged page %d: %v", i+1, err)
		}
		if got != want {
			t.Fatalf("merged page %d text %q, want resume page %d text %q", i+1, got, i, want)
		}
	}
}

func TestMergeCopiesPageContentAndResources(t *testing.T) {
	coverData := pdfdoctest.Document(t, 1, "cover")
	resumeData := pdfdoctest.RichDocument(t, 3, "resume")
	cover, err := Open(coverData)
	if err != nil {
		t.Fatalf("open cover: %v", err)
	}
	resume, err := Open(resumeData)
	if err != nil {
		t.Fatalf("open resume: %v", err)
	}

	merged, err := NewMerger().Merge(cover, resume)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	if diff := cmp.Diff(pdfdoctest.Fingerprint(t, coverData, 1), pdfdoctest.Fingerprint(t, merged.Bytes(), 1)); diff != "" {
		t.Fatalf("cover page changed (-want +got):\n%s", diff)
	}
	for i := 1; i <= resume.Pages(); i++ {
		want := pdfdoctest.Fingerprint(t, resumeData, i)
		if len(want.Content) == 0 || len(want.Fonts) != 2 || len(want.XObjects) != 1 {
			t.Fatalf("resume page %d fixture is missing content, fonts or image: %+v", i, want)
		}
		got := pdfdoctest.Fingerprint(t, merged.Bytes(), i+1)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("merged page %d differs from resume page %d (-want +got):\n%s", i+1, i, diff)
		}
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	coverData := pdfdoctest.Document(t, 1, "cover")
	original := append([]byte(nil), coverData...)
	cover, err := Open(coverData)
	if err != nil {
		t.Fatalf("open cover: %v", err)
	}
	resume, err := Open(pdfdoctest.Document(t, 2, "resume"))
	if err != nil {
		t.Fatalf("open resume: %v", err)
	}

	if _, err := NewMerger().Merge(cover, resume); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if string(cover.Bytes()) != string(original) {
		t.Fatal("cover bytes changed by merge")
	}
}

func TestMergeWithoutSources(t *testing.T) {
	if _, err := NewMerger().Merge(); !errors.Is(err, ErrMerge) {
		t.Fatalf("expected ErrMerge, got %v", err)
	}
}

func assertPageContains(t *testing.T, src *Source, page int, want string) {
	t.Helper()
	text, err := src.PageText(page)
	if err != nil {
		t.Fatalf("page %d text: %v", page, err)
	}
	if !strings.Contains(text, want) {
		t.Fatalf("page %d text %q missing %q", page, text, want)
	}
}
