package pdfdoc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Keep pdfcpu from creating a config directory under $HOME.
	model.ConfigPath = "disable"
}

// Merger concatenates page sources without re-rendering their pages.
type Merger struct{}

// NewMerger returns a Merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge returns a new document holding every page of each source, in
// argument order. Page content, fonts and images are copied unchanged.
func (m *Merger) Merge(sources ...*Source) (*Source, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no sources", ErrMerge)
	}
	want := 0
	readers := make([]io.ReadSeeker, 0, len(sources))
	for _, src := range sources {
		want += src.Pages()
		readers = append(readers, bytes.NewReader(src.Bytes()))
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, newConfiguration()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMerge, err)
	}

	merged, err := Open(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: reopen output: %v", ErrMerge, err)
	}
	if merged.Pages() != want {
		return nil, fmt.Errorf("%w: got %d pages, want %d", ErrPageCountMismatch, merged.Pages(), want)
	}
	return merged, nil
}

// newConfiguration is built per call because pdfcpu mutates it while merging.
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return conf
}
