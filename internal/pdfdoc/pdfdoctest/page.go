package pdfdoctest

import (
	"bytes"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
)

// PageFingerprint is what a page draws: its decoded content stream and the
// fonts and external objects it references by resource name.
type PageFingerprint struct {
	Content  []byte
	Fonts    map[string]string
	XObjects map[string]string
}

// Fingerprint reads page n (1-based) of the PDF in data.
func Fingerprint(t testing.TB, data []byte, n int) PageFingerprint {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open pdf: %v", err)
	}
	if n < 1 || n > r.NumPage() {
		t.Fatalf("page %d out of range (%d pages)", n, r.NumPage())
	}
	page := r.Page(n)
	if page.V.IsNull() {
		t.Fatalf("page %d missing", n)
	}
	res := page.Resources()
	return PageFingerprint{
		Content:  streamBytes(t, page.V.Key("Contents")),
		Fonts:    describe(res.Key("Font"), "Subtype", "BaseFont", "Encoding"),
		XObjects: describe(res.Key("XObject"), "Subtype", "Width", "Height", "BitsPerComponent", "ColorSpace", "Filter"),
	}
}

func streamBytes(t testing.TB, v pdf.Value) []byte {
	t.Helper()
	switch v.Kind() {
	case pdf.Stream:
		rc := v.Reader()
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read content stream: %v", err)
		}
		return data
	case pdf.Array:
		var out []byte
		for i := 0; i < v.Len(); i++ {
			out = append(out, streamBytes(t, v.Index(i))...)
		}
		return out
	default:
		return nil
	}
}

func describe(dict pdf.Value, attrs ...string) map[string]string {
	out := map[string]string{}
	keys := dict.Keys()
	sort.Strings(keys)
	for _, name := range keys {
		entry := dict.Key(name)
		parts := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			parts = append(parts, attr+"="+entry.Key(attr).String())
		}
		out[name] = strings.Join(parts, " ")
	}
	return out
}
