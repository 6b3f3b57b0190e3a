package applications

import "strings"

const fallbackBaseName = "applicant"

// DeriveFileName turns a free-form applicant name into "first-last.pdf".
// Only ASCII letters and digits survive; everything else separates tokens.
func DeriveFileName(raw string) string {
	tokens := nameTokens(strings.TrimSpace(raw))

	base := fallbackBaseName
	switch len(tokens) {
	case 0:
	case 1:
		base = tokens[0]
	default:
		base = tokens[0] + "-" + tokens[len(tokens)-1]
	}
	return strings.ToLower(base) + ".pdf"
}

func nameTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !isASCIIAlnum(r)
	})
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
