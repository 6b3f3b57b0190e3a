package applications

// Submission is one applicant's request. It lives for a single request.
type Submission struct {
	ApplicantName  string
	CoverText      string
	Title          string
	ResumeFileName string
	Resume         []byte
}

// Result is the combined document returned to the applicant.
type Result struct {
	FileName string
	Data     []byte
	Pages    int
}

const (
	pdfExtension   = ".pdf"
	pdfContentType = "application/pdf"
)
