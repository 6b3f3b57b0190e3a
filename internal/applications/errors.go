package applications

import "errors"

var (
	ErrMissingCoverText = errors.New("cover_text is required")
	ErrMissingResume    = errors.New("resume (PDF) is required")
	ErrNotPDF           = errors.New("resume must be a PDF")
	ErrUnreadableResume = errors.New("resume is not a readable PDF")
)
