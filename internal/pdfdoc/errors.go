package pdfdoc

import "errors"

var (
	ErrInvalidPDF        = errors.New("not a readable PDF")
	ErrPageOutOfRange    = errors.New("page out of range")
	ErrMerge             = errors.New("PDF merge failed")
	ErrPageCountMismatch = errors.New("merged page count mismatch")
)
