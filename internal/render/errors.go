package render

import "errors"

var (
	ErrEmptyCoverText = errors.New("cover text is empty")
	ErrCoverTooLong   = errors.New("cover text does not fit on one page")
	ErrRender         = errors.New("cover page rendering failed")
)
