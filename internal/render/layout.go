package render

// Page geometry in points (1 in = 72 pt). US Letter with 1-inch margins.
const (
	pageWidth  = 612.0
	pageHeight = 792.0
	margin     = 72.0

	contentWidth  = pageWidth - 2*margin
	contentHeight = pageHeight - 2*margin
)

// Style is a font setting with its line height.
type Style struct {
	Family     string
	Weight     string
	Size       float64
	Leading    float64
	SpaceAfter float64
}

var (
	TitleStyle = Style{Family: "Helvetica", Weight: "B", Size: 16, Leading: 20, SpaceAfter: 12}
	BodyStyle  = Style{Family: "Helvetica", Size: 11, Leading: 14}
)

const (
	minBodySize  = 7.0
	bodySizeStep = 0.5
)

// scaled returns s at a smaller font size, keeping the leading ratio.
func (s Style) scaled(size float64) Style {
	out := s
	out.Leading = s.Leading * size / s.Size
	out.Size = size
	return out
}
