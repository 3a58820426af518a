package geom

// PaperSize is a standard page size in PDF points (1" = 72pt).
type PaperSize struct {
	Name   string
	Width  float64
	Height float64
}

var (
	Letter = PaperSize{Name: "Letter", Width: 612, Height: 792}       // 8.5" x 11"
	A4     = PaperSize{Name: "A4", Width: 595.28, Height: 841.89}     // 210mm x 297mm
	Legal  = PaperSize{Name: "Legal", Width: 612, Height: 1008}       // 8.5" x 14"
)

// Margins defines page margins in points.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// Uniform returns equal margins on all four sides.
func Uniform(pt float64) Margins {
	return Margins{Top: pt, Bottom: pt, Left: pt, Right: pt}
}

// Rect is an axis-aligned rectangle in PDF user space (origin bottom-left).
type Rect struct {
	LLX, LLY, URX, URY float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.URX - r.LLX }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.URY - r.LLY }

// Contains reports whether the point (x, y) lies within the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.LLX && x <= r.URX && y >= r.LLY && y <= r.URY
}
