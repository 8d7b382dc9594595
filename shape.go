package quotecard

// Element is a drawable item of a LayoutSpec.
type Element interface {
	GetType() ElementType
	GetName() string
}

// ElementType tags the kind of an Element.
type ElementType int

const (
	ElementTextBlock ElementType = iota
	ElementStarRow
	ElementDivider
	ElementBrandMark
	ElementPanel
	ElementPhotoSlot
)

func (t ElementType) String() string {
	switch t {
	case ElementTextBlock:
		return "text"
	case ElementStarRow:
		return "stars"
	case ElementDivider:
		return "divider"
	case ElementBrandMark:
		return "brand"
	case ElementPanel:
		return "panel"
	case ElementPhotoSlot:
		return "photo"
	default:
		return "unknown"
	}
}

// TextBlock is wrapped text placed in a box. Line i of the wrapped block is
// drawn at y0 + i*lineHeight, where y0 follows Style.Vertical.
type TextBlock struct {
	Name  string
	Text  string
	Box   Rect
	Style TextStyle
}

func (b *TextBlock) GetType() ElementType { return ElementTextBlock }
func (b *TextBlock) GetName() string      { return b.Name }

// StarRow is a row of Total stars of which the first Filled are filled.
// The row is vertically centered in Box and aligned horizontally by Align.
type StarRow struct {
	Name        string
	Box         Rect
	Total       int
	Filled      int
	OuterRadius float64
	InnerRadius float64
	Gap         float64
	StrokeWidth float64
	Color       Color
	Align       HorizontalAlignment
}

func (s *StarRow) GetType() ElementType { return ElementStarRow }
func (s *StarRow) GetName() string      { return s.Name }

// Centers returns the center of every star in the row, left to right.
func (s *StarRow) Centers() []Point {
	if s.Total <= 0 {
		return nil
	}
	width := float64(s.Total)*2*s.OuterRadius + float64(s.Total-1)*s.Gap
	x := s.Box.X
	switch s.Align {
	case HorizontalCenter:
		x = s.Box.CenterX() - width/2
	case HorizontalRight:
		x = s.Box.Right() - width
	}
	centers := make([]Point, s.Total)
	for i := range centers {
		centers[i] = Point{
			X: x + s.OuterRadius + float64(i)*(2*s.OuterRadius+s.Gap),
			Y: s.Box.CenterY(),
		}
	}
	return centers
}

// Divider is a straight stroked line.
type Divider struct {
	Name  string
	From  Point
	To    Point
	Width float64
	Color Color
}

func (d *Divider) GetType() ElementType { return ElementDivider }
func (d *Divider) GetName() string      { return d.Name }

// BrandMark is the brand text. It stays in the spec when hidden so that its
// reserved region is known; Visible gates drawing.
type BrandMark struct {
	Name    string
	Text    string
	Box     Rect
	Style   TextStyle
	Visible bool
}

func (b *BrandMark) GetType() ElementType { return ElementBrandMark }
func (b *BrandMark) GetName() string      { return b.Name }

// Panel is a filled rectangle, such as a header bar.
type Panel struct {
	Name  string
	Box   Rect
	Color Color
}

func (p *Panel) GetType() ElementType { return ElementPanel }
func (p *Panel) GetName() string      { return p.Name }

// PhotoSlot reserves space for the author photo. Photo compositing is not
// implemented: drawing a PhotoSlot records ErrPhotoNotImplemented.
type PhotoSlot struct {
	Name     string
	Box      Rect
	MediaURL string
}

func (p *PhotoSlot) GetType() ElementType { return ElementPhotoSlot }
func (p *PhotoSlot) GetName() string      { return p.Name }
