package quotecard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/font"
)

var (
	// ErrNoSurface is returned when a pass runs before a surface is attached.
	ErrNoSurface = errors.New("no drawing surface attached")
	// ErrPhotoNotImplemented is reported when a design asks for the author
	// photo. The card is still rendered, without the photo.
	ErrPhotoNotImplemented = errors.New("author photo compositing is not implemented")
	// ErrTextOverflow is reported when a text block had to be truncated to
	// fit its box.
	ErrTextOverflow = errors.New("text truncated to fit its box")
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// Extension returns the file extension for the format, without the dot.
func (f ImageFormat) Extension() string {
	if f == ImageFormatJPEG {
		return "jpg"
	}
	return "png"
}

func (f ImageFormat) String() string {
	if f == ImageFormatJPEG {
		return "jpeg"
	}
	return "png"
}

// ParseImageFormat parses "png", "jpeg" or "jpg".
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return ImageFormatPNG, nil
	case "jpeg", "jpg":
		return ImageFormatJPEG, nil
	default:
		return ImageFormatPNG, fmt.Errorf("unsupported image format %q", s)
	}
}

// RenderOptions configures card rendering.
type RenderOptions struct {
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// SystemFonts enables lookup of installed font families. When false only
	// the bundled Go fonts are used and output is identical on every host.
	SystemFonts bool
	// FontDirs specifies additional directories to search for fonts when
	// SystemFonts is set.
	FontDirs []string
	// FontCache allows sharing a pre-configured FontCache across renderers.
	// If nil, one is created from SystemFonts and FontDirs.
	FontCache *FontCache
	// Debounce delays Dispatcher.Schedule passes so that bursts of edits
	// render once. Zero renders immediately.
	Debounce time.Duration
	// Clock stamps rendered frames. Default: time.Now.
	Clock func() time.Time
	// Logger receives pass and export events. Default: zap.NewNop().
	Logger *zap.Logger
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// withDefaults returns a copy of opts with zero fields filled in.
func (o *RenderOptions) withDefaults() *RenderOptions {
	out := DefaultRenderOptions()
	if o != nil {
		*out = *o
	}
	if out.JPEGQuality <= 0 || out.JPEGQuality > 100 {
		out.JPEGQuality = 90
	}
	if out.FontCache == nil {
		if out.SystemFonts {
			out.FontCache = NewSystemFontCache(out.FontDirs...)
		} else {
			out.FontCache = NewFontCache()
		}
	}
	if out.Clock == nil {
		out.Clock = time.Now
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	return out
}

// Renderer interprets a LayoutSpec onto a Surface. It is the only code that
// issues draw calls; layouts are plain data.
type Renderer struct {
	fontCache *FontCache
	logger    *zap.Logger
}

// NewRenderer creates a renderer. A nil opts uses DefaultRenderOptions.
func NewRenderer(opts *RenderOptions) *Renderer {
	opts = opts.withDefaults()
	return &Renderer{fontCache: opts.FontCache, logger: opts.Logger}
}

// Draw clears s and draws spec onto it, first element to last. Conditions
// that degrade the card without stopping it, such as a requested photo or a
// truncated quote, are returned as notices.
func (r *Renderer) Draw(s *Surface, spec LayoutSpec) (notices []error, err error) {
	if s == nil {
		return nil, ErrNoSurface
	}
	if s.Width() != spec.Width || s.Height() != spec.Height {
		return nil, fmt.Errorf("surface is %dx%d, layout %s needs %dx%d",
			s.Width(), s.Height(), spec.Layout, spec.Width, spec.Height)
	}

	s.Clear(spec.Background.RGBA())
	for _, e := range spec.Elements {
		if notice := r.drawElement(s, e); notice != nil {
			notices = append(notices, notice)
		}
	}
	return notices, nil
}

func (r *Renderer) drawElement(s *Surface, e Element) error {
	switch el := e.(type) {
	case *TextBlock:
		return r.drawText(s, el.Name, el.Text, el.Box, el.Style)
	case *BrandMark:
		if !el.Visible {
			return nil
		}
		return r.drawText(s, el.Name, el.Text, el.Box, el.Style)
	case *StarRow:
		r.drawStars(s, el)
	case *Divider:
		s.dc.SetColor(el.Color.RGBA())
		s.dc.SetLineWidth(el.Width)
		s.dc.DrawLine(el.From.X, el.From.Y, el.To.X, el.To.Y)
		s.dc.Stroke()
	case *Panel:
		s.dc.SetColor(el.Color.RGBA())
		s.dc.DrawRectangle(el.Box.X, el.Box.Y, el.Box.W, el.Box.H)
		s.dc.Fill()
	case *PhotoSlot:
		return fmt.Errorf("%s slot: %w", el.Name, ErrPhotoNotImplemented)
	default:
		r.logger.Warn("skipping unknown layout element", zap.String("element", e.GetName()))
	}
	return nil
}

// drawText fits text into box and draws it line by line.
func (r *Renderer) drawText(s *Surface, name, text string, box Rect, style TextStyle) error {
	measureAt := func(size float64) MeasureFunc {
		return faceMeasure(r.fontCache.GetFace(style.Family, size, style.Bold))
	}
	fit := FitText(text, box.W, box.H, style, measureAt)
	if len(fit.Lines) == 0 {
		return nil
	}

	face := r.fontCache.GetFace(style.Family, fit.Size, style.Bold)
	lineHeight := style.lineHeight(fit.Size)
	blockHeight := float64(len(fit.Lines)) * lineHeight

	y0 := box.Y
	switch style.Vertical {
	case VerticalMiddle:
		y0 = box.Y + (box.H-blockHeight)/2
	case VerticalBottom:
		y0 = box.Bottom() - blockHeight
	}

	x := box.X
	switch style.Align {
	case HorizontalCenter:
		x = box.CenterX()
	case HorizontalRight:
		x = box.Right()
	}

	baseline := baselineOffset(face, lineHeight)
	s.dc.SetFontFace(face)
	s.dc.SetColor(style.Color.RGBA())
	for i, line := range fit.Lines {
		s.dc.DrawStringAnchored(line, x, y0+float64(i)*lineHeight+baseline, style.Align.anchor(), 0)
	}

	if fit.Truncated {
		r.logger.Debug("text truncated",
			zap.String("element", name),
			zap.Float64("size", fit.Size),
			zap.Int("lines", len(fit.Lines)))
		return fmt.Errorf("%s: %w", name, ErrTextOverflow)
	}
	return nil
}

// baselineOffset centers the face's ascent+descent within a line box.
func baselineOffset(face font.Face, lineHeight float64) float64 {
	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	return (lineHeight + ascent - descent) / 2
}

func (r *Renderer) drawStars(s *Surface, row *StarRow) {
	c := row.Color.RGBA()
	for i, center := range row.Centers() {
		vertices := Star(center, row.OuterRadius, row.InnerRadius, 5)
		if len(vertices) == 0 {
			continue
		}
		s.dc.NewSubPath()
		s.dc.MoveTo(vertices[0].X, vertices[0].Y)
		for _, v := range vertices[1:] {
			s.dc.LineTo(v.X, v.Y)
		}
		s.dc.ClosePath()
		s.dc.SetColor(c)
		if i < row.Filled {
			s.dc.Fill()
			continue
		}
		width := row.StrokeWidth
		if width <= 0 {
			width = 2
		}
		s.dc.SetLineWidth(width)
		s.dc.Stroke()
	}
}

// encodeImage encodes img in the requested format.
func encodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case ImageFormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	}
	return buf.Bytes(), nil
}
