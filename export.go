package quotecard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Saver hands encoded card bytes to wherever downloads go.
type Saver interface {
	Save(ctx context.Context, filename string, data []byte) error
}

// FileSaver writes cards into Dir, creating it when needed.
type FileSaver struct {
	Dir string
}

// Save writes data to Dir/filename.
func (s FileSaver) Save(ctx context.Context, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if filename != filepath.Base(filename) {
		return fmt.Errorf("invalid filename %q", filename)
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, filename), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("failed to write card: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close file: %w", closeErr)
	}
	return nil
}

// WriterSaver streams cards to W, ignoring the filename.
type WriterSaver struct {
	W io.Writer
}

// Save writes data to W.
func (s WriterSaver) Save(ctx context.Context, _ string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.W.Write(data)
	return err
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithClock sets the clock used to stamp frames that carry no RenderedAt.
func WithClock(now func() time.Time) ExporterOption {
	return func(e *Exporter) { e.now = now }
}

// WithExportLogger sets the exporter's logger.
func WithExportLogger(logger *zap.Logger) ExporterOption {
	return func(e *Exporter) { e.logger = logger }
}

var errNoSaver = errors.New("exporter has no saver")

// Exporter names finished frames and hands them to a Saver.
type Exporter struct {
	saver  Saver
	now    func() time.Time
	logger *zap.Logger

	mu     sync.Mutex
	lastMS int64
}

// NewExporter creates an exporter writing through saver.
func NewExporter(saver Saver, opts ...ExporterOption) *Exporter {
	e := &Exporter{saver: saver, now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export saves frame under testimonial-<author-slug>-<unix-ms>.<ext> and
// returns the name used. The stamp is the frame's RenderedAt, or the
// exporter clock for frames without one, so the name matches
// frame.Filename unless that name was already exported. Two exports in one
// session never share a name.
func (e *Exporter) Export(ctx context.Context, frame *RenderedImage) (string, error) {
	if frame == nil || len(frame.Data) == 0 {
		return "", ErrNoFrame
	}
	if e.saver == nil {
		return "", errNoSaver
	}
	name := Filename(frame.Author, e.stamp(frame.RenderedAt), frame.Format)
	if err := e.saver.Save(ctx, name, frame.Data); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	e.logger.Info("card exported", zap.String("file", name), zap.Int("bytes", len(frame.Data)))
	return name, nil
}

// stamp returns at in unix milliseconds, or the clock when at is zero,
// bumped past the previous stamp when it has not advanced.
func (e *Exporter) stamp(at time.Time) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if at.IsZero() {
		at = e.now()
	}
	ms := at.UnixMilli()
	if ms <= e.lastMS {
		ms = e.lastMS + 1
	}
	e.lastMS = ms
	return ms
}

// Filename formats the download name for a card.
func Filename(author string, unixMS int64, format ImageFormat) string {
	return fmt.Sprintf("testimonial-%s-%d.%s", Slugify(author), unixMS, format.Extension())
}

// anonymousSlug stands in for names with no usable characters.
const anonymousSlug = "anonymous"

// Slugify lower-cases name, strips diacritics and joins the remaining ASCII
// letters and digits with single dashes.
func Slugify(name string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}
	folded = cases.Lower(language.Und).String(folded)

	var b strings.Builder
	dash := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return anonymousSlug
	}
	return b.String()
}
