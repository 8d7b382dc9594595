package quotecard

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// ErrNoFrame is returned when a frame is requested before any pass completed.
var ErrNoFrame = errors.New("no rendered frame yet")

// RenderedImage is the outcome of one pass. Each pass replaces the previous
// one; only the latest is kept.
type RenderedImage struct {
	Image      *image.NRGBA
	Data       []byte
	Format     ImageFormat
	Layout     LayoutKind
	Author     string
	RenderedAt time.Time
	// Filename is the download name, stamped with RenderedAt. Exporter uses
	// the same stamp and only moves it forward when it would repeat a name
	// already exported in the session.
	Filename string
	// Notices lists conditions that degraded the card without stopping the
	// pass, e.g. ErrPhotoNotImplemented or ErrTextOverflow.
	Notices []error
}

// DispatcherStats counts dispatcher activity.
type DispatcherStats struct {
	Passes    int
	Unchanged int
	Skipped   int
	Scheduled int
}

type passInput struct {
	testimonial Testimonial
	design      DesignConfig
}

// Dispatcher owns the drawing surface, picks the layout composer for each
// DesignConfig and keeps the latest frame in sync with edits.
// Passes run one at a time; readers only ever see completed frames.
type Dispatcher struct {
	mu       sync.Mutex
	renderer *Renderer
	opts     *RenderOptions
	logger   *zap.Logger

	surface *Surface
	latest  *RenderedImage
	last    *passInput
	pending *passInput
	timer   *time.Timer
	closed  bool
	onFrame func(*RenderedImage)
	stats   DispatcherStats
}

// NewDispatcher creates a dispatcher with no surface attached.
func NewDispatcher(opts *RenderOptions) *Dispatcher {
	opts = opts.withDefaults()
	return &Dispatcher{
		renderer: NewRenderer(opts),
		opts:     opts,
		logger:   opts.Logger.Named("dispatcher"),
	}
}

// Attach hands the dispatcher its surface. The next pass redraws in full
// even if nothing was edited.
func (d *Dispatcher) Attach(s *Surface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.surface = s
	d.last = nil
}

// Detach releases the surface. Passes fail with ErrNoSurface until another
// is attached; the latest frame stays available.
func (d *Dispatcher) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.surface = nil
}

// OnFrame registers fn to run after every pass that produced a new frame.
// fn runs outside the dispatcher lock.
func (d *Dispatcher) OnFrame(fn func(*RenderedImage)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onFrame = fn
}

// Update runs one synchronous pass for t and cfg. If neither changed since
// the last pass, the current frame is returned without redrawing.
func (d *Dispatcher) Update(t Testimonial, cfg DesignConfig) (*RenderedImage, error) {
	d.mu.Lock()
	frame, fresh, err := d.renderLocked(passInput{testimonial: t, design: cfg})
	hook := d.onFrame
	d.mu.Unlock()

	if fresh && hook != nil {
		hook(frame)
	}
	return frame, err
}

// Schedule queues a pass for t and cfg. With a debounce configured, edits
// arriving within the window collapse into one pass for the newest input;
// otherwise the pass runs immediately. Errors are logged.
func (d *Dispatcher) Schedule(t Testimonial, cfg DesignConfig) {
	in := passInput{testimonial: t, design: cfg}
	if d.opts.Debounce <= 0 {
		if _, err := d.Update(t, cfg); err != nil {
			d.logger.Warn("render failed", zap.Error(err))
		}
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.stats.Scheduled++
	d.pending = &in
	if d.timer == nil {
		d.timer = time.AfterFunc(d.opts.Debounce, d.fire)
		return
	}
	d.timer.Reset(d.opts.Debounce)
}

func (d *Dispatcher) fire() {
	if _, err := d.Flush(); err != nil && !errors.Is(err, ErrNoFrame) {
		d.logger.Warn("debounced render failed", zap.Error(err))
	}
}

// Flush runs the pending scheduled pass now, if any, and returns the latest
// frame.
func (d *Dispatcher) Flush() (*RenderedImage, error) {
	d.mu.Lock()
	if d.pending == nil {
		latest := d.latest
		d.mu.Unlock()
		if latest == nil {
			return nil, ErrNoFrame
		}
		return latest, nil
	}
	in := *d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
	frame, fresh, err := d.renderLocked(in)
	hook := d.onFrame
	d.mu.Unlock()

	if fresh && hook != nil {
		hook(frame)
	}
	return frame, err
}

// Close drops any pending pass and stops the debounce timer.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Latest returns the most recent completed frame.
func (d *Dispatcher) Latest() (*RenderedImage, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.latest == nil {
		return nil, ErrNoFrame
	}
	return d.latest, nil
}

// Preview returns the latest frame scaled to fit maxSide×maxSide.
func (d *Dispatcher) Preview(maxSide int) (*image.NRGBA, error) {
	frame, err := d.Latest()
	if err != nil {
		return nil, err
	}
	if maxSide <= 0 || maxSide >= frame.Image.Bounds().Dx() {
		return imaging.Clone(frame.Image), nil
	}
	return imaging.Fit(frame.Image, maxSide, maxSide, imaging.Lanczos), nil
}

// Stats returns a copy of the activity counters.
func (d *Dispatcher) Stats() DispatcherStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// renderLocked runs a full pass: clear, compose, draw, encode. fresh reports
// whether a new frame was produced. Caller holds d.mu.
func (d *Dispatcher) renderLocked(in passInput) (frame *RenderedImage, fresh bool, err error) {
	if d.surface == nil {
		d.stats.Skipped++
		d.logger.Debug("render skipped: no surface")
		return nil, false, ErrNoSurface
	}
	if d.latest != nil && d.last != nil && *d.last == in {
		d.stats.Unchanged++
		return d.latest, false, nil
	}

	compose, err := SpecFor(in.design.Layout)
	if err != nil {
		return nil, false, err
	}
	spec := compose(in.testimonial, in.design)

	start := time.Now()
	notices, err := d.renderer.Draw(d.surface, spec)
	if err != nil {
		return nil, false, err
	}
	img := d.surface.Snapshot()
	data, err := encodeImage(img, d.opts.Format, d.opts.JPEGQuality)
	if err != nil {
		return nil, false, err
	}

	renderedAt := d.opts.Clock()
	frame = &RenderedImage{
		Image:      img,
		Data:       data,
		Format:     d.opts.Format,
		Layout:     spec.Layout,
		Author:     in.testimonial.CustomerName,
		RenderedAt: renderedAt,
		Filename:   Filename(in.testimonial.CustomerName, renderedAt.UnixMilli(), d.opts.Format),
		Notices:    notices,
	}
	for _, notice := range notices {
		d.logger.Warn("card rendered with notice", zap.String("layout", string(spec.Layout)), zap.Error(notice))
	}
	d.logger.Debug("card rendered",
		zap.String("layout", string(spec.Layout)),
		zap.Int("elements", len(spec.Elements)),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)))

	d.latest = frame
	d.last = &in
	d.stats.Passes++
	return frame, true, nil
}
