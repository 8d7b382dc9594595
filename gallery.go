package quotecard

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RenderAll renders t in every layout at once, keeping cfg for everything
// but the layout. Frames come back in Layouts order.
//
// Faces are not safe for concurrent drawing, so each layout gets its own
// dispatcher, surface and font cache. When opts carries a FontCache, each
// layout works on a copy of it that keeps every registered font.
func RenderAll(ctx context.Context, t Testimonial, cfg DesignConfig, opts *RenderOptions) ([]*RenderedImage, error) {
	frames := make([]*RenderedImage, len(Layouts))
	var shared *FontCache
	if opts != nil {
		shared = opts.FontCache
	}
	eg, egCtx := errgroup.WithContext(ctx)

	for i, kind := range Layouts {
		i, kind := i, kind
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			layoutOpts := DefaultRenderOptions()
			if opts != nil {
				*layoutOpts = *opts
			}
			layoutOpts.FontCache = nil
			if shared != nil {
				layoutOpts.FontCache = shared.clone()
			}
			layoutOpts.Debounce = 0

			d := NewDispatcher(layoutOpts)
			defer d.Close()
			d.Attach(NewSurface(CanvasSize, CanvasSize))

			design := cfg
			design.Layout = kind
			frame, err := d.Update(t, design)
			if err != nil {
				return err
			}
			frames[i] = frame
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if opts != nil && opts.Logger != nil {
		opts.Logger.Debug("rendered all layouts", zap.Int("layouts", len(frames)))
	}
	return frames, nil
}
