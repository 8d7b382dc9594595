package quotecard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/image/font/gofont/gomono"
)

func TestRenderAll(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := DefaultDesignConfig()
	frames, err := RenderAll(context.Background(), janeDoe(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, frames, len(Layouts))

	for i, kind := range Layouts {
		assert.Equal(t, kind, frames[i].Layout)
		assert.Equal(t, "Jane Doe", frames[i].Author)

		single, err := newAttached(t, nil).Update(janeDoe(), designFor(kind, true))
		require.NoError(t, err)
		assert.Equal(t, single.Data, frames[i].Data, "layout %s matches a single render", kind)
	}
	assert.Equal(t, LayoutClassic, cfg.Layout, "cfg is not modified")
}

func TestRenderAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RenderAll(ctx, janeDoe(), DefaultDesignConfig(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderAll_KeepsRegisteredFonts(t *testing.T) {
	fc := NewFontCache()
	require.NoError(t, fc.LoadFontData(string(FontInter), gomono.TTF))
	opts := DefaultRenderOptions()
	opts.FontCache = fc

	frames, err := RenderAll(context.Background(), janeDoe(), DefaultDesignConfig(), opts)
	require.NoError(t, err)

	single, err := newAttached(t, opts).Update(janeDoe(), DefaultDesignConfig())
	require.NoError(t, err)
	assert.Equal(t, single.Data, frames[0].Data, "classic frame uses the registered Inter")

	bundled, err := newAttached(t, nil).Update(janeDoe(), DefaultDesignConfig())
	require.NoError(t, err)
	assert.NotEqual(t, bundled.Data, frames[0].Data)
}
