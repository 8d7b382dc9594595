package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quotecard "github.com/VantageDataChat/GoQuoteCard"
)

const classicCard = `
testimonial:
  quote: Great coaching
  customer_name: Jane Doe
  role: Client
  score: 4.6
design:
  layout: classic
`

func runCLI(t *testing.T, args ...string) {
	t.Helper()
	root := newRootCmd()
	root.SetArgs(args)
	require.NoError(t, root.Execute())
}

func TestApplyOverrides(t *testing.T) {
	layout, format, fontFamily = "", "", ""
	card := quotecard.DefaultCard()
	applyOverrides(card)
	assert.Equal(t, quotecard.DefaultCard(), card, "no flags, no changes")

	layout, format, fontFamily = "minimal", "jpeg", "Lora"
	t.Cleanup(func() { layout, format, fontFamily = "", "", "" })
	applyOverrides(card)
	assert.Equal(t, quotecard.LayoutMinimal, card.Design.Layout)
	assert.Equal(t, "jpeg", card.Render.Format)
	assert.Equal(t, quotecard.FontLora, card.Design.FontFamily)
}

func TestRenderCmd_LayoutOverride(t *testing.T) {
	dir := t.TempDir()
	cardFile := filepath.Join(dir, "card.yaml")
	require.NoError(t, os.WriteFile(cardFile, []byte(classicCard), 0644))
	out := filepath.Join(dir, "out")

	runCLI(t, "render", "--card", cardFile, "--out", out, "--layout", "minimal")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^testimonial-jane-doe-\d+\.png$`, entries[0].Name())
	got, err := os.ReadFile(filepath.Join(out, entries[0].Name()))
	require.NoError(t, err)

	card, err := quotecard.ParseCard([]byte(classicCard))
	require.NoError(t, err)
	card.Design.Layout = quotecard.LayoutMinimal
	d := quotecard.NewDispatcher(nil)
	defer d.Close()
	d.Attach(quotecard.NewSurface(quotecard.CanvasSize, quotecard.CanvasSize))
	want, err := d.Update(card.Testimonial, card.Design)
	require.NoError(t, err)

	assert.Equal(t, want.Data, got)
}

func TestRenderCmd_AllLayouts(t *testing.T) {
	dir := t.TempDir()
	cardFile := filepath.Join(dir, "card.yaml")
	require.NoError(t, os.WriteFile(cardFile, []byte(classicCard), 0644))
	out := filepath.Join(dir, "out")

	runCLI(t, "render", "--card", cardFile, "--out", out, "--all-layouts")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, len(quotecard.Layouts))
}
