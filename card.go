package quotecard

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Card is the on-disk description of one testimonial card.
type Card struct {
	Testimonial Testimonial  `yaml:"testimonial"`
	Design      DesignConfig `yaml:"design"`
	Render      CardRender   `yaml:"render"`
}

// CardRender holds the output settings of a card file.
type CardRender struct {
	Format      string        `yaml:"format"`
	JPEGQuality int           `yaml:"jpeg_quality"`
	Debounce    time.Duration `yaml:"debounce"`
}

// DefaultCard returns an empty card with the default design.
func DefaultCard() *Card {
	return &Card{
		Design: DefaultDesignConfig(),
		Render: CardRender{
			Format:      ImageFormatPNG.String(),
			JPEGQuality: 90,
			Debounce:    150 * time.Millisecond,
		},
	}
}

// LoadCard reads a YAML card file. Fields the file leaves out keep their
// DefaultCard values.
func LoadCard(path string) (*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read card: %w", err)
	}
	return ParseCard(data)
}

// ParseCard parses YAML card data over DefaultCard.
func ParseCard(data []byte) (*Card, error) {
	card := DefaultCard()
	if err := yaml.Unmarshal(data, card); err != nil {
		return nil, fmt.Errorf("failed to parse card: %w", err)
	}
	return card, nil
}

// Save writes the card as YAML.
func (c *Card) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create card directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write card: %w", err)
	}
	return nil
}

// Options returns render options carrying the card's output settings.
// base supplies everything a card file does not describe (fonts, logger,
// clock); it may be nil.
func (c *Card) Options(base *RenderOptions) (*RenderOptions, error) {
	opts := DefaultRenderOptions()
	if base != nil {
		*opts = *base
	}
	format, err := ParseImageFormat(c.Render.Format)
	if err != nil {
		return nil, err
	}
	opts.Format = format
	if c.Render.JPEGQuality > 0 {
		opts.JPEGQuality = c.Render.JPEGQuality
	}
	opts.Debounce = c.Render.Debounce
	return opts, nil
}
