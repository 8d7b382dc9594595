package main

import (
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	quotecard "github.com/VantageDataChat/GoQuoteCard"
)

var (
	verbose     bool
	fontDirs    []string
	systemFonts bool

	cardPath    string
	outDir      string
	layout      string
	format      string
	fontFamily  string
	previewSize int
	allLayouts  bool

	logger *zap.Logger
)

// Execute builds the command tree and runs it.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "quotecard",
		Short:        "Render shareable testimonial cards",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringSliceVar(&fontDirs, "font-dir", nil, "extra directory to search for fonts (repeatable)")
	root.PersistentFlags().BoolVar(&systemFonts, "system-fonts", false, "use installed fonts instead of the bundled Go fonts")

	root.AddCommand(renderCmd(), watchCmd(), layoutsCmd(), versionCmd())
	return root
}

func addCardFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cardPath, "card", "c", "card.yaml", "card file (YAML)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory, or - for stdout")
	cmd.Flags().StringVar(&layout, "layout", "", "override the card layout (classic, modern, minimal)")
	cmd.Flags().StringVar(&format, "format", "", "override the output format (png, jpeg)")
	cmd.Flags().StringVar(&fontFamily, "font", "", "override the font family")
}

// loadCard reads the card file and applies command-line overrides.
func loadCard() (*quotecard.Card, *quotecard.RenderOptions, error) {
	card, err := quotecard.LoadCard(cardPath)
	if err != nil {
		return nil, nil, err
	}
	applyOverrides(card)
	if err := card.Design.Validate(); err != nil {
		logger.Warn("card design has problems", zap.Error(err))
	}
	if err := card.Testimonial.Validate(); err != nil {
		logger.Warn("card testimonial has problems", zap.Error(err))
	}

	opts, err := card.Options(&quotecard.RenderOptions{
		SystemFonts: systemFonts || len(fontDirs) > 0,
		FontDirs:    fontDirs,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return card, opts, nil
}

// applyOverrides copies the --layout, --format and --font flags onto card.
func applyOverrides(card *quotecard.Card) {
	if layout != "" {
		card.Design.Layout = quotecard.LayoutKind(layout)
	}
	if format != "" {
		card.Render.Format = format
	}
	if fontFamily != "" {
		card.Design.FontFamily = quotecard.FontFamily(fontFamily)
	}
}

func newSaver() quotecard.Saver {
	if outDir == "-" {
		return quotecard.WriterSaver{W: os.Stdout}
	}
	return quotecard.FileSaver{Dir: outDir}
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a card once and save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			card, opts, err := loadCard()
			if err != nil {
				return err
			}
			if allLayouts {
				return renderAll(cmd, card, opts)
			}

			d := quotecard.NewDispatcher(opts)
			defer d.Close()
			d.Attach(quotecard.NewSurface(quotecard.CanvasSize, quotecard.CanvasSize))

			frame, err := d.Update(card.Testimonial, card.Design)
			if err != nil {
				return err
			}
			exporter := quotecard.NewExporter(newSaver(), quotecard.WithExportLogger(logger))
			name, err := exporter.Export(cmd.Context(), frame)
			if err != nil {
				return err
			}
			if outDir == "-" {
				return nil
			}
			fmt.Println(filepath.Join(outDir, name))

			if previewSize > 0 {
				return writePreview(d, name)
			}
			return nil
		},
	}
	addCardFlags(cmd)
	cmd.Flags().IntVar(&previewSize, "preview", 0, "also write a thumbnail no larger than this many pixels")
	cmd.Flags().BoolVar(&allLayouts, "all-layouts", false, "render the card in every layout")
	return cmd
}

func renderAll(cmd *cobra.Command, card *quotecard.Card, opts *quotecard.RenderOptions) error {
	frames, err := quotecard.RenderAll(cmd.Context(), card.Testimonial, card.Design, opts)
	if err != nil {
		return err
	}
	exporter := quotecard.NewExporter(newSaver(), quotecard.WithExportLogger(logger))
	for _, frame := range frames {
		name, err := exporter.Export(cmd.Context(), frame)
		if err != nil {
			return err
		}
		if outDir != "-" {
			fmt.Println(filepath.Join(outDir, name))
		}
	}
	return nil
}

func writePreview(d *quotecard.Dispatcher, name string) error {
	thumb, err := d.Preview(previewSize)
	if err != nil {
		return err
	}
	path := filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name))+".preview.png")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, thumb); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	fmt.Println(path)
	return nil
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render and save a card every time its file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts, err := loadCard()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d := quotecard.NewDispatcher(opts)
			defer d.Close()
			d.Attach(quotecard.NewSurface(quotecard.CanvasSize, quotecard.CanvasSize))

			exporter := quotecard.NewExporter(newSaver(), quotecard.WithExportLogger(logger))
			d.OnFrame(func(frame *quotecard.RenderedImage) {
				if _, err := exporter.Export(ctx, frame); err != nil {
					logger.Error("export failed", zap.Error(err))
				}
			})

			w, err := quotecard.NewWatcher(cardPath, d, logger, quotecard.WithCardTransform(applyOverrides))
			if err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				return err
			}
			defer w.Stop()

			select {
			case <-ctx.Done():
			case <-w.Done():
			}
			return nil
		},
	}
	addCardFlags(cmd)
	return cmd
}

func layoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List layouts and font families",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "layouts:")
			for _, l := range quotecard.Layouts {
				fmt.Fprintf(out, "  %s\n", l)
			}
			fmt.Fprintln(out, "fonts:")
			for _, f := range quotecard.FontFamilies {
				fmt.Fprintf(out, "  %s\n", f)
			}
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the library version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), quotecard.Version)
		},
	}
}
