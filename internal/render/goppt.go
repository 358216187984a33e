package render

import (
	"context"
	"fmt"
	"log/slog"

	ppt "github.com/VantageDataChat/GoPPT"
)

const defaultRenderWidth = 1920

// GoPPT rasterizes slides in-process with the GoPPT renderer. It needs no
// external binaries, which makes it the fallback for hosts without
// LibreOffice; output is PNG.
type GoPPT struct {
	// Width is the rendered image width in pixels; defaults to 1920.
	Width  int
	Logger *slog.Logger
}

func (e *GoPPT) Start(ctx context.Context) error {
	if e.Logger != nil {
		e.Logger.Info("rendering engine started", "engine", "goppt")
	}
	return nil
}

func (e *GoPPT) Export(ctx context.Context, docPath string, slideIndex int, imagePath string) error {
	reader, err := ppt.NewReader(ppt.ReaderPowerPoint2007)
	if err != nil {
		return fmt.Errorf("failed to create pptx reader: %w", err)
	}
	pres, err := reader.Read(docPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", docPath, err)
	}
	if n := pres.GetSlideCount(); slideIndex < 0 || slideIndex >= n {
		return fmt.Errorf("slide index %d out of range (deck has %d slides)", slideIndex, n)
	}

	opts := ppt.DefaultRenderOptions()
	opts.Width = e.width()
	if err := pres.SaveSlideAsImage(slideIndex, imagePath, opts); err != nil {
		return fmt.Errorf("failed to render slide %d: %w", slideIndex, err)
	}
	return nil
}

func (e *GoPPT) Close() error { return nil }

func (e *GoPPT) width() int {
	if e.Width > 0 {
		return e.Width
	}
	return defaultRenderWidth
}
