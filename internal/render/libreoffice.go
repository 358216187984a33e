package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultDPI = 150

// macOS install location, checked when soffice is not on PATH.
const darwinSofficePath = "/Applications/LibreOffice.app/Contents/MacOS/soffice"

// LibreOffice renders through a headless soffice session: the document is
// converted to PDF and the target page is rasterized with pdftoppm. One
// scratch user profile is created per batch so concurrent tools never fight
// over the default profile, and intermediate PDFs never leak outside it.
type LibreOffice struct {
	// Binary overrides soffice discovery (ILLUSTRATOR_SOFFICE).
	Binary string
	// DPI for pdftoppm; defaults to 150.
	DPI    int
	Logger *slog.Logger

	bin     string
	profile string
}

func (e *LibreOffice) Start(ctx context.Context) error {
	bin := e.Binary
	if bin == "" {
		found, err := exec.LookPath("soffice")
		if err != nil {
			if _, statErr := os.Stat(darwinSofficePath); statErr == nil {
				found = darwinSofficePath
			} else {
				return fmt.Errorf("LibreOffice not found: install it or put 'soffice' on PATH")
			}
		}
		bin = found
	}
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return fmt.Errorf("pdftoppm not found: install poppler utilities")
	}

	profile, err := os.MkdirTemp("", "illustrator-soffice-*")
	if err != nil {
		return fmt.Errorf("failed to create engine profile: %w", err)
	}
	e.bin = bin
	e.profile = profile
	e.logger().Info("rendering engine started", "engine", "soffice", "binary", bin)
	return nil
}

func (e *LibreOffice) Export(ctx context.Context, docPath string, slideIndex int, imagePath string) error {
	if e.profile == "" {
		return fmt.Errorf("engine not started")
	}

	cmd := exec.CommandContext(ctx, e.bin,
		"--headless",
		"-env:UserInstallation=file://"+e.profile,
		"--convert-to", "pdf",
		"--outdir", e.profile,
		docPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("pdf conversion failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	pdfPath := filepath.Join(e.profile, pdfName(docPath))
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("expected pdf not found: %s", pdfPath)
	}
	defer os.Remove(pdfPath)

	page := slideIndex + 1
	prefix := strings.TrimSuffix(imagePath, filepath.Ext(imagePath))
	cmd = exec.CommandContext(ctx, "pdftoppm",
		"-jpeg",
		"-r", strconv.Itoa(e.dpi()),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-singlefile",
		pdfPath, prefix,
	)
	out, err = cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("rasterization failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	produced := prefix + ".jpg"
	if produced != imagePath {
		if err := os.Rename(produced, imagePath); err != nil {
			return fmt.Errorf("failed to move rendered image: %w", err)
		}
	}
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("rendered image not found: %s", imagePath)
	}
	return nil
}

func (e *LibreOffice) Close() error {
	if e.profile == "" {
		return nil
	}
	err := os.RemoveAll(e.profile)
	e.profile = ""
	if err != nil {
		return fmt.Errorf("failed to remove engine profile: %w", err)
	}
	e.logger().Info("rendering engine closed", "engine", "soffice")
	return nil
}

func (e *LibreOffice) dpi() int {
	if e.DPI > 0 {
		return e.DPI
	}
	return defaultDPI
}

func (e *LibreOffice) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// pdfName maps a source document name to soffice's output name.
func pdfName(docPath string) string {
	base := filepath.Base(docPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
}
