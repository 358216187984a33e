package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/render"
)

// resolveSource turns the --data argument into a dataset source. A directory
// is resolved to its first .xlsx file, so the tool can simply be pointed at
// the folder holding the catalog.
func resolveSource(path string) (catalog.Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("dataset path %s: %w", path, err)
	}
	if info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(path, "*.xlsx"))
		if err != nil {
			return nil, err
		}
		var usable []string
		for _, m := range matches {
			// Editors leave ~$ lock files next to open workbooks.
			if !strings.HasPrefix(filepath.Base(m), "~$") {
				usable = append(usable, m)
			}
		}
		if len(usable) == 0 {
			return nil, fmt.Errorf("no .xlsx file found in %s", path)
		}
		sort.Strings(usable)
		return catalog.XLSXSource{File: usable[0]}, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return catalog.XLSXSource{File: path}, nil
	case ".csv":
		return catalog.CSVSource{File: path}, nil
	}
	return nil, fmt.Errorf("unsupported dataset format: %s", path)
}

// engineFactory builds the configured rendering engine. The factory is
// invoked lazily by the batch runner, once per run.
func engineFactory(logger *slog.Logger) (func() (render.Engine, error), string, error) {
	switch engineName {
	case "soffice":
		return func() (render.Engine, error) {
			return &render.LibreOffice{Binary: sofficePath, Logger: logger}, nil
		}, ".jpg", nil
	case "goppt":
		return func() (render.Engine, error) {
			return &render.GoPPT{Logger: logger}, nil
		}, ".png", nil
	}
	return nil, "", fmt.Errorf("unknown engine %q (use soffice or goppt)", engineName)
}

// newLogger opens the per-run batch log in the output directory. Each run
// truncates the previous log so the file always describes exactly one batch.
func newLogger(dir string, echo bool) (*slog.Logger, string, func(), error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	logPath := filepath.Join(dir, "illustrator.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var w io.Writer = file
	if echo {
		w = io.MultiWriter(file, os.Stderr)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, logPath, func() { file.Close() }, nil
}

func requireTemplate() error {
	if templatePath == "" {
		return fmt.Errorf("no template set: use --template or ILLUSTRATOR_TEMPLATE")
	}
	if _, err := os.Stat(templatePath); err != nil {
		return fmt.Errorf("template %s: %w", templatePath, err)
	}
	return nil
}
