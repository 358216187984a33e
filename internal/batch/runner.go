// Package batch sequences the whole binding-and-export pipeline: load,
// validate and group the catalog, match each model group to its template
// slide, bind placeholders row by row, drive the rendering engine, and
// clean up temp artifacts.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/deck"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/merge"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/render"
)

// ErrBatchInProgress rejects a second concurrent run: the rendering engine
// is a single stateful session and two batches must never interleave.
var ErrBatchInProgress = errors.New("a batch run is already in progress")

// imageSuffix names output artifacts: <code> + suffix + extension.
const imageSuffix = "_20"

// tempPrefix marks transient documents written only for the engine.
const tempPrefix = "__temp_"

// Request describes one batch run.
type Request struct {
	Source       catalog.Source
	TemplatePath string
	OutputDir    string
	// Codes restricts the run to these product codes; nil exports all.
	Codes        []string
	DecimalComma bool
	// Progress, when set, is called after every attempted row.
	Progress func(p Progress)
}

// Progress is a point-in-time snapshot for a driving UI.
type Progress struct {
	Code  string
	Done  int
	Total int
}

// Summary is the terminal report of a completed batch.
type Summary struct {
	Exported      int
	SkippedRows   int
	SkippedGroups int
	TotalRows     int
	OutputDir     string
}

// Runner executes batch runs one at a time. A Runner is reusable: each run
// owns its own engine instance and temp artifacts, so consecutive runs with
// different subsets are independent.
type Runner struct {
	Logger *slog.Logger
	// NewEngine builds the rendering engine for one run.
	NewEngine func() (render.Engine, error)
	// Bindings overrides the default placeholder binding table.
	Bindings map[string]merge.Rule
	// ImageExt is the output extension including the dot; defaults to ".jpg".
	ImageExt string

	running atomic.Bool
}

type state int

const (
	stateIdle state = iota
	stateLoading
	stateGrouping
	stateRendering
	stateCleanup
	stateDone
	stateAborted
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateLoading:
		return "loading"
	case stateGrouping:
		return "grouping"
	case stateRendering:
		return "rendering"
	case stateCleanup:
		return "cleanup"
	case stateDone:
		return "done"
	case stateAborted:
		return "aborted"
	}
	return "unknown"
}

// Run executes the pipeline on the calling goroutine. Only structural
// problems (unreadable dataset or template, missing required columns,
// unavailable engine) return an error; per-group and per-row failures are
// logged, counted, and skipped. A batch cannot be interrupted mid-run;
// cancellation via ctx takes effect between rows at the earliest.
func (r *Runner) Run(ctx context.Context, req Request) (Summary, error) {
	if !r.running.CompareAndSwap(false, true) {
		return Summary{}, ErrBatchInProgress
	}
	defer r.running.Store(false)

	logger := r.logger()
	logger.Info("batch started", "dataset", req.Source.Path(), "template", req.TemplatePath)
	summary, err := r.run(ctx, req, logger)
	if err != nil {
		logger.Error("batch aborted", "error", err)
		return summary, err
	}
	logger.Info("batch finished",
		"exported", summary.Exported,
		"skipped_rows", summary.SkippedRows,
		"skipped_groups", summary.SkippedGroups,
		"output", summary.OutputDir)
	return summary, nil
}

func (r *Runner) run(ctx context.Context, req Request, logger *slog.Logger) (Summary, error) {
	cur := stateIdle
	transition := func(next state) {
		logger.Debug("state transition", "from", cur.String(), "to", next.String())
		cur = next
	}

	summary := Summary{OutputDir: req.OutputDir}

	transition(stateLoading)
	table, err := req.Source.Load()
	if err != nil {
		transition(stateAborted)
		return summary, fmt.Errorf("failed to load dataset: %w", err)
	}
	template, err := deck.Open(req.TemplatePath)
	if err != nil {
		transition(stateAborted)
		return summary, fmt.Errorf("failed to open template: %w", err)
	}
	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		transition(stateAborted)
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	transition(stateGrouping)
	groups, stats, err := catalog.ValidateAndGroup(table, catalog.RequiredColumns(), req.Codes, req.DecimalComma)
	if err != nil {
		transition(stateAborted)
		return summary, err
	}
	logger.Info("rows grouped",
		"total", stats.Total, "dropped", stats.Dropped,
		"filtered", stats.Filtered, "groups", len(groups))
	for _, g := range groups {
		summary.TotalRows += len(g.Rows)
	}
	if len(groups) == 0 {
		logger.Info("nothing to export")
		transition(stateDone)
		return summary, nil
	}

	transition(stateRendering)
	bindings := r.bindings()
	var (
		engine render.Engine
		temps  []string
	)
	engineErr := func() error {
		for _, group := range groups {
			slideIndex, ok := merge.FindSlide(template, group.Key, req.DecimalComma)
			if !ok {
				logger.Warn("no template slide for model",
					"model", group.Key, "rows", len(group.Rows))
				summary.SkippedGroups++
				summary.SkippedRows += len(group.Rows)
				continue
			}
			logger.Debug("model matched", "model", group.Key, "slide", slideIndex)

			if engine == nil {
				// Opened lazily on the first successful match so a run that
				// matches nothing never spawns the external session.
				eng, err := r.newEngine()
				if err != nil {
					return fmt.Errorf("failed to create rendering engine: %w", err)
				}
				if err := eng.Start(ctx); err != nil {
					return fmt.Errorf("failed to start rendering engine: %w", err)
				}
				engine = eng
			}

			for _, row := range group.Rows {
				if err := r.exportRow(ctx, engine, template, slideIndex, row, req, bindings, &temps); err != nil {
					logger.Error("row export failed", "code", row.Code, "error", err)
					summary.SkippedRows++
				} else {
					summary.Exported++
					logger.Info("row exported", "code", row.Code, "model", group.Key)
				}
				if req.Progress != nil {
					req.Progress(Progress{
						Code:  row.Code,
						Done:  summary.Exported + summary.SkippedRows,
						Total: summary.TotalRows,
					})
				}
			}
		}
		return nil
	}()

	// The session closes exactly once, before temp deletion, so the engine
	// cannot hold locks on files being removed.
	if engine != nil {
		if err := engine.Close(); err != nil {
			logger.Error("failed to close rendering engine", "error", err)
		}
	}

	transition(stateCleanup)
	for _, temp := range temps {
		if err := os.Remove(temp); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to delete temp document", "path", temp, "error", err)
		}
	}

	if engineErr != nil {
		transition(stateAborted)
		return summary, engineErr
	}
	transition(stateDone)
	return summary, nil
}

// exportRow binds one row into a fresh copy of the template and hands the
// saved document to the engine.
func (r *Runner) exportRow(
	ctx context.Context,
	engine render.Engine,
	template *deck.Deck,
	slideIndex int,
	row catalog.ProductRow,
	req Request,
	bindings map[string]merge.Rule,
	temps *[]string,
) error {
	work := template.Clone()
	merge.Bind(work.Slides()[slideIndex], row, bindings, r.logger())

	tempPath := filepath.Join(req.OutputDir, tempPrefix+row.Code+".pptx")
	// Tracked before writing; a half-written document still gets deleted.
	*temps = append(*temps, tempPath)
	if err := work.Save(tempPath); err != nil {
		return fmt.Errorf("failed to save temp document: %w", err)
	}

	imagePath := filepath.Join(req.OutputDir, row.Code+imageSuffix+r.imageExt())
	if err := engine.Export(ctx, tempPath, slideIndex, imagePath); err != nil {
		return fmt.Errorf("failed to export image: %w", err)
	}
	return nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) bindings() map[string]merge.Rule {
	if r.Bindings != nil {
		return r.Bindings
	}
	return merge.DefaultBindings()
}

func (r *Runner) newEngine() (render.Engine, error) {
	if r.NewEngine != nil {
		return r.NewEngine()
	}
	return &render.LibreOffice{Logger: r.Logger}, nil
}

func (r *Runner) imageExt() string {
	if r.ImageExt != "" {
		return r.ImageExt
	}
	return ".jpg"
}
