package tui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/batch"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/deck/decktest"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/merge"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/render"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSource struct {
	table *catalog.Table
}

func (s *memSource) Load() (*catalog.Table, error) { return s.table, nil }
func (s *memSource) Path() string                  { return "memory://catalog" }

type fakeEngine struct{}

func (e *fakeEngine) Start(ctx context.Context) error { return nil }
func (e *fakeEngine) Close() error                    { return nil }

func (e *fakeEngine) Export(ctx context.Context, docPath string, slideIndex int, imagePath string) error {
	return os.WriteFile(imagePath, []byte("img"), 0644)
}

func catalogRow(model, code string) map[string]string {
	return map[string]string{
		catalog.ColumnModel:          model,
		catalog.ColumnCode:           code,
		catalog.ColumnWeight:         "12.5",
		catalog.ColumnWidth:          "30",
		catalog.ColumnHeight:         "25.5",
		catalog.ColumnDepth:          "17.4",
		catalog.ColumnStrapWidth:     "4",
		catalog.ColumnStrapMaxLength: "120",
		catalog.ColumnStrapMinLength: "60",
	}
}

func testConfig(t *testing.T, rows ...map[string]string) Config {
	t.Helper()
	template := filepath.Join(t.TempDir(), "template.pptx")
	require.NoError(t, decktest.Write(template, []decktest.Slide{
		{Shapes: []decktest.Shape{
			{Name: merge.PlaceholderModel, Text: "7"},
			{Name: "weight", Text: "X kg"},
		}},
	}))
	return Config{
		Source:       &memSource{table: &catalog.Table{Columns: catalog.RequiredColumns(), Rows: rows}},
		TemplatePath: template,
		OutputDir:    filepath.Join(t.TempDir(), "out"),
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		NewEngine:    func() (render.Engine, error) { return &fakeEngine{}, nil },
		ImageExt:     ".jpg",
	}
}

// drive executes commands the way the runtime's event loop would, feeding
// resulting messages back through Update. Completion is deferred behind any
// still-pending commands so queued progress snapshots get delivered first.
func drive(t *testing.T, m *RunModel, first tea.Cmd) (*RunModel, []batch.Progress) {
	t.Helper()
	queue := []tea.Cmd{first}
	var seen []batch.Progress
	for len(queue) > 0 {
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}
		msg := cmd()
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case batchProgressMsg:
			seen = append(seen, batch.Progress(msg))
			model, next := m.Update(msg)
			m = model
			queue = append(queue, next)
		case BatchCompleteMsg:
			if len(queue) > 0 {
				queue = append(queue, func() tea.Msg { return msg })
				continue
			}
			model, _ := m.Update(msg)
			m = model
		case spinner.TickMsg:
			// Dropped: re-arming the spinner would spin this loop forever.
		}
	}
	return m, seen
}

func TestRunModel_ReportsPerRowProgress(t *testing.T) {
	m := NewRunModel(testConfig(t,
		catalogRow("7", "B-1001"),
		catalogRow("7", "B-1002"),
	))

	m, seen := drive(t, m, m.start(nil))

	require.Len(t, seen, 2)
	assert.Equal(t, batch.Progress{Code: "B-1001", Done: 1, Total: 2}, seen[0])
	assert.Equal(t, batch.Progress{Code: "B-1002", Done: 2, Total: 2}, seen[1])

	assert.False(t, m.running)
	assert.NoError(t, m.err)
	assert.Equal(t, 2, m.summary.Exported)
}

func TestRunModel_RunningViewShowsCount(t *testing.T) {
	m := NewRunModel(testConfig(t, catalogRow("7", "B-1001")))
	m.start(nil)

	model, _ := m.Update(batchProgressMsg{Code: "B-1001", Done: 1, Total: 3})
	m = model

	view := m.ViewRunning()
	assert.True(t, strings.Contains(view, "1 of 3"))
	assert.True(t, strings.Contains(view, "B-1001"))
}
