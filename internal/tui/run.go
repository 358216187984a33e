package tui

import (
	"context"
	"fmt"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/batch"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunModel drives one batch run and shows its outcome.
type RunModel struct {
	cfg        Config
	spinner    spinner.Model
	running    bool
	summary    batch.Summary
	progress   batch.Progress
	progressCh chan batch.Progress
	err        error
	width      int
	height     int
}

// batchProgressMsg carries one per-row progress snapshot into the UI loop.
type batchProgressMsg batch.Progress

func NewRunModel(cfg Config) *RunModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &RunModel{cfg: cfg, spinner: sp}
}

func (m *RunModel) Init() tea.Cmd {
	return nil
}

func (m *RunModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// start launches the batch on a worker goroutine. The run is not
// cancellable: once started it finishes or aborts on its own.
func (m *RunModel) start(codes []string) tea.Cmd {
	m.running = true
	m.err = nil
	m.summary = batch.Summary{}
	m.progress = batch.Progress{}
	ch := make(chan batch.Progress, 64)
	m.progressCh = ch
	cfg := m.cfg
	run := func() tea.Msg {
		runner := &batch.Runner{
			Logger:    cfg.Logger,
			NewEngine: cfg.NewEngine,
			ImageExt:  cfg.ImageExt,
		}
		summary, err := runner.Run(context.Background(), batch.Request{
			Source:       cfg.Source,
			TemplatePath: cfg.TemplatePath,
			OutputDir:    cfg.OutputDir,
			Codes:        codes,
			DecimalComma: cfg.DecimalComma,
			Progress: func(p batch.Progress) {
				// The batch must never stall on a slow UI.
				select {
				case ch <- p:
				default:
				}
			},
		})
		close(ch)
		return BatchCompleteMsg{Summary: summary, Err: err}
	}
	return tea.Batch(m.spinner.Tick, run, waitForProgress(ch))
}

// waitForProgress delivers the next snapshot; it re-arms itself from Update
// until the batch closes the channel.
func waitForProgress(ch chan batch.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return batchProgressMsg(p)
	}
}

func (m *RunModel) Update(msg tea.Msg) (*RunModel, tea.Cmd) {
	switch msg := msg.(type) {
	case BatchCompleteMsg:
		m.running = false
		m.summary = msg.Summary
		m.err = msg.Err
		m.progressCh = nil
		return m, nil
	case batchProgressMsg:
		m.progress = batch.Progress(msg)
		if m.progressCh != nil {
			return m, waitForProgress(m.progressCh)
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *RunModel) ViewRunning() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("🖼️  Exporting Illustrations...")
	status := "Rendering slides through the export engine"
	if m.progress.Total > 0 {
		status = fmt.Sprintf("Exporting %s (%d of %d)",
			m.progress.Code, m.progress.Done, m.progress.Total)
	}
	body := progressStyle.Render(m.spinner.View() + " " + status)
	help := adaptiveHelpStyle.Render("The batch cannot be interrupted; please wait for it to finish.")

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, help)
	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			content,
		)
	}
	return content
}

func (m *RunModel) ViewResult() string {
	title := titleStyle.Render("🖼️  Export Complete")

	var status string
	switch {
	case m.err != nil:
		status = errorStyle.Render(fmt.Sprintf("❌ Batch aborted: %v", m.err))
	case m.summary.Exported == 0:
		status = warningStyle.Render("⚠️  Nothing to export")
	default:
		status = successStyle.Render("✅ Batch completed!")
	}

	stats := fmt.Sprintf(
		"📊 Batch summary:\n"+
			"   Rows in scope: %d\n"+
			"   Images exported: %d\n"+
			"   Rows skipped: %d\n"+
			"   Models without a slide: %d\n"+
			"   Output: %s\n"+
			"   Log: %s",
		m.summary.TotalRows,
		m.summary.Exported,
		m.summary.SkippedRows,
		m.summary.SkippedGroups,
		m.summary.OutputDir,
		m.cfg.LogPath,
	)

	help := helpStyle.Render("Esc: Back to menu • q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, status, stats, help)
}
