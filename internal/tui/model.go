package tui

import (
	"fmt"
	"log/slog"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/batch"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/render"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Config carries everything the interactive session needs; the TUI never
// reads flags or the environment itself.
type Config struct {
	Source       catalog.Source
	TemplatePath string
	OutputDir    string
	DecimalComma bool
	Logger       *slog.Logger
	LogPath      string
	NewEngine    func() (render.Engine, error)
	ImageExt     string
}

type Screen int

const (
	MenuScreen Screen = iota
	SelectScreen
	RunningScreen
	ResultScreen
)

type Model struct {
	cfg           Config
	currentScreen Screen
	menuModel     *MenuModel
	selectModel   *SelectModel
	runModel      *RunModel
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(cfg Config) Model {
	return Model{
		cfg:           cfg,
		currentScreen: MenuScreen,
		menuModel:     NewMenuModel(),
		selectModel:   NewSelectModel(cfg),
		runModel:      NewRunModel(cfg),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menuModel.SetSize(msg.Width, msg.Height)
		m.selectModel.SetSize(msg.Width, msg.Height)
		m.runModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			// The batch cannot be interrupted once started.
			if m.currentScreen != RunningScreen {
				m.quitting = true
				return m, tea.Quit
			}
		case "esc":
			if m.currentScreen == SelectScreen || m.currentScreen == ResultScreen {
				m.currentScreen = MenuScreen
				return m, nil
			}
		}

	case ScreenChangeMsg:
		m.currentScreen = msg.Screen
		if msg.Screen == SelectScreen {
			return m, m.selectModel.loadProducts()
		}
		return m, nil

	case StartBatchMsg:
		m.currentScreen = RunningScreen
		return m, m.runModel.start(msg.Codes)

	case BatchCompleteMsg:
		m.currentScreen = ResultScreen
		newRun, cmd := m.runModel.Update(msg)
		m.runModel = newRun
		return m, cmd

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentScreen {
	case MenuScreen:
		newMenu, cmd := m.menuModel.Update(msg)
		m.menuModel = newMenu.(*MenuModel)
		return m, cmd
	case SelectScreen:
		newSelect, cmd := m.selectModel.Update(msg)
		m.selectModel = newSelect.(*SelectModel)
		return m, cmd
	case RunningScreen, ResultScreen:
		newRun, cmd := m.runModel.Update(msg)
		m.runModel = newRun
		return m, cmd
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var content string
	switch m.currentScreen {
	case MenuScreen:
		content = m.menuModel.View()
	case SelectScreen:
		content = m.selectModel.View()
	case RunningScreen:
		content = m.runModel.ViewRunning()
	case ResultScreen:
		content = m.runModel.ViewResult()
	}

	if m.err != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Margin(1, 0)
		content += errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	return content
}

type ScreenChangeMsg struct {
	Screen Screen
}

// StartBatchMsg kicks off a run; nil Codes means export everything.
type StartBatchMsg struct {
	Codes []string
}

type BatchCompleteMsg struct {
	Summary batch.Summary
	Err     error
}

type ErrorMsg struct {
	Err error
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
