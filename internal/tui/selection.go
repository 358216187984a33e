package tui

import (
	"fmt"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// productItem is one checklist entry.
type productItem struct {
	Code    string
	Model   string
	Checked bool
}

type ProductsLoadedMsg struct {
	Items []productItem
	Err   error
}

// SelectModel is the product checklist screen for partial batch runs.
type SelectModel struct {
	cfg     Config
	items   []productItem
	cursor  int
	loading bool
	loadErr error
	width   int
	height  int
}

func NewSelectModel(cfg Config) *SelectModel {
	return &SelectModel{cfg: cfg}
}

func (m *SelectModel) Init() tea.Cmd {
	return nil
}

func (m *SelectModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadProducts reads the catalog off the UI goroutine and fills the list
// with every exportable row.
func (m *SelectModel) loadProducts() tea.Cmd {
	m.loading = true
	m.loadErr = nil
	m.items = nil
	m.cursor = 0
	cfg := m.cfg
	return func() tea.Msg {
		table, err := cfg.Source.Load()
		if err != nil {
			return ProductsLoadedMsg{Err: err}
		}
		groups, _, err := catalog.ValidateAndGroup(table, catalog.RequiredColumns(), nil, cfg.DecimalComma)
		if err != nil {
			return ProductsLoadedMsg{Err: err}
		}
		var items []productItem
		for _, g := range groups {
			for _, row := range g.Rows {
				items = append(items, productItem{Code: row.Code, Model: row.Model})
			}
		}
		return ProductsLoadedMsg{Items: items}
	}
}

func (m *SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProductsLoadedMsg:
		m.loading = false
		m.loadErr = msg.Err
		m.items = msg.Items
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if len(m.items) > 0 {
				m.items[m.cursor].Checked = !m.items[m.cursor].Checked
			}
		case "a":
			for i := range m.items {
				m.items[i].Checked = true
			}
		case "n":
			for i := range m.items {
				m.items[i].Checked = false
			}
		case "enter":
			codes := m.checkedCodes()
			if len(codes) == 0 {
				return m, ShowError(fmt.Errorf("no products selected"))
			}
			return m, func() tea.Msg { return StartBatchMsg{Codes: codes} }
		}
	}
	return m, nil
}

func (m *SelectModel) checkedCodes() []string {
	var codes []string
	for _, item := range m.items {
		if item.Checked {
			codes = append(codes, item.Code)
		}
	}
	return codes
}

func (m *SelectModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("☑️  Select Products")

	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, title, "Loading catalog...")
	}
	if m.loadErr != nil {
		body := errorStyle.Render(fmt.Sprintf("Failed to load catalog: %v", m.loadErr))
		help := adaptiveHelpStyle.Render("Esc: Back to menu")
		return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
	}
	if len(m.items) == 0 {
		body := warningStyle.Render("The catalog has no exportable rows")
		help := adaptiveHelpStyle.Render("Esc: Back to menu")
		return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
	}

	// Keep the cursor visible on tall catalogs.
	visible := m.height - 8
	if visible < 5 {
		visible = 5
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.items) {
		end = len(m.items)
	}

	var list string
	for i := start; i < end; i++ {
		item := m.items[i]
		cursor := " "
		check := "[ ]"
		if item.Checked {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s (model %s)", check, item.Code, item.Model)
		if i == m.cursor {
			cursor = ">"
			line = selectedMenuItemStyle.Render(line)
		} else {
			line = menuItemStyle.Render(line)
		}
		list += fmt.Sprintf("%s %s\n", cursor, line)
	}

	count := fmt.Sprintf("%d of %d selected", len(m.checkedCodes()), len(m.items))
	help := adaptiveHelpStyle.Render("Space: Toggle • a: All • n: None • Enter: Export selection • Esc: Back")

	return lipgloss.JoinVertical(lipgloss.Left, title, list, count, help)
}
