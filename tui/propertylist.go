package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/getset-tui/models"
)

// PropertyListModel is a simple scrollable listing browser, shared by the
// browse and saved views.
type PropertyListModel struct {
	title         string
	items         []models.Property
	favorites     map[string]bool
	cursor        int
	offset        int
	width         int
	height        int
	selectedStyle lipgloss.Style
	normalStyle   lipgloss.Style
	favStyle      lipgloss.Style
}

func NewPropertyListModel(title string) PropertyListModel {
	return PropertyListModel{
		title:     title,
		favorites: make(map[string]bool),
		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(ColorPrimary),
		normalStyle: lipgloss.NewStyle(),
		favStyle:    lipgloss.NewStyle().Foreground(ColorUnread),
	}
}

func (m *PropertyListModel) SetItems(props []models.Property) {
	m.items = props
	if m.cursor >= len(props) {
		m.cursor = 0
		m.offset = 0
	}
}

// SetFavorites replaces the known favorite ids used for the ♥ marker.
func (m *PropertyListModel) SetFavorites(props []models.Property) {
	m.favorites = make(map[string]bool, len(props))
	for _, p := range props {
		m.favorites[p.ID] = true
	}
}

// ToggleFavorite flips the local marker; the API call happens elsewhere.
func (m *PropertyListModel) ToggleFavorite(propertyID string, fav bool) {
	m.favorites[propertyID] = fav
}

func (m *PropertyListModel) IsFavorite(propertyID string) bool {
	return m.favorites[propertyID]
}

func (m *PropertyListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *PropertyListModel) SelectedItem() *models.Property {
	if m.cursor >= 0 && m.cursor < len(m.items) {
		return &m.items[m.cursor]
	}
	return nil
}

func (m PropertyListModel) Update(msg tea.Msg) (PropertyListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
				visible := m.height - 1
				if m.cursor >= m.offset+visible {
					m.offset = m.cursor - visible + 1
				}
			}
		case "g":
			m.cursor = 0
			m.offset = 0
		case "G":
			m.cursor = len(m.items) - 1
			visible := m.height - 1
			m.offset = max(0, len(m.items)-visible)
		}
	}
	return m, nil
}

func (m PropertyListModel) View() string {
	if len(m.items) == 0 {
		return m.title + "\n\n  No listings."
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.title))
	b.WriteString("\n")

	visible := m.height - 1
	end := min(m.offset+visible, len(m.items))

	for i := m.offset; i < end; i++ {
		prop := m.items[i]

		line := fmt.Sprintf("%s — $%.0f/mo — %s", prop.Title, prop.PricePerMonth, prop.Place())
		line = truncate(line, m.width-4)

		marker := "  "
		if m.favorites[prop.ID] {
			marker = m.favStyle.Render("♥ ")
		}

		if i == m.cursor {
			line = m.selectedStyle.Render(" " + line)
		} else {
			line = m.normalStyle.Render(" " + line)
		}

		b.WriteString(marker)
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// truncate shortens s to at most width runes, ending in an ellipsis.
// Slicing runes rather than bytes keeps multi-byte characters intact.
func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 1 || len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
