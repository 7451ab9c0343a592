package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/getset-tui/models"
)

// EnquiryListModel lists rental enquiries; owners can act on them.
type EnquiryListModel struct {
	items  []models.Enquiry
	cursor int
	offset int
	width  int
	height int
}

func NewEnquiryListModel() EnquiryListModel {
	return EnquiryListModel{}
}

func (m *EnquiryListModel) SetItems(enquiries []models.Enquiry) {
	m.items = enquiries
	if m.cursor >= len(enquiries) {
		m.cursor = 0
		m.offset = 0
	}
}

func (m *EnquiryListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *EnquiryListModel) SelectedItem() *models.Enquiry {
	if m.cursor >= 0 && m.cursor < len(m.items) {
		return &m.items[m.cursor]
	}
	return nil
}

// SetStatus updates the local copy after a successful status change.
func (m *EnquiryListModel) SetStatus(id, status string) {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Status = status
			return
		}
	}
}

func (m EnquiryListModel) Update(msg tea.Msg) (EnquiryListModel, tea.Cmd) {
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
		}
	}
	return m, nil
}

func (m EnquiryListModel) View() string {
	if len(m.items) == 0 {
		return "ENQUIRIES\n\n  No enquiries."
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("ENQUIRIES"))
	b.WriteString("\n")

	visible := m.height - 1
	end := min(m.offset+visible, len(m.items))

	for i := m.offset; i < end; i++ {
		enq := m.items[i]

		status := enq.Status
		if status == "" {
			status = models.EnquiryPending
		}

		text := strings.ReplaceAll(enq.Message, "\n", " ")
		line := fmt.Sprintf("[%s] %s — %s", status, threadTitle(enq.PropertyID), text)
		line = truncate(line, m.width-4)

		if i == m.cursor {
			line = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(ColorPrimary).
				Render(" " + line)
		} else {
			line = " " + line
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
