package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/getset-tui/models"
)

// ConversationModel renders the active thread's messages.
type ConversationModel struct {
	viewport viewport.Model
	messages []models.Message
	title    string
	identity models.Identity
	width    int
	height   int
}

func NewConversationModel(identity models.Identity) ConversationModel {
	vp := viewport.New(60, 15)
	vp.MouseWheelEnabled = true

	return ConversationModel{
		viewport: vp,
		identity: identity,
	}
}

func (m *ConversationModel) SetThread(title string, messages []models.Message) {
	m.title = title
	m.messages = messages
	m.renderContent()
}

func (m *ConversationModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	// Reserve 1 line for the thread title header
	m.viewport.Height = height - 1
	m.renderContent()
}

func (m *ConversationModel) renderContent() {
	if len(m.messages) == 0 {
		m.viewport.SetContent("(No messages yet)")
		return
	}

	var sb strings.Builder

	for _, msg := range m.messages {
		timeStr := msg.ResolvedTime().Format("Jan 2 15:04")

		sender := shortID(msg.SenderID)
		mine := msg.IsMine(m.identity.ID)
		if mine {
			sender = "You"
		}

		style := TheirMessageStyle
		if mine {
			style = MyMessageStyle
		}
		style = style.Width(m.width)

		for i, line := range strings.Split(msg.Content, "\n") {
			if i == 0 {
				sb.WriteString(style.Render(fmt.Sprintf("[%s] %s: %s", timeStr, sender, line)))
			} else {
				sb.WriteString("\n")
				sb.WriteString(style.Render(line))
			}
		}
		sb.WriteString("\n")
	}

	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "Unknown"
	}
	return id
}

func (m ConversationModel) Update(msg tea.Msg) (ConversationModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ConversationModel) View() string {
	header := ""
	if m.title != "" {
		header = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Render(m.title) + "\n"
	}

	return header + m.viewport.View()
}
