package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/getset-tui/inbox"
	"github.com/getset-tui/models"
)

type threadItem struct {
	key     string
	preview string
	unread  bool
}

func (t threadItem) FilterValue() string { return t.key }

func (t threadItem) Title() string {
	name := threadTitle(t.key)
	if t.unread {
		return lipgloss.NewStyle().Foreground(ColorUnread).Render("● ") + name
	}
	return name
}

// threadTitle renders a thread key for display. Property-backed threads
// show a shortened listing id; the rest is the general bucket.
func threadTitle(key string) string {
	if key == "" || key == inbox.GeneralKey {
		return "General"
	}
	short := key
	if len(short) > 8 {
		short = short[:8]
	}
	return "Property #" + short
}

// threadDelegate is a compact two-line list delegate.
type threadDelegate struct{}

func (d threadDelegate) Height() int                             { return 2 }
func (d threadDelegate) Spacing() int                            { return 0 }
func (d threadDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d threadDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	t, ok := item.(threadItem)
	if !ok {
		return
	}

	title := t.Title()
	preview := t.preview
	width := m.Width()
	if width > 3 {
		preview = truncate(preview, width-2)
	}
	preview = lipgloss.NewStyle().Foreground(ColorAccent).Render(preview)

	if index == m.Index() {
		title = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(ColorPrimary).
			Width(width).
			Render(title)
	}

	fmt.Fprintf(w, "%s\n %s", title, preview)
}

type ThreadListModel struct {
	list   list.Model
	keys   []string
	width  int
	height int
}

func NewThreadListModel() ThreadListModel {
	l := list.New([]list.Item{}, threadDelegate{}, ThreadListWidth, 10)
	l.Title = "CONVERSATIONS"
	l.SetShowStatusBar(false)
	l.SetShowFilter(false)
	l.SetShowPagination(true)

	return ThreadListModel{
		list: l,
	}
}

// SetThreads rebuilds the sidebar from the latest snapshot. The cursor
// stays on the same thread key across refreshes when possible.
func (m *ThreadListModel) SetThreads(threads inbox.Threads, identity models.Identity) {
	selected := m.SelectedKey()

	m.keys = threads.Keys()
	items := make([]list.Item, 0, len(m.keys))
	for _, key := range m.keys {
		items = append(items, threadItem{
			key:     key,
			preview: previewLine(threads, key, identity),
			unread:  threads.HasUnread(key, identity.ID),
		})
	}
	m.list.SetItems(items)

	for i, key := range m.keys {
		if key == selected {
			m.list.Select(i)
			return
		}
	}
	m.list.Select(0)
}

func previewLine(threads inbox.Threads, key string, identity models.Identity) string {
	last, ok := threads.Last(key)
	if !ok {
		return ""
	}
	text := strings.ReplaceAll(last.Content, "\n", " ")
	if last.IsMine(identity.ID) {
		return "You: " + text
	}
	return text
}

func (m *ThreadListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}

// SelectedKey returns the thread key under the cursor, or "".
func (m *ThreadListModel) SelectedKey() string {
	idx := m.list.Index()
	if idx < 0 || idx >= len(m.keys) {
		return ""
	}
	return m.keys[idx]
}

func (m ThreadListModel) Update(msg tea.Msg) (ThreadListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m ThreadListModel) View() string {
	return m.list.View()
}
