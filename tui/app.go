package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/getset-tui/api"
	"github.com/getset-tui/inbox"
	"github.com/getset-tui/models"
)

type view int

const (
	viewBrowse view = iota
	viewSaved
	viewEnquiries
	viewMessages
	viewMine
)

type focusRegion int

const (
	focusThreads focusRegion = iota
	focusCompose
)

// Message types for Bubble Tea
type (
	pollerStartedMsg    struct{}
	snapshotMsg         inbox.Snapshot
	propertiesLoadedMsg []models.Property
	favoritesLoadedMsg  []models.Property
	myListingsLoadedMsg []models.Property
	enquiriesLoadedMsg  []models.Enquiry
	unreadCountMsg      int
	sendOKMsg           struct{}
	sendFailedMsg       error
	favoriteToggledMsg  struct {
		propertyID string
		favorite   bool
	}
	enquiryStartedMsg struct{}
	enquiryStatusMsg  struct {
		id     string
		status string
	}
	errMsg error
)

type AppModel struct {
	// Sub-components
	threadList ThreadListModel
	convo      ConversationModel
	input      InputModel
	browse     PropertyListModel
	saved      PropertyListModel
	mine       PropertyListModel
	enquiries  EnquiryListModel

	// State
	view         view
	focused      focusRegion
	snapshot     inbox.Snapshot
	activeThread string
	unread       int
	status       string
	err          error

	// Collaborators
	identity  models.Identity
	apiClient *api.Client
	poller    *inbox.Poller

	// Terminal dimensions
	width  int
	height int
}

func NewAppModel(client *api.Client, poller *inbox.Poller, identity models.Identity) AppModel {
	return AppModel{
		threadList: NewThreadListModel(),
		convo:      NewConversationModel(identity),
		input:      NewInputModel(),
		browse:     NewPropertyListModel("BROWSE"),
		saved:      NewPropertyListModel("SAVED"),
		mine:       NewPropertyListModel("MY LISTINGS"),
		enquiries:  NewEnquiryListModel(),
		view:       viewBrowse,
		focused:    focusThreads,
		identity:   identity,
		apiClient:  client,
		poller:     poller,
		width:      80,
		height:     24,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		startPollerCmd(m.poller),
		loadPropertiesCmd(m.apiClient),
		loadFavoritesCmd(m.apiClient),
		loadEnquiriesCmd(m.apiClient, m.identity),
		loadUnreadCountCmd(m.apiClient),
	}
	if m.identity.IsOwner() {
		cmds = append(cmds, loadMyListingsCmd(m.apiClient))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case pollerStartedMsg:
		return m, waitForSnapshotCmd(m.poller)

	case snapshotMsg:
		snap := inbox.Snapshot(msg)
		// Older cycles never overwrite newer ones.
		if snap.Seq > m.snapshot.Seq {
			m.applySnapshot(snap)
		}
		return m, waitForSnapshotCmd(m.poller)

	case propertiesLoadedMsg:
		m.browse.SetItems([]models.Property(msg))
		return m, nil

	case favoritesLoadedMsg:
		props := []models.Property(msg)
		m.saved.SetItems(props)
		m.saved.SetFavorites(props)
		m.browse.SetFavorites(props)
		return m, nil

	case myListingsLoadedMsg:
		m.mine.SetItems([]models.Property(msg))
		return m, nil

	case enquiriesLoadedMsg:
		m.enquiries.SetItems([]models.Enquiry(msg))
		return m, nil

	case unreadCountMsg:
		m.unread = int(msg)
		return m, nil

	case sendOKMsg:
		// Only a successful send clears the compose buffer.
		m.input.Clear()
		m.status = "Sent."
		m.poller.RefreshNow()
		return m, loadUnreadCountCmd(m.apiClient)

	case sendFailedMsg:
		// Keep the typed text so the user can retry.
		m.status = ErrorStyle.Render(fmt.Sprintf("Send failed: %v", error(msg)))
		return m, nil

	case favoriteToggledMsg:
		m.browse.ToggleFavorite(msg.propertyID, msg.favorite)
		m.saved.ToggleFavorite(msg.propertyID, msg.favorite)
		return m, loadFavoritesCmd(m.apiClient)

	case enquiryStartedMsg:
		m.status = "Enquiry sent. Check Messages."
		m.poller.RefreshNow()
		return m, nil

	case enquiryStatusMsg:
		m.enquiries.SetStatus(msg.id, msg.status)
		m.status = fmt.Sprintf("Enquiry %s.", msg.status)
		return m, nil

	case errMsg:
		m.err = msg
		m.status = ErrorStyle.Render(error(msg).Error())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.delegate(msg)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	composing := m.view == viewMessages && m.input.Focused()

	if !composing {
		switch key {
		case "q":
			return m, tea.Quit
		case "1":
			m.view = viewBrowse
			return m, nil
		case "2":
			m.view = viewSaved
			return m, nil
		case "3":
			m.view = viewEnquiries
			return m, loadEnquiriesCmd(m.apiClient, m.identity)
		case "4":
			m.view = viewMessages
			return m, nil
		case "5":
			if m.identity.IsOwner() {
				m.view = viewMine
				return m, loadMyListingsCmd(m.apiClient)
			}
		case "r":
			cmds := []tea.Cmd{
				loadPropertiesCmd(m.apiClient),
				loadFavoritesCmd(m.apiClient),
				loadUnreadCountCmd(m.apiClient),
			}
			if m.identity.IsOwner() {
				cmds = append(cmds, loadMyListingsCmd(m.apiClient))
			}
			return m, tea.Batch(cmds...)
		}
	}

	switch m.view {
	case viewBrowse, viewSaved:
		return m.handleListingKey(msg)
	case viewEnquiries:
		return m.handleEnquiryKey(msg)
	case viewMessages:
		return m.handleMessagesKey(msg)
	case viewMine:
		return m.delegate(msg)
	}
	return m, nil
}

func (m AppModel) handleListingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := &m.browse
	if m.view == viewSaved {
		active = &m.saved
	}

	switch msg.String() {
	case "f":
		if prop := active.SelectedItem(); prop != nil {
			return m, toggleFavoriteCmd(m.apiClient, prop.ID, !active.IsFavorite(prop.ID))
		}
		return m, nil
	case "e":
		if prop := active.SelectedItem(); prop != nil {
			return m, startEnquiryCmd(m.apiClient, *prop)
		}
		return m, nil
	}

	return m.delegate(msg)
}

func (m AppModel) handleEnquiryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.identity.IsOwner() {
		if enq := m.enquiries.SelectedItem(); enq != nil {
			switch msg.String() {
			case "a":
				return m, updateEnquiryCmd(m.apiClient, enq.ID, models.EnquiryAccepted)
			case "d":
				return m, updateEnquiryCmd(m.apiClient, enq.ID, models.EnquiryDeclined)
			}
		}
	}
	return m.delegate(msg)
}

func (m AppModel) handleMessagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.focused == focusThreads {
			m.focused = focusCompose
			return m, m.input.Focus()
		}
		m.input.Blur()
		m.focused = focusThreads
		return m, nil

	case "esc":
		if m.focused == focusCompose {
			m.input.Blur()
			m.focused = focusThreads
		}
		return m, nil

	case "enter":
		if m.focused == focusThreads {
			if key := m.threadList.SelectedKey(); key != "" {
				m.setActiveThread(key)
				m.focused = focusCompose
				return m, m.input.Focus()
			}
			return m, nil
		}
		return m.sendReply()
	}

	return m.delegate(msg)
}

// sendReply builds and submits a reply in the active thread. Empty input
// and a missing thread are silent no-ops; the buffer survives failures.
func (m AppModel) sendReply() (tea.Model, tea.Cmd) {
	out, err := inbox.BuildReply(m.snapshot.Threads, m.activeThread, m.input.GetText(), m.identity.ID)
	switch err {
	case nil:
	case inbox.ErrEmptyContent, inbox.ErrNoThread:
		return m, nil
	default:
		m.status = ErrorStyle.Render(err.Error())
		return m, nil
	}
	return m, sendReplyCmd(m.apiClient, out)
}

func (m *AppModel) applySnapshot(snap inbox.Snapshot) {
	m.snapshot = snap
	m.threadList.SetThreads(snap.Threads, m.identity)

	// Auto-select the first thread when nothing is selected yet.
	if m.activeThread == "" && snap.Threads.Len() > 0 {
		m.activeThread = snap.Threads.Keys()[0]
	}
	if m.activeThread != "" {
		m.convo.SetThread(threadTitle(m.activeThread), snap.Threads.Messages(m.activeThread))
	}
}

func (m *AppModel) setActiveThread(key string) {
	m.activeThread = key
	m.convo.SetThread(threadTitle(key), m.snapshot.Threads.Messages(key))
}

// delegate routes remaining messages to the focused component.
func (m AppModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.view {
	case viewBrowse:
		m.browse, cmd = m.browse.Update(msg)
	case viewSaved:
		m.saved, cmd = m.saved.Update(msg)
	case viewMine:
		m.mine, cmd = m.mine.Update(msg)
	case viewEnquiries:
		m.enquiries, cmd = m.enquiries.Update(msg)
	case viewMessages:
		if m.focused == focusCompose {
			m.input, cmd = m.input.Update(msg)
		} else {
			var listCmd tea.Cmd
			m.threadList, listCmd = m.threadList.Update(msg)
			if key := m.threadList.SelectedKey(); key != "" && key != m.activeThread {
				m.setActiveThread(key)
			}
			cmd = listCmd
		}
	}

	return m, cmd
}

func (m *AppModel) updateLayout() {
	contentHeight := m.height - 2 // tab bar + status bar

	m.browse.SetSize(m.width-4, contentHeight-2)
	m.saved.SetSize(m.width-4, contentHeight-2)
	m.mine.SetSize(m.width-4, contentHeight-2)
	m.enquiries.SetSize(m.width-4, contentHeight-2)

	m.threadList.SetSize(ThreadListWidth, contentHeight-2)
	convoWidth := m.width - ThreadListWidth - 6
	m.convo.SetSize(convoWidth, contentHeight-InputHeight-3)
	m.input.SetSize(convoWidth)
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	contentHeight := m.height - 2

	var content string
	switch m.view {
	case viewBrowse:
		content = PanelStyle.Width(m.width - 2).Height(contentHeight).Render(m.browse.View())
	case viewSaved:
		content = PanelStyle.Width(m.width - 2).Height(contentHeight).Render(m.saved.View())
	case viewEnquiries:
		content = PanelStyle.Width(m.width - 2).Height(contentHeight).Render(m.enquiries.View())
	case viewMessages:
		content = m.messagesView(contentHeight)
	case viewMine:
		content = PanelStyle.Width(m.width - 2).Height(contentHeight).Render(m.mine.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.tabBar(), content, m.statusBar())
}

func (m AppModel) messagesView(contentHeight int) string {
	threadStyle := PanelStyle
	if m.focused == focusThreads {
		threadStyle = ActivePanelStyle
	}
	threadPanel := threadStyle.
		Width(ThreadListWidth).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(m.threadList.View())

	composeStyle := PanelStyle
	if m.focused == focusCompose {
		composeStyle = ActivePanelStyle
	}

	convoWidth := m.width - ThreadListWidth - 4
	right := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.NewStyle().
			Height(contentHeight-InputHeight-2).
			MaxHeight(contentHeight-InputHeight-2).
			Render(m.convo.View()),
		composeStyle.Width(convoWidth-2).Render(m.input.View()),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, threadPanel, right)
}

func (m AppModel) tabBar() string {
	labels := []string{"1 Browse", "2 Saved", "3 Enquiries", "4 Messages"}
	if m.unread > 0 {
		labels[3] = fmt.Sprintf("4 Messages (%d)", m.unread)
	}
	if m.identity.IsOwner() {
		labels = append(labels, "5 My Listings")
	}

	var tabs []string
	for i, label := range labels {
		style := TabStyle
		if view(i) == m.view {
			style = ActiveTabStyle
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m AppModel) statusBar() string {
	left := fmt.Sprintf("%s (%s)", m.identity.Name, m.identity.Role)
	if m.status != "" {
		left += "  " + m.status
	}
	return StatusBarStyle.Width(m.width).Render(left)
}

// Command constructors

func startPollerCmd(poller *inbox.Poller) tea.Cmd {
	return func() tea.Msg {
		if err := poller.Start(context.Background()); err != nil {
			return errMsg(err)
		}
		return pollerStartedMsg{}
	}
}

func waitForSnapshotCmd(poller *inbox.Poller) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-poller.Updates())
	}
}

func loadPropertiesCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		props, err := client.Properties(context.Background())
		if err != nil {
			return errMsg(fmt.Errorf("failed to load properties: %v", err))
		}
		return propertiesLoadedMsg(props)
	}
}

func loadMyListingsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		props, err := client.MyProperties(context.Background())
		if err != nil {
			return errMsg(fmt.Errorf("failed to load listings: %v", err))
		}
		return myListingsLoadedMsg(props)
	}
}

func loadFavoritesCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		props, err := client.Favorites(context.Background())
		if err != nil {
			return errMsg(fmt.Errorf("failed to load favorites: %v", err))
		}
		return favoritesLoadedMsg(props)
	}
}

func loadEnquiriesCmd(client *api.Client, identity models.Identity) tea.Cmd {
	return func() tea.Msg {
		enquiries, err := client.Enquiries(context.Background(), identity)
		if err != nil {
			return errMsg(fmt.Errorf("failed to load enquiries: %v", err))
		}
		return enquiriesLoadedMsg(enquiries)
	}
}

func loadUnreadCountCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		count, err := client.UnreadCount(context.Background())
		if err != nil {
			// the badge is cosmetic; do not surface fetch errors
			return unreadCountMsg(0)
		}
		return unreadCountMsg(count)
	}
}

func sendReplyCmd(client *api.Client, out models.Outgoing) tea.Cmd {
	return func() tea.Msg {
		if err := client.SendMessage(context.Background(), out); err != nil {
			return sendFailedMsg(err)
		}
		return sendOKMsg{}
	}
}

func toggleFavoriteCmd(client *api.Client, propertyID string, favorite bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if favorite {
			err = client.AddFavorite(context.Background(), propertyID)
		} else {
			err = client.RemoveFavorite(context.Background(), propertyID)
		}
		if err != nil {
			return errMsg(err)
		}
		return favoriteToggledMsg{propertyID: propertyID, favorite: favorite}
	}
}

func startEnquiryCmd(client *api.Client, prop models.Property) tea.Cmd {
	return func() tea.Msg {
		out, err := inbox.NewEnquiry(prop, fmt.Sprintf("Hi, I'm interested in your property in %s!", prop.Place()))
		if err != nil {
			return errMsg(err)
		}
		if err := client.SendMessage(context.Background(), out); err != nil {
			return errMsg(fmt.Errorf("failed to start enquiry: %v", err))
		}
		return enquiryStartedMsg{}
	}
}

func updateEnquiryCmd(client *api.Client, id, status string) tea.Cmd {
	return func() tea.Msg {
		if err := client.UpdateEnquiryStatus(context.Background(), id, status); err != nil {
			return errMsg(err)
		}
		return enquiryStatusMsg{id: id, status: status}
	}
}
