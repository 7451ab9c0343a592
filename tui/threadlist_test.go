package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/getset-tui/inbox"
	"github.com/getset-tui/models"
)

func TestTruncateKeepsMultibyteRunesWhole(t *testing.T) {
	s := strings.Repeat("ü", 20)

	got := truncate(s, 10)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, 10, len([]rune(got)))
	require.Equal(t, strings.Repeat("ü", 9)+"…", got)
}

func TestTruncateLeavesShortStringsAlone(t *testing.T) {
	require.Equal(t, "héllo", truncate("héllo", 5))
	require.Equal(t, "héllo", truncate("héllo", 80))
	require.Equal(t, "héllo", truncate("héllo", 1))
	require.Equal(t, "", truncate("", 10))
}

func TestPreviewLineMarksOwnMessages(t *testing.T) {
	me := models.Identity{ID: "me"}
	threads := inbox.Group([]models.Message{
		{ID: "m1", SenderID: "me", RecipientID: "them", PropertyID: "p1", Content: "first\nsecond", CreatedAt: "2026-01-02T10:00:00"},
		{ID: "m2", SenderID: "them", RecipientID: "me", PropertyID: "p2", Content: "hello", CreatedAt: "2026-01-02T11:00:00"},
	})

	require.Equal(t, "You: first second", previewLine(threads, "p1", me))
	require.Equal(t, "hello", previewLine(threads, "p2", me))
	require.Equal(t, "", previewLine(threads, "missing", me))
}
