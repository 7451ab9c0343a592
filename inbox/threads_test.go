package inbox

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getset-tui/models"
)

func TestGroupSingleThreadScenario(t *testing.T) {
	received := []models.Message{
		msg("a", "2024-01-01T10:00:00Z", "u1", "me", "p1", "Hi"),
	}
	sent := []models.Message{
		msg("b", "2024-01-01T10:05:00Z", "me", "u1", "p1", "Hello back"),
	}

	all := Deduplicate(append(received, sent...))
	SortByTime(all)
	threads := Group(all)

	require.Equal(t, []string{"p1"}, threads.Keys())
	msgs := threads.Messages("p1")
	require.Len(t, msgs, 2)
	require.Equal(t, "a", msgs[0].ID)
	require.Equal(t, "b", msgs[1].ID)
}

func TestGroupGeneralThread(t *testing.T) {
	all := []models.Message{
		msg("a", "2024-01-01T10:00:00Z", "u1", "me", "", "no property"),
		msg("b", "2024-01-01T11:00:00Z", "u1", "me", "p1", "about p1"),
	}
	threads := Group(all)

	require.Equal(t, []string{GeneralKey, "p1"}, threads.Keys())
	require.Equal(t, 2, threads.Len())
}

func TestGroupPreservesChronologyPerThread(t *testing.T) {
	all := []models.Message{
		msg("1", "2024-01-01T09:00:00Z", "u1", "me", "p1", "one"),
		msg("2", "2024-01-01T09:30:00Z", "u2", "me", "p2", "two"),
		msg("3", "2024-01-01T10:00:00Z", "me", "u1", "p1", "three"),
		msg("4", "2024-01-01T10:30:00Z", "me", "u2", "p2", "four"),
	}
	SortByTime(all)
	threads := Group(all)

	for _, key := range threads.Keys() {
		msgs := threads.Messages(key)
		for i := 1; i < len(msgs); i++ {
			require.False(t, msgs[i].ResolvedTime().Before(msgs[i-1].ResolvedTime()),
				"thread %s out of order", key)
		}
	}
}

func TestLast(t *testing.T) {
	threads := Group([]models.Message{
		msg("a", "2024-01-01T10:00:00Z", "u1", "me", "p1", "Hi"),
		msg("b", "2024-01-01T10:05:00Z", "me", "u1", "p1", "Hello back"),
	})

	last, ok := threads.Last("p1")
	require.True(t, ok)
	require.Equal(t, "b", last.ID)

	_, ok = threads.Last("missing")
	require.False(t, ok)
}

func TestHasUnread(t *testing.T) {
	unreadIn := models.Message{ID: "a", CreatedAt: "2024-01-01T10:00:00Z", SenderID: "u1", RecipientID: "me", PropertyID: "p1", Content: "Hi"}
	readIn := models.Message{ID: "b", CreatedAt: "2024-01-01T10:01:00Z", SenderID: "u1", RecipientID: "me", PropertyID: "p2", Content: "Yo", Read: true}
	// unread but addressed to someone else: not my unread
	othersUnread := models.Message{ID: "c", CreatedAt: "2024-01-01T10:02:00Z", SenderID: "me", RecipientID: "u1", PropertyID: "p3", Content: "Out"}

	threads := Group([]models.Message{unreadIn, readIn, othersUnread})

	require.True(t, threads.HasUnread("p1", "me"))
	require.False(t, threads.HasUnread("p2", "me"))
	require.False(t, threads.HasUnread("p3", "me"))
	require.False(t, threads.HasUnread("p1", ""))
}
