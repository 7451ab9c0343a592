package inbox

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getset-tui/models"
)

func threadFixture() Threads {
	return Group([]models.Message{
		{ID: "a", CreatedAt: "2024-01-01T10:00:00Z", SenderID: "u1", RecipientID: "me", PropertyID: "p1", EnquiryID: "e1", ThreadID: "t1", Content: "Hi"},
		{ID: "b", CreatedAt: "2024-01-01T10:05:00Z", SenderID: "me", RecipientID: "u1", PropertyID: "p1", EnquiryID: "e1", ThreadID: "t1", Content: "Hello back"},
	})
}

func TestBuildReplyWhenLastMessageIsMine(t *testing.T) {
	out, err := BuildReply(threadFixture(), "p1", "sounds good", "me")
	require.NoError(t, err)
	// I sent the last message, so the reply goes to its recipient
	require.Equal(t, "u1", out.RecipientID)
	require.Equal(t, "p1", out.PropertyID)
	require.Equal(t, "e1", out.EnquiryID)
	require.Equal(t, "t1", out.ThreadID)
}

func TestBuildReplyWhenLastMessageIsTheirs(t *testing.T) {
	threads := Group([]models.Message{
		{ID: "a", CreatedAt: "2024-01-01T10:00:00Z", SenderID: "u1", RecipientID: "me", PropertyID: "p1", Content: "Hi"},
	})

	out, err := BuildReply(threads, "p1", "hello", "me")
	require.NoError(t, err)
	require.Equal(t, "u1", out.RecipientID)
}

func TestBuildReplyTrimsContent(t *testing.T) {
	out, err := BuildReply(threadFixture(), "p1", "  spaced out  ", "me")
	require.NoError(t, err)
	require.Equal(t, "spaced out", out.Content)
}

func TestBuildReplyEmptyContentIsNoop(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := BuildReply(threadFixture(), "p1", content, "me")
		require.ErrorIs(t, err, ErrEmptyContent)
	}
}

func TestBuildReplyNoThread(t *testing.T) {
	_, err := BuildReply(threadFixture(), "p-unknown", "hello", "me")
	require.ErrorIs(t, err, ErrNoThread)

	_, err = BuildReply(Threads{}, "p1", "hello", "me")
	require.ErrorIs(t, err, ErrNoThread)
}

func TestNewEnquiry(t *testing.T) {
	prop := models.Property{ID: "p9", OwnerID: "owner1", Title: "Loft"}

	out, err := NewEnquiry(prop, "Is this still available?")
	require.NoError(t, err)
	require.Equal(t, "owner1", out.RecipientID)
	require.Equal(t, "p9", out.PropertyID)
	require.NotEmpty(t, out.ThreadID)

	// fresh correlation id per enquiry
	again, err := NewEnquiry(prop, "Is this still available?")
	require.NoError(t, err)
	require.NotEqual(t, out.ThreadID, again.ThreadID)

	_, err = NewEnquiry(prop, "  ")
	require.ErrorIs(t, err, ErrEmptyContent)

	_, err = NewEnquiry(models.Property{ID: "p0"}, "hi")
	require.Error(t, err)
}
