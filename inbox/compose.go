package inbox

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/getset-tui/models"
)

var (
	// ErrEmptyContent means the trimmed compose buffer was empty.
	ErrEmptyContent = errors.New("message content is empty")

	// ErrNoThread means no conversation is selected or it has no messages.
	ErrNoThread = errors.New("no thread selected")
)

// ReplyRecipient resolves the other party of a conversation: replying to
// my own last message goes to its original recipient, replying to theirs
// goes back to the sender.
func ReplyRecipient(last models.Message, userID string) string {
	if last.SenderID == userID {
		return last.RecipientID
	}
	return last.SenderID
}

// BuildReply produces the outgoing payload for a reply in the given
// thread. Correlation identifiers are inherited from the thread's last
// message, not recomputed. The caller keeps its compose buffer on any
// error so typed text survives a failed send.
func BuildReply(t Threads, key, content, userID string) (models.Outgoing, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Outgoing{}, ErrEmptyContent
	}

	last, ok := t.Last(key)
	if !ok {
		return models.Outgoing{}, ErrNoThread
	}

	return models.Outgoing{
		RecipientID: ReplyRecipient(last, userID),
		Content:     content,
		PropertyID:  last.PropertyID,
		EnquiryID:   last.EnquiryID,
		ThreadID:    last.ThreadID,
	}, nil
}

// NewEnquiry starts a conversation with a property's owner. A fresh
// correlation id is generated so replies can inherit it.
func NewEnquiry(property models.Property, content string) (models.Outgoing, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Outgoing{}, ErrEmptyContent
	}
	if property.OwnerID == "" {
		return models.Outgoing{}, errors.Errorf("property %s has no owner", property.ID)
	}

	return models.Outgoing{
		RecipientID: property.OwnerID,
		Content:     content,
		PropertyID:  property.ID,
		ThreadID:    uuid.New().String(),
	}, nil
}
