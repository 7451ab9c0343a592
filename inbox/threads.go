package inbox

import "github.com/getset-tui/models"

// GeneralKey groups messages that carry no property association.
const GeneralKey = "general"

// ThreadKey returns the conversation grouping key for a message.
func ThreadKey(m models.Message) string {
	if m.PropertyID == "" {
		return GeneralKey
	}
	return m.PropertyID
}

// Threads is a derived partition of the current message set. It is
// rebuilt on every fetch cycle and holds no state of its own.
type Threads struct {
	keys  []string
	byKey map[string][]models.Message
}

// Group partitions an already sorted message sequence into threads.
// Grouping is a stable partition: per-thread order is the input order, so
// pre-sorted input yields chronologically sorted threads. Keys appear in
// order of each thread's first (oldest) message.
func Group(msgs []models.Message) Threads {
	t := Threads{byKey: make(map[string][]models.Message)}
	for _, m := range msgs {
		key := ThreadKey(m)
		if _, seen := t.byKey[key]; !seen {
			t.keys = append(t.keys, key)
		}
		t.byKey[key] = append(t.byKey[key], m)
	}
	return t
}

// Keys lists thread keys in first-appearance order.
func (t Threads) Keys() []string {
	return t.keys
}

// Len returns the number of threads.
func (t Threads) Len() int {
	return len(t.keys)
}

// Messages returns the ordered messages of a thread.
func (t Threads) Messages(key string) []models.Message {
	return t.byKey[key]
}

// Last returns the newest message of a thread, used for previews and for
// resolving reply recipients.
func (t Threads) Last(key string) (models.Message, bool) {
	msgs := t.byKey[key]
	if len(msgs) == 0 {
		return models.Message{}, false
	}
	return msgs[len(msgs)-1], true
}

// HasUnread reports whether the thread contains a message the given user
// has not read yet. This is recomputed from the message set on every
// grouping pass, never cached.
func (t Threads) HasUnread(key, userID string) bool {
	if userID == "" {
		return false
	}
	for _, m := range t.byKey[key] {
		if !m.Read && m.RecipientID == userID {
			return true
		}
	}
	return false
}
