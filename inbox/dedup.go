package inbox

import (
	"sort"

	"github.com/getset-tui/models"
)

// DedupKey identifies a message across the received and sent collections.
// A message the user sent can appear in both when the backend mirrors
// self-sent items. Items without a server id (mock fallbacks) collapse on
// content plus raw timestamp, a known-weak key the backend contract
// currently forces.
func DedupKey(m models.Message) string {
	if m.ID != "" {
		return m.ID
	}
	return m.Content + "|" + m.RawTime()
}

// Deduplicate collapses duplicate entries. Later entries win for a shared
// key (both collections should agree on shared fields anyway), while the
// surviving entry keeps its first-occurrence position. Applying it to
// already-deduplicated input is a no-op.
func Deduplicate(msgs []models.Message) []models.Message {
	out := make([]models.Message, 0, len(msgs))
	index := make(map[string]int, len(msgs))

	for _, m := range msgs {
		key := DedupKey(m)
		if at, seen := index[key]; seen {
			out[at] = m
			continue
		}
		index[key] = len(out)
		out = append(out, m)
	}
	return out
}

// SortByTime orders messages ascending by resolved time. The sort is
// explicitly stable: equal timestamps retain their relative input order,
// which the thread grouping relies on.
func SortByTime(msgs []models.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].ResolvedTime().Before(msgs[j].ResolvedTime())
	})
}
