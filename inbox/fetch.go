// Package inbox reconstructs conversation threads from the backend's
// received and sent message collections and keeps them fresh by polling.
package inbox

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/getset-tui/logging"
	"github.com/getset-tui/models"
)

// Source is the slice of the backend API the aggregator needs.
type Source interface {
	ReceivedMessages(ctx context.Context) ([]models.Message, error)
	SentMessages(ctx context.Context) ([]models.Message, error)
	MarkMessageRead(ctx context.Context, id string) error
}

// Fetcher retrieves both message collections and marks fresh received
// messages as read.
type Fetcher struct {
	src    Source
	logger zerolog.Logger
}

func NewFetcher(src Source) *Fetcher {
	return &Fetcher{
		src:    src,
		logger: logging.Component("inbox-fetcher"),
	}
}

// Fetch issues the received and sent queries in parallel and returns their
// raw union, unfiltered and unsorted. Each branch degrades to an empty
// collection on failure so one broken endpoint never blanks the whole
// view.
func (f *Fetcher) Fetch(ctx context.Context) []models.Message {
	type result struct {
		msgs     []models.Message
		err      error
		received bool
	}

	results := make(chan result, 2)
	go func() {
		msgs, err := f.src.ReceivedMessages(ctx)
		results <- result{msgs: msgs, err: err, received: true}
	}()
	go func() {
		msgs, err := f.src.SentMessages(ctx)
		results <- result{msgs: msgs, err: err}
	}()

	var received, sent []models.Message
	for i := 0; i < 2; i++ {
		r := <-results
		if r.err != nil {
			which := "sent"
			if r.received {
				which = "received"
			}
			f.logger.Warn().Err(r.err).Str("collection", which).Msg("fetch degraded to empty collection")
			continue
		}
		if r.received {
			received = r.msgs
		} else {
			sent = r.msgs
		}
	}

	f.markRead(ctx, received)

	union := make([]models.Message, 0, len(received)+len(sent))
	union = append(union, received...)
	union = append(union, sent...)
	return union
}

// markRead fires a best-effort read receipt for every unread received
// message that has a server id. Failures are logged, never retried, and
// never block the fetch result. The receipts outlive the fetch context,
// so each gets its own bounded one.
func (f *Fetcher) markRead(ctx context.Context, received []models.Message) {
	for _, msg := range received {
		if msg.Read || msg.ID == "" {
			continue
		}
		go func(id string) {
			readCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := f.src.MarkMessageRead(readCtx, id); err != nil {
				f.logger.Warn().Err(err).Str("message_id", id).Msg("mark-read failed")
			}
		}(msg.ID)
	}
}
