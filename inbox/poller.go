package inbox

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/getset-tui/logging"
	"github.com/getset-tui/models"
)

// Poller errors.
var (
	ErrPollerAlreadyRunning = errors.New("poller already running")
	ErrPollerNotRunning     = errors.New("poller not running")
)

// Snapshot is the result of one fetch cycle: the deduplicated, sorted
// message set and its thread partition. The sequence number increases
// with issuance order so consumers can discard anything stale.
type Snapshot struct {
	Seq       uint64
	FetchedAt time.Time
	Messages  []models.Message
	Threads   Threads
}

// PollerConfig contains configuration for the conversation poller.
type PollerConfig struct {
	// Interval is the fixed poll period.
	// Default: 15s
	Interval time.Duration

	// RequestTimeout bounds each fetch cycle so a hung request cannot
	// stall the schedule.
	// Default: 15s
	RequestTimeout time.Duration
}

// DefaultPollerConfig returns sensible defaults.
func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Interval:       15 * time.Second,
		RequestTimeout: 15 * time.Second,
	}
}

// Poller drives the fetcher on a fixed period plus on-demand refreshes.
// All cycles run on one goroutine, so a slow fetch can never interleave
// with the next tick and apply an older result over a newer one.
type Poller struct {
	config  PollerConfig
	fetcher *Fetcher
	logger  zerolog.Logger

	updates chan Snapshot
	refresh chan struct{}

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	seq     uint64
}

// NewPoller creates a Poller around the given fetcher.
func NewPoller(fetcher *Fetcher, config PollerConfig) *Poller {
	if config.Interval <= 0 {
		config.Interval = DefaultPollerConfig().Interval
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultPollerConfig().RequestTimeout
	}
	return &Poller{
		config:  config,
		fetcher: fetcher,
		logger:  logging.Component("inbox-poller"),
		updates: make(chan Snapshot, 1),
		refresh: make(chan struct{}, 1),
	}
}

// Updates delivers one Snapshot per completed cycle. Only the latest
// snapshot is retained when the consumer falls behind.
func (p *Poller) Updates() <-chan Snapshot {
	return p.updates
}

// Start performs an immediate fetch cycle and then repeats on the
// configured period until ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrPollerAlreadyRunning
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.running = true

	p.logger.Info().Dur("interval", p.config.Interval).Msg("poller starting")

	p.wg.Add(1)
	go p.runLoop()
	return nil
}

// Stop halts the schedule. An in-flight fetch is not cancelled, but its
// result is discarded and no further cycle runs.
func (p *Poller) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrPollerNotRunning
	}
	p.cancel()
	p.running = false
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info().Msg("poller stopped")
	return nil
}

// RefreshNow requests an out-of-band cycle, used after a successful send.
// It does not reset the periodic schedule; if a refresh is already
// pending, the call coalesces with it.
func (p *Poller) RefreshNow() error {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()

	if !running {
		return ErrPollerNotRunning
	}

	select {
	case p.refresh <- struct{}{}:
	default:
	}
	return nil
}

func (p *Poller) runLoop() {
	defer p.wg.Done()

	p.cycle()

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.cycle()
		case <-p.refresh:
			p.cycle()
		}
	}
}

// cycle runs one fetch-and-rebuild pass. The fetch context is detached
// from the poller's lifetime so stopping mid-flight does not abort the
// network call; the result is simply dropped.
func (p *Poller) cycle() {
	p.seq++
	seq := p.seq

	fetchCtx, cancel := context.WithTimeout(context.Background(), p.config.RequestTimeout)
	defer cancel()

	union := p.fetcher.Fetch(fetchCtx)
	msgs := Deduplicate(union)
	SortByTime(msgs)

	snap := Snapshot{
		Seq:       seq,
		FetchedAt: time.Now(),
		Messages:  msgs,
		Threads:   Group(msgs),
	}

	if p.ctx.Err() != nil {
		return
	}

	p.logger.Debug().
		Uint64("seq", seq).
		Int("messages", len(msgs)).
		Int("threads", snap.Threads.Len()).
		Msg("fetch cycle complete")

	p.publish(snap)
}

// publish replaces any undelivered snapshot so the consumer always sees
// the freshest cycle.
func (p *Poller) publish(snap Snapshot) {
	for {
		select {
		case p.updates <- snap:
			return
		default:
		}
		select {
		case <-p.updates:
		default:
		}
	}
}
