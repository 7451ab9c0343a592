package inbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/getset-tui/models"
)

func testPoller(src *fakeSource, interval time.Duration) *Poller {
	return NewPoller(NewFetcher(src), PollerConfig{
		Interval:       interval,
		RequestTimeout: time.Second,
	})
}

func TestPollerImmediateCycle(t *testing.T) {
	src := &fakeSource{
		received: []models.Message{msg("a", "2024-01-01T10:00:00Z", "u1", "me", "p1", "Hi")},
	}
	p := testPoller(src, time.Hour)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	select {
	case snap := <-p.Updates():
		require.Equal(t, uint64(1), snap.Seq)
		require.Len(t, snap.Messages, 1)
		require.Equal(t, []string{"p1"}, snap.Threads.Keys())
	case <-time.After(time.Second):
		t.Fatal("no snapshot after start")
	}
}

func TestPollerPeriodicTicks(t *testing.T) {
	src := &fakeSource{}
	p := testPoller(src, 20*time.Millisecond)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	var last Snapshot
	for i := 0; i < 3; i++ {
		select {
		case snap := <-p.Updates():
			require.Greater(t, snap.Seq, last.Seq, "sequence numbers must increase")
			last = snap
		case <-time.After(time.Second):
			t.Fatal("tick did not arrive")
		}
	}
}

func TestPollerRefreshNow(t *testing.T) {
	src := &fakeSource{}
	p := testPoller(src, time.Hour)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	<-p.Updates()
	before := src.fetchCount()

	require.NoError(t, p.RefreshNow())

	select {
	case <-p.Updates():
	case <-time.After(time.Second):
		t.Fatal("refresh did not produce a snapshot")
	}
	require.Greater(t, src.fetchCount(), before)
}

func TestPollerStopHaltsTicks(t *testing.T) {
	src := &fakeSource{}
	p := testPoller(src, 10*time.Millisecond)
	require.NoError(t, p.Start(context.Background()))

	<-p.Updates()
	require.NoError(t, p.Stop())

	count := src.fetchCount()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, count, src.fetchCount(), "no fetches after stop")

	require.ErrorIs(t, p.RefreshNow(), ErrPollerNotRunning)
	require.ErrorIs(t, p.Stop(), ErrPollerNotRunning)
}

func TestPollerStartTwice(t *testing.T) {
	p := testPoller(&fakeSource{}, time.Hour)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	require.ErrorIs(t, p.Start(context.Background()), ErrPollerAlreadyRunning)
}

func TestPollerContextCancellation(t *testing.T) {
	src := &fakeSource{}
	p := testPoller(src, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, p.Start(ctx))

	<-p.Updates()
	cancel()
	time.Sleep(30 * time.Millisecond)

	count := src.fetchCount()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, count, src.fetchCount(), "no fetches after owning context is cancelled")
}

func TestPollerLatestSnapshotWins(t *testing.T) {
	src := &fakeSource{}
	p := testPoller(src, 10*time.Millisecond)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	// let several cycles run without consuming
	time.Sleep(60 * time.Millisecond)

	snap := <-p.Updates()
	require.Greater(t, snap.Seq, uint64(1), "buffered snapshot must be the latest, not the first")
}
