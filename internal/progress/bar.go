package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"samefile/internal/metrics"
)

type SnapshotFn func() metrics.Snapshot

type Bar struct {
	bar     *progressbar.ProgressBar
	ch      chan int64
	done    chan struct{}
	stop    chan struct{}
	stopped chan struct{}

	snap   SnapshotFn
	lastB  int64
	lastAt time.Time
}

func New(w io.Writer, totalBytes int64, snap SnapshotFn) *Bar {
	b := &Bar{
		ch:      make(chan int64, 16384),
		done:    make(chan struct{}),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
		snap:    snap,
		lastAt:  time.Now(),
	}

	b.bar = progressbar.NewOptions64(
		totalBytes,
		progressbar.OptionSetWriter(w),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetDescription("comparing"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(120*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)

	_ = b.bar.RenderBlank()
	go func() {
		defer close(b.done)
		for n := range b.ch {
			_ = b.bar.Add64(n)
		}
		_ = b.bar.Finish()
	}()

	go func() {
		defer close(b.stopped)
		t := time.NewTicker(1 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				b.updateDescription()
			case <-b.stop:
				return
			}
		}
	}()

	return b
}

// AddBytes is safe to call from any goroutine until Close.
func (b *Bar) AddBytes(n int64) {
	if n <= 0 {
		return
	}
	b.ch <- n
}

func (b *Bar) Close() {
	close(b.stop)
	<-b.stopped
	close(b.ch)
	<-b.done
}

func (b *Bar) updateDescription() {
	if b.snap == nil {
		return
	}
	s := b.snap()

	now := time.Now()
	dt := now.Sub(b.lastAt).Seconds()

	rate := 0.0
	if dt > 0 {
		rate = float64(s.BytesCompared-b.lastB) / dt
	}

	b.lastB = s.BytesCompared
	b.lastAt = now

	b.bar.Describe(describe(s, rate))
}

func describe(s metrics.Snapshot, bytesPerSec float64) string {
	return fmt.Sprintf("comparing %d/%d pairs | same=%d differ=%d err=%d | %s/s",
		s.PairsDone, s.Pairs, s.Same, s.SizeMismatches+s.ContentMismatches, s.Errors,
		humanize.Bytes(uint64(max(bytesPerSec, 0))),
	)
}
