package metrics

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

type Snapshot struct {
	DurationMs        int64
	TotalBytes        int64
	Pairs             int64
	PairsDone         int64
	Same              int64
	SizeMismatches    int64
	ContentMismatches int64
	Errors            int64
	Segments          int64
	BytesCompared     int64
}

func (s *Stats) Snapshot() Snapshot {
	dur := s.Duration()

	return Snapshot{
		DurationMs:        dur.Milliseconds(),
		TotalBytes:        atomic.LoadInt64(&s.TotalBytes),
		Pairs:             atomic.LoadInt64(&s.Pairs),
		PairsDone:         atomic.LoadInt64(&s.PairsDone),
		Same:              atomic.LoadInt64(&s.Same),
		SizeMismatches:    atomic.LoadInt64(&s.SizeMismatches),
		ContentMismatches: atomic.LoadInt64(&s.ContentMismatches),
		Errors:            atomic.LoadInt64(&s.Errors),
		Segments:          atomic.LoadInt64(&s.Segments),
		BytesCompared:     atomic.LoadInt64(&s.BytesCompared),
	}
}

// Throughput returns compared bytes per second, or 0 before any time has elapsed.
func (snap Snapshot) Throughput() float64 {
	if snap.DurationMs <= 0 {
		return 0
	}
	return float64(snap.BytesCompared) / (float64(snap.DurationMs) / 1000.0)
}

func Print(w io.Writer, s *Stats) {
	snap := s.Snapshot()

	fmt.Fprintln(w, "--- stats ---")
	fmt.Fprintln(w, "duration_ms:", snap.DurationMs)
	fmt.Fprintln(w, "pairs:", snap.Pairs)
	fmt.Fprintln(w, "pairs_done:", snap.PairsDone)
	fmt.Fprintln(w, "same:", snap.Same)
	fmt.Fprintln(w, "size_mismatches:", snap.SizeMismatches)
	fmt.Fprintln(w, "content_mismatches:", snap.ContentMismatches)
	fmt.Fprintln(w, "errors:", snap.Errors)
	fmt.Fprintln(w, "segments:", snap.Segments)
	fmt.Fprintf(w, "bytes_compared: %d (%s)\n", snap.BytesCompared, humanize.IBytes(uint64(snap.BytesCompared)))
	fmt.Fprintf(w, "total_bytes: %d (%s)\n", snap.TotalBytes, humanize.IBytes(uint64(snap.TotalBytes)))

	if bps := snap.Throughput(); bps > 0 {
		fmt.Fprintln(w, "throughput_bytes_per_sec:", bps)
		fmt.Fprintf(w, "throughput: %s/s\n", humanize.Bytes(uint64(bps)))
	}
}
