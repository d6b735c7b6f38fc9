package metrics

import "time"

type Stats struct {
	TotalBytes int64

	Pairs             int64
	PairsDone         int64
	Same              int64
	SizeMismatches    int64
	ContentMismatches int64
	Errors            int64

	Segments      int64
	BytesCompared int64
	Started       time.Time
	Finished      time.Time
}

func (s *Stats) Start() { s.Started = time.Now() }
func (s *Stats) Stop()  { s.Finished = time.Now() }
func (s *Stats) Duration() time.Duration {
	if s.Started.IsZero() {
		return 0
	}
	if s.Finished.IsZero() {
		return time.Since(s.Started)
	}
	return s.Finished.Sub(s.Started)
}
