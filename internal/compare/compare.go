package compare

import (
	"context"
	"log/slog"
	"sync/atomic"

	"samefile/internal/fsys"
	"samefile/internal/metrics"
)

// Comparer decides whether regular files have byte-identical contents.
// It is safe for concurrent use once constructed.
type Comparer struct {
	fs         Filesystem
	cfg        Config
	logger     *slog.Logger
	stats      *metrics.Stats
	onProgress func(n int64)
}

func New(cfg Config, opts ...Option) (*Comparer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Comparer{
		fs:  fsys.NewNative(),
		cfg: cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c, nil
}

// Admit stats path and checks that it is a readable regular file.
func (c *Comparer) Admit(path string) (FileStat, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		return FileStat{}, pathError(path, err)
	}
	st := FileStat{Path: path, Mode: info.Mode(), Length: info.Size()}
	if !st.Regular() {
		return FileStat{}, &Error{
			Code:     CodeUnsupportedType,
			Path:     path,
			FileType: fileTypeName(st.Mode),
		}
	}

	f, err := c.fs.Open(path)
	if err != nil {
		return FileStat{}, pathError(path, err)
	}
	if err := f.Close(); err != nil {
		return FileStat{}, pathError(path, err)
	}

	return st, nil
}

// AdmitAll admits every path in order and fails on the first rejection.
func (c *Comparer) AdmitAll(paths []string) ([]FileStat, error) {
	if len(paths) < 2 {
		return nil, invalidInput("need at least 2 files, got %d", len(paths))
	}
	files := make([]FileStat, 0, len(paths))
	for _, p := range paths {
		st, err := c.Admit(p)
		if err != nil {
			return nil, err
		}
		files = append(files, st)
	}
	return files, nil
}

// CompareAll compares paths[1:] against paths[0], left to right, and returns the
// first verdict that is not Same. No bytes are read unless every path is admitted.
func (c *Comparer) CompareAll(ctx context.Context, paths []string) (Verdict, error) {
	files, err := c.AdmitAll(paths)
	if err != nil {
		return Verdict{}, err
	}
	return c.CompareFiles(ctx, files)
}

// CompareFiles is CompareAll for already admitted files.
func (c *Comparer) CompareFiles(ctx context.Context, files []FileStat) (Verdict, error) {
	if len(files) < 2 {
		return Verdict{}, invalidInput("need at least 2 files, got %d", len(files))
	}
	ref := files[0]
	if c.stats != nil {
		atomic.AddInt64(&c.stats.TotalBytes, ref.Length*int64(len(files)-1))
	}

	for _, other := range files[1:] {
		if err := ctx.Err(); err != nil {
			return Verdict{}, err
		}
		v, err := c.comparePair(ctx, ref, other)
		if err != nil {
			return Verdict{}, err
		}
		if !v.IsSame() {
			return v, nil
		}
	}
	return Verdict{Kind: Same}, nil
}

// Compare admits both paths and compares them.
func (c *Comparer) Compare(ctx context.Context, ref, other string) (Verdict, error) {
	return c.CompareAll(ctx, []string{ref, other})
}

func (c *Comparer) comparePair(ctx context.Context, ref, other FileStat) (Verdict, error) {
	c.count(func(s *metrics.Stats) *int64 { return &s.Pairs })

	v, err := c.dispatch(ctx, ref, other)

	switch {
	case err != nil:
		c.count(func(s *metrics.Stats) *int64 { return &s.Errors })
		c.logger.Debug("comparison failed", "left", ref.Path, "right", other.Path, "error", err)
	case v.Kind == Same:
		c.count(func(s *metrics.Stats) *int64 { return &s.Same })
	case v.Kind == DifferentSize:
		c.count(func(s *metrics.Stats) *int64 { return &s.SizeMismatches })
	case v.Kind == DifferentContents:
		c.count(func(s *metrics.Stats) *int64 { return &s.ContentMismatches })
	}
	c.count(func(s *metrics.Stats) *int64 { return &s.PairsDone })

	if err == nil {
		c.logger.Debug("pair compared", "left", ref.Path, "right", other.Path, "verdict", v.Kind.String())
	}
	return v, err
}

func (c *Comparer) dispatch(ctx context.Context, ref, other FileStat) (Verdict, error) {
	if ref.Length != other.Length {
		return Verdict{
			Kind:     DifferentSize,
			Left:     ref.Path,
			LeftLen:  ref.Length,
			Right:    other.Path,
			RightLen: other.Length,
		}, nil
	}

	threads := PlanThreads(ref.Length, c.cfg)
	plan := AssignSegments(ref.Length, c.cfg.BufferSize, threads)
	if c.stats != nil {
		atomic.AddInt64(&c.stats.Segments, int64(len(plan)))
	}
	c.logger.Debug("planned comparison",
		"left", ref.Path,
		"right", other.Path,
		"length", ref.Length,
		"buffer_size", c.cfg.BufferSize,
		"threads", threads,
	)

	if threads == 1 {
		return c.compareSegment(ctx, ref.Path, other.Path, plan[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		verdict Verdict
		err     error
	}
	results := make(chan result, len(plan))

	for i, seg := range plan {
		c.logger.Debug("segment dispatched", "right", other.Path, "segment", i, "start", seg.Start, "end", seg.End)
		go func(seg Segment) {
			v, err := c.compareSegment(ctx, ref.Path, other.Path, seg)
			results <- result{verdict: v, err: err}
		}(seg)
	}

	// The first non-Same result wins; cancelling stops the other segments
	// before their next read, and their results are drained and dropped.
	var first *result
	for range plan {
		r := <-results
		if first != nil {
			continue
		}
		if r.err != nil || !r.verdict.IsSame() {
			first = &r
			cancel()
		}
	}

	if first == nil {
		return Verdict{Kind: Same}, nil
	}
	return first.verdict, first.err
}

func (c *Comparer) count(field func(*metrics.Stats) *int64) {
	if c.stats == nil {
		return
	}
	atomic.AddInt64(field(c.stats), 1)
}
