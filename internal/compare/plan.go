package compare

// minBlocksPerThread keeps small files on a single thread.
const minBlocksPerThread = 500

// PlanThreads returns how many workers should compare a file of the given length:
// one per 500 buffer-sized blocks, clamped to [1, cfg.MaxThreads].
func PlanThreads(length int64, cfg Config) int {
	if cfg.BufferSize <= 0 || length <= 0 {
		return 1
	}
	blocks := length / int64(cfg.BufferSize)
	threads := blocks / minBlocksPerThread
	return int(max(1, min(threads, int64(cfg.MaxThreads))))
}

// AssignSegments splits [0, length) into threads contiguous segments. Every segment
// but the last spans whole blocks; block counts differ by at most one and the
// sub-block remainder goes to the last segment.
func AssignSegments(length int64, bufferSize, threads int) []Segment {
	if threads < 1 {
		threads = 1
	}
	if bufferSize < 1 {
		bufferSize = 1
	}

	bs := int64(bufferSize)
	blocks := length / bs
	rem := length % bs
	base := blocks / int64(threads)
	extra := blocks % int64(threads)

	plan := make([]Segment, threads)
	var offset int64
	for i := 0; i < threads; i++ {
		n := base
		if int64(i) < extra {
			n++
		}
		size := n * bs
		if i == threads-1 {
			size += rem
		}
		plan[i] = Segment{Start: offset, End: offset + size}
		offset += size
	}
	return plan
}
