package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanThreads_TableDriven(t *testing.T) {
	tests := []struct {
		name   string
		length int64
		cfg    Config
		want   int
	}{
		{"empty file", 0, Config{BufferSize: 4096, MaxThreads: 8}, 1},
		{"tiny file", 10, Config{BufferSize: 4096, MaxThreads: 8}, 1},
		{"just under one thread of work", 4096*500*2 - 1, Config{BufferSize: 4096, MaxThreads: 8}, 1},
		{"exactly two threads of work", 4096 * 500 * 2, Config{BufferSize: 4096, MaxThreads: 8}, 2},
		{"capped by max threads", 4096 * 500 * 100, Config{BufferSize: 4096, MaxThreads: 8}, 8},
		{"single thread cap", 4096 * 500 * 100, Config{BufferSize: 4096, MaxThreads: 1}, 1},
		{"one byte buffers", 1_000_000, Config{BufferSize: 1, MaxThreads: 3}, 3},
		{"one byte buffers uncapped", 10_000, Config{BufferSize: 1, MaxThreads: 64}, 20},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanThreads(tt.length, tt.cfg))
		})
	}
}

func TestPlanThreads_Bounds(t *testing.T) {
	lengths := []int64{0, 1, 4095, 4096, 4097, 1_000_003, 1 << 32}
	for _, bs := range []int{1, 16, 4096} {
		for _, maxThreads := range []int{1, 2, 3, 7, 64} {
			for _, length := range lengths {
				got := PlanThreads(length, Config{BufferSize: bs, MaxThreads: maxThreads})
				require.GreaterOrEqual(t, got, 1, "length=%d bs=%d max=%d", length, bs, maxThreads)
				require.LessOrEqual(t, got, maxThreads, "length=%d bs=%d max=%d", length, bs, maxThreads)
				if got > 1 {
					blocks := length / int64(bs)
					require.GreaterOrEqual(t, blocks/int64(got), int64(minBlocksPerThread),
						"every thread gets at least %d blocks", minBlocksPerThread)
				}
			}
		}
	}
}

func TestAssignSegments_Invariants(t *testing.T) {
	lengths := []int64{0, 1, 4095, 4096, 4097, 1_000_003}
	for _, bs := range []int{1, 4096} {
		for _, n := range []int{1, 2, 3, 7} {
			for _, length := range lengths {
				plan := AssignSegments(length, bs, n)
				require.Len(t, plan, n)
				require.Equal(t, int64(0), plan[0].Start)
				require.Equal(t, length, plan[len(plan)-1].End)

				var sum int64
				minBlocks, maxBlocks := int64(-1), int64(-1)
				for i, seg := range plan {
					require.GreaterOrEqual(t, seg.Len(), int64(0))
					sum += seg.Len()
					if i > 0 {
						require.Equal(t, plan[i-1].End, seg.Start, "segments must be contiguous")
					}
					if i < len(plan)-1 {
						require.Zero(t, seg.Len()%int64(bs), "segment %d must hold whole blocks", i)
					}
					blocks := seg.Len() / int64(bs)
					if minBlocks < 0 || blocks < minBlocks {
						minBlocks = blocks
					}
					if blocks > maxBlocks {
						maxBlocks = blocks
					}
				}
				require.Equal(t, length, sum, "length=%d bs=%d n=%d", length, bs, n)
				require.LessOrEqual(t, maxBlocks-minBlocks, int64(1), "load within one block")
			}
		}
	}
}

func TestAssignSegments_ExtraBlocksGoFirstRemainderLast(t *testing.T) {
	plan := AssignSegments(10*4096+7, 4096, 3)

	assert.Equal(t, []Segment{
		{Start: 0, End: 4 * 4096},
		{Start: 4 * 4096, End: 7 * 4096},
		{Start: 7 * 4096, End: 10*4096 + 7},
	}, plan)
}

func TestAssignSegments_MoreThreadsThanBlocks(t *testing.T) {
	plan := AssignSegments(5, 4096, 3)

	assert.Equal(t, []Segment{
		{Start: 0, End: 0},
		{Start: 0, End: 0},
		{Start: 0, End: 5},
	}, plan)
}
