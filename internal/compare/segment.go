package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"samefile/internal/fsys"
)

// compareSegment compares seg of left and right with fresh handles and buffers.
// It never reads past seg.End and stops at the first differing buffer.
func (c *Comparer) compareSegment(ctx context.Context, left, right string, seg Segment) (Verdict, error) {
	lf, err := c.openAt(left, seg.Start)
	if err != nil {
		return Verdict{}, err
	}
	defer func() {
		_ = lf.Close()
	}()

	rf, err := c.openAt(right, seg.Start)
	if err != nil {
		return Verdict{}, err
	}
	defer func() {
		_ = rf.Close()
	}()

	lbuf := make([]byte, c.cfg.BufferSize)
	rbuf := make([]byte, c.cfg.BufferSize)

	pos := seg.Start
	for pos < seg.End {
		if err := ctx.Err(); err != nil {
			return Verdict{}, err
		}

		want := min(int64(len(lbuf)), seg.End-pos)
		ln, err := fill(lf, lbuf[:want])
		if err != nil {
			return Verdict{}, pathError(left, err)
		}
		rn, err := fill(rf, rbuf[:want])
		if err != nil {
			return Verdict{}, pathError(right, err)
		}

		if ln == 0 && rn == 0 {
			// both hit EOF at the same offset
			break
		}
		if ln != rn {
			return c.liveSizes(left, right)
		}
		if !bytes.Equal(lbuf[:ln], rbuf[:rn]) {
			return Verdict{Kind: DifferentContents, Left: left, Right: right}, nil
		}

		pos += int64(ln)
		c.progress(int64(ln))
	}

	return Verdict{Kind: Same}, nil
}

func (c *Comparer) openAt(path string, offset int64) (fsys.File, error) {
	h, err := c.fs.Open(path)
	if err != nil {
		return nil, pathError(path, err)
	}
	if _, err := h.Seek(offset, io.SeekStart); err != nil {
		_ = h.Close()
		return nil, &Error{Code: CodeIO, Path: path, Err: fmt.Errorf("seek to %d: %w", offset, err)}
	}
	return h, nil
}

// liveSizes re-stats both files after one reader ran dry before the other.
func (c *Comparer) liveSizes(left, right string) (Verdict, error) {
	li, err := c.fs.Stat(left)
	if err != nil {
		return Verdict{}, pathError(left, err)
	}
	ri, err := c.fs.Stat(right)
	if err != nil {
		return Verdict{}, pathError(right, err)
	}
	return Verdict{
		Kind:     DifferentSize,
		Left:     left,
		LeftLen:  li.Size(),
		Right:    right,
		RightLen: ri.Size(),
	}, nil
}

func (c *Comparer) progress(n int64) {
	if c.stats != nil {
		atomic.AddInt64(&c.stats.BytesCompared, n)
	}
	if c.onProgress != nil {
		c.onProgress(n)
	}
}

// fill reads until buf is full or the reader is exhausted. A short count is not an error.
func fill(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}
	return n, err
}
