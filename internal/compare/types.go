package compare

import (
	"fmt"
	"io/fs"
	"math"
	"runtime"
)

const DefaultBufferSize = 4096

type Config struct {
	BufferSize int
	MaxThreads int
}

// DefaultConfig uses 4 KiB buffers and one thread per logical CPU.
func DefaultConfig() Config {
	return Config{
		BufferSize: DefaultBufferSize,
		MaxThreads: runtime.NumCPU(),
	}
}

func (c Config) Validate() error {
	if c.BufferSize <= 0 {
		return invalidInput("buffer size must be greater than 0, got %d", c.BufferSize)
	}
	if int64(c.BufferSize) > math.MaxUint32 {
		return invalidInput("buffer size must be at most %d, got %d", uint32(math.MaxUint32), c.BufferSize)
	}
	if c.MaxThreads <= 0 {
		return invalidInput("max threads must be greater than 0, got %d", c.MaxThreads)
	}
	if int64(c.MaxThreads) > math.MaxUint32 {
		return invalidInput("max threads must be at most %d, got %d", uint32(math.MaxUint32), c.MaxThreads)
	}
	return nil
}

// FileStat is the admission record of one path, taken before any bytes are read.
type FileStat struct {
	Path   string
	Mode   fs.FileMode
	Length int64
}

func (s FileStat) Regular() bool { return s.Mode.IsRegular() }

// Segment is the half-open byte range [Start, End).
type Segment struct {
	Start int64
	End   int64
}

func (s Segment) Len() int64 { return s.End - s.Start }

type VerdictKind int

const (
	Same VerdictKind = iota
	DifferentSize
	DifferentContents
)

func (k VerdictKind) String() string {
	switch k {
	case Same:
		return "same"
	case DifferentSize:
		return "different_size"
	case DifferentContents:
		return "different_contents"
	default:
		return fmt.Sprintf("VerdictKind(%d)", int(k))
	}
}

// Verdict is the outcome of a comparison. Left is always the reference file.
// LeftLen and RightLen are only set for DifferentSize.
type Verdict struct {
	Kind     VerdictKind
	Left     string
	LeftLen  int64
	Right    string
	RightLen int64
}

func (v Verdict) IsSame() bool { return v.Kind == Same }

func (v Verdict) String() string {
	switch v.Kind {
	case Same:
		return "files are the same"
	case DifferentSize:
		return fmt.Sprintf("files have different sizes: %q: %d B -- %q: %d B",
			v.Left, v.LeftLen, v.Right, v.RightLen)
	case DifferentContents:
		return fmt.Sprintf("files have different contents: %q -- %q", v.Left, v.Right)
	default:
		return v.Kind.String()
	}
}
