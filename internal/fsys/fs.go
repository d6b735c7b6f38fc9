package fsys

import (
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// File is a read handle positioned independently of any other handle on the same path.
type File interface {
	io.Reader
	io.Seeker
	io.Closer
	Name() string
}

// nativeOS resolves paths exactly like the os package: relative to the
// working directory, absolute as given.
type nativeOS struct {
	osfs.ChrootOS
}

// FS wraps a go-billy filesystem and annotates every error with the failing operation.
type FS struct {
	fs billy.Basic
}

func New(fsys billy.Basic) *FS {
	return &FS{fs: fsys}
}

// NewNative returns a filesystem backed by the host OS.
func NewNative() *FS {
	return New(&nativeOS{})
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() *FS {
	return New(memfs.New())
}

func (f *FS) Stat(name string) (os.FileInfo, error) {
	info, err := f.fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("billy: stat %q: %w", name, err)
	}
	return info, nil
}

func (f *FS) Open(name string) (File, error) {
	bf, err := f.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("billy: open %q: %w", name, err)
	}
	return &file{file: bf}, nil
}

func (f *FS) WriteFile(name string, data []byte, perm os.FileMode) error {
	if err := util.WriteFile(f.fs, name, data, perm); err != nil {
		return fmt.Errorf("billy: writefile %q: %w", name, err)
	}
	return nil
}
