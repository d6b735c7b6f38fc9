package compare

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode classifies comparison failures.
type ErrorCode string

const (
	// CodeNotFound indicates a path does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAccessDenied indicates a path exists but cannot be read.
	CodeAccessDenied ErrorCode = "ACCESS_DENIED"

	// CodeUnsupportedType indicates a path is not a regular file.
	CodeUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"

	// CodeIO indicates an unexpected read, seek or stat failure.
	CodeIO ErrorCode = "IO_ERROR"

	// CodeInvalidInput indicates bad arguments from the caller.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Sentinels for errors.Is; they match any *Error with the same code.
var (
	ErrNotFound        = &Error{Code: CodeNotFound}
	ErrAccessDenied    = &Error{Code: CodeAccessDenied}
	ErrUnsupportedType = &Error{Code: CodeUnsupportedType}
	ErrIO              = &Error{Code: CodeIO}
	ErrInvalidInput    = &Error{Code: CodeInvalidInput}
)

type Error struct {
	Code     ErrorCode
	Path     string
	FileType string
	Err      error
}

func (e *Error) Error() string {
	switch e.Code {
	case CodeNotFound:
		return fmt.Sprintf("file not found: %q", e.Path)
	case CodeAccessDenied:
		return fmt.Sprintf("access to file denied: %q: %v", e.Path, e.Err)
	case CodeUnsupportedType:
		return fmt.Sprintf("file type %s unsupported: %q", e.FileType, e.Path)
	case CodeInvalidInput:
		return fmt.Sprintf("invalid input: %v", e.Err)
	}
	if e.Path == "" {
		return fmt.Sprintf("i/o error: %v", e.Err)
	}
	return fmt.Sprintf("i/o error: %q: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Path == "" && t.Err == nil && t.Code == e.Code
}

func invalidInput(format string, args ...any) error {
	return &Error{Code: CodeInvalidInput, Err: fmt.Errorf(format, args...)}
}

// pathError classifies a filesystem error raised while handling path.
func pathError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Error{Code: CodeNotFound, Path: path, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &Error{Code: CodeAccessDenied, Path: path, Err: err}
	default:
		return &Error{Code: CodeIO, Path: path, Err: err}
	}
}

func fileTypeName(mode fs.FileMode) string {
	switch {
	case mode.IsDir():
		return "directory"
	case mode.IsRegular():
		return "regular file"
	case mode&fs.ModeSymlink != 0:
		return "symbolic link"
	case mode&fs.ModeNamedPipe != 0:
		return "named pipe"
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode&fs.ModeDevice != 0:
		return "device"
	default:
		return fmt.Sprintf("unknown (%v)", mode.Type())
	}
}
