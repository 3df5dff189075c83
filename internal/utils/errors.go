package utils

import "fmt"

// Operation tags carried by FileOpError.
const (
	OpRead      = "read"
	OpWrite     = "write"
	OpCopy      = "copy"
	OpCreateDir = "create directory"
	OpReadDir   = "read directory"
	OpRemove    = "remove"
)

// FileOpError wraps an OS-level failure with the operation and the offending path.
type FileOpError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileOpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to %s file: %s", e.Op, e.Path)
	}
	return fmt.Sprintf("failed to %s file: %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileOpError) Unwrap() error { return e.Err }

func opError(op, path string, err error) error {
	return &FileOpError{Op: op, Path: path, Err: err}
}
