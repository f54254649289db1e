package keyword

import (
	"errors"
	"fmt"
)

// ErrIO is matched by every failure to open, read or save a workbook
var ErrIO = errors.New("i/o failure")

// ErrEmptyKeyword indicates a search was requested without a keyword
var ErrEmptyKeyword = errors.New("keyword must not be empty")

// ErrInvalidChunkSize indicates a chunk size below one
var ErrInvalidChunkSize = errors.New("chunk size must be greater than zero")

// OpError reports an I/O failure during an operation.
// Side effects that happened before the failure are not rolled back.
type OpError struct {
	Op   string // "write", "read", "search", "annotate", "extract", "split-rows", "split-text"
	Path string // Workbook or directory involved, may be empty
	Err  error
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Is makes every OpError match ErrIO
func (e *OpError) Is(target error) bool {
	return target == ErrIO
}

func ioError(op, path string, err error) error {
	return &OpError{Op: op, Path: path, Err: err}
}
