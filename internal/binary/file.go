package binary

import (
	"errors"
	"fmt"
	"os"
)

// ErrWriteFailure is the sentinel matched by every *WriteError.
var ErrWriteFailure = errors.New("write failure")

// WriteError records an I/O failure while producing an output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWriteFailure, e.Err}
}

// CreateFile creates (or truncates) path, hands a buffered Writer over it to
// fn, and flushes and closes the file on every return path, including when fn
// fails. The first error wins. The returned count is the number of bytes
// written.
//
// I/O errors come back as *WriteError. Errors produced by fn itself are
// returned unchanged. A failed call leaves the partially written file in place.
func CreateFile(path string, cfg Config, fn func(w *Writer) error) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}

	w := NewWriter(f, cfg)
	defer func() {
		if ferr := w.Flush(); err == nil && ferr != nil {
			err = &WriteError{Path: path, Err: ferr}
		}
		if cerr := f.Close(); err == nil && cerr != nil {
			err = &WriteError{Path: path, Err: cerr}
		}
		n = w.Pos()
	}()

	if err := fn(w); err != nil {
		if werr := w.Err(); werr != nil && errors.Is(err, werr) {
			return 0, &WriteError{Path: path, Err: err}
		}
		return 0, err
	}
	return 0, nil
}
