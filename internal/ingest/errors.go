package ingest

import "fmt"

// FatalError means the run could not start: the source root is missing,
// unreadable or not a directory. Per-file failures are never fatal.
type FatalError struct {
	Root string
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("source root %s: %v", e.Root, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
