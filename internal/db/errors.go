package db

import "fmt"

// StoreError wraps an I/O or SQL failure. Store failures are non-fatal to the
// sampling loop: the caller logs them and moves on to the next title.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ParseError reports a malformed date or timestamp, either from stored rows or
// from user input. Unlike StoreError it is fatal for a report run: a timestamp
// that fails to parse means the store and the reader disagree on the format.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
