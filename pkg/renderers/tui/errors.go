package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions marks a select element without options. Fill skips such
	// elements instead of failing.
	ErrNoOptions = errors.New("tui: select element has no options")
)
