package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined
	// to submit.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOption is returned when a select prompt yields no usable choice.
	ErrNoOption = errors.New("tui: no option selected")
)
