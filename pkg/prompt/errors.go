package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C) or declined to submit.
	ErrAborted = errors.New("prompt: aborted")
	// ErrTooManyAttempts is returned when a field stays invalid after the
	// configured number of attempts.
	ErrTooManyAttempts = errors.New("prompt: too many invalid attempts")
)
