package gsettings

import "errors"

var (
	// ErrCommandFailed - the settings tool exited non-zero or terminated abnormally.
	ErrCommandFailed = errors.New("settings command failed")
	// ErrInvalidFormat - nothing was left of a value after removing its type tag.
	ErrInvalidFormat = errors.New("invalid value format")
	// ErrArgumentOverflow - the argument vector exceeds the runner limits.
	ErrArgumentOverflow = errors.New("argument buffer overflow")
)
