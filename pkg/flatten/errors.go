package flatten

import "errors"

var (
	// ErrInvalidDirectory is returned when the root path does not exist or is
	// not a directory.
	ErrInvalidDirectory = errors.New("not a valid directory")

	// ErrNoExtensions is returned when the configuration carries no include
	// extensions. An empty include set is a usage error, not a zero-match run.
	ErrNoExtensions = errors.New("no file extensions configured")
)
