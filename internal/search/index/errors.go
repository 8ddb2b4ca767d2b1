package index

import "errors"

var (
	// ErrSourceUnavailable marks a configured source root that cannot be scanned.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrPersistence marks a failure to write the collection file.
	ErrPersistence = errors.New("cannot persist collection")
	// ErrLoad marks a collection file that is missing, unreadable or malformed.
	ErrLoad = errors.New("cannot load collection")
)
