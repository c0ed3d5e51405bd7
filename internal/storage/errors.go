package storage

import "errors"

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("storage: not found")

// IsNotFound reports whether err is a missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
