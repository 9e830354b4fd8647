package repositories

import "errors"

// ErrNotFound is returned by all repositories when a lookup matches
// nothing. Callers check it with errors.Is to map it to a 404.
var ErrNotFound = errors.New("record not found")
