package repositories

import "errors"

// ErrNotFound is returned when no entity has the requested id
var ErrNotFound = errors.New("not found")
