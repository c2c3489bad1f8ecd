package repository

import "errors"

// ErrStateNotFound is returned by state stores when nothing is saved under a key.
var ErrStateNotFound = errors.New("state not found")
