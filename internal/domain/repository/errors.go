package repository

import "errors"

// ErrRecordNotFound is returned by Update when the row no longer exists.
var ErrRecordNotFound = errors.New("record not found")
