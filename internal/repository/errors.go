package repository

import "errors"

// ErrNotFound indicates that no row in the caller's organization matched the
// given id. GetByID reports absence as (nil, nil) instead; this error is for
// mutations that resolved nothing.
var ErrNotFound = errors.New("row not found")
