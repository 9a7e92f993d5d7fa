package book

import "errors"

// ErrNotFound indicates the requested book, goal, or setting does not exist.
var ErrNotFound = errors.New("not found")

// ErrLocked indicates another shelfpace process holds the data directory.
var ErrLocked = errors.New("data directory is locked by another process")
