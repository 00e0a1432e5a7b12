package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound  = errors.New("pokemon not found")
	ErrInvalidID = errors.New("invalid pokemon id")
	ErrClosed    = errors.New("store closed")
)
