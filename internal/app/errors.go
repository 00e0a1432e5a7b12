package service

import (
	"errors"

	"github.com/okian/dexkeeper/internal/adapters/repository"
)

// Sentinel kinds for service errors. Callers match them with errors.Is.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrNotFound       = repository.ErrNotFound
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownSpecies = errors.New("unknown species")
)
