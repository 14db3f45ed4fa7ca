package domain

import "errors"

// Error definitions for the synchronization engine
var (
	ErrNotReady          = errors.New("group is not ready to play")
	ErrUnknownAttribute  = errors.New("unknown attribute")
	ErrInvalidAttribute  = errors.New("invalid attribute value")
	ErrReadOnlyAttribute = errors.New("read-only attribute")
	ErrNoPlayers         = errors.New("no players configured")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrBusNotStarted     = errors.New("player bus not started")
)
