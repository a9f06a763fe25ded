package router

import "errors"

// Sentinel errors for the router package.
var (
	// ErrNoPath indicates the search space was exhausted without reaching
	// the target port.
	ErrNoPath = errors.New("router: no path found")

	// ErrStartBlocked indicates the source port's external tile is out of
	// bounds, occupied by a machine, or already corner-occupied.
	ErrStartBlocked = errors.New("router: start tile blocked")

	// ErrTargetBlocked indicates the target port's external tile is out of
	// bounds, occupied by a machine, or already corner-occupied.
	ErrTargetBlocked = errors.New("router: target tile blocked")
)
