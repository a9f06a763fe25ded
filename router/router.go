package router

import (
	"fmt"

	"github.com/beltforge/layoutcore/grid"
)

// Route finds and applies a belt path for an already-registered connection,
// replacing any path previously applied for it. On failure the grid is left
// unchanged and the connection keeps whatever path (if any) it had before.
func Route(gs *grid.State, connID string) (grid.BeltPath, error) {
	conn, ok := gs.Connection(connID)
	if !ok {
		return nil, fmt.Errorf("router: %w: %s", grid.ErrConnectionNotFound, connID)
	}
	src, err := gs.SourcePort(conn)
	if err != nil {
		return nil, err
	}
	tgt, err := gs.TargetPort(conn)
	if err != nil {
		return nil, err
	}

	path, err := FindPath(gs, src, tgt, connID)
	if err != nil {
		return nil, err
	}

	gs.RemoveBeltPath(connID)
	gs.ApplyBeltPath(connID, path)
	return path, nil
}

// Unroute retracts connID's applied path, if any, leaving the connection
// registered but unrouted.
func Unroute(gs *grid.State, connID string) bool {
	return gs.RemoveBeltPath(connID)
}

// RouteAll routes every connection in gs in an unspecified but deterministic
// (insertion-independent) order, stopping at the first failure. It returns
// the IDs of connections it successfully routed and the first error
// encountered, if any; already-routed connections from prior calls are
// left untouched on failure.
func RouteAll(gs *grid.State, connIDs []string) ([]string, error) {
	routed := make([]string, 0, len(connIDs))
	for _, id := range connIDs {
		if _, err := Route(gs, id); err != nil {
			return routed, fmt.Errorf("router: routing %s: %w", id, err)
		}
		routed = append(routed, id)
	}
	return routed, nil
}

// Reroutable reports whether connID currently has a valid path under gs's
// present machine placements, without mutating gs.
func Reroutable(gs *grid.State, connID string) bool {
	conn, ok := gs.Connection(connID)
	if !ok {
		return false
	}
	src, err := gs.SourcePort(conn)
	if err != nil {
		return false
	}
	tgt, err := gs.TargetPort(conn)
	if err != nil {
		return false
	}
	_, err = FindPath(gs, src, tgt, connID)
	return err == nil
}
