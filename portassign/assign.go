package portassign

import (
	"sort"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/router"
	"github.com/beltforge/layoutcore/score"
)

// Assign runs Phase 3 port reassignment against gs: it proposes a new
// port pairing for every connection and commits the proposal only if it
// routes to a result at least as good as what gs already had.
//
// The proposal walks connections longest-first (by current external-tile
// Manhattan distance) and, for each, picks among that connection's two
// machines' currently-unused ports the (output, input) pair minimizing
// Manhattan distance, reserving both ports before moving to the next
// connection so no port is ever double-booked within the proposal.
//
// Both the original and the proposed connection lists are built and
// routed against independent clones of gs; whichever routes to the lower
// total score is returned. If only one routes, it wins outright. If
// neither routes, the two are compared by the cheap proxy score instead.
func Assign(gs *grid.State, scoreCfg score.Config) *grid.State {
	original := gs.Connections()
	if len(original) == 0 {
		return gs.Clone()
	}
	proposed := proposeAssignment(gs, original)

	origState, origRouted := buildAndRoute(gs, original)
	propState, propRouted := buildAndRoute(gs, proposed)

	switch {
	case origRouted && propRouted:
		origScore := score.EvaluateRouted(origState, original, scoreCfg)
		propScore := score.EvaluateRouted(propState, proposed, scoreCfg)
		if score.Compare(propScore, origScore, scoreCfg) < 0 {
			return propState
		}
		return origState
	case origRouted:
		return origState
	case propRouted:
		return propState
	default:
		origScore := score.EvaluateProxy(origState, original, scoreCfg)
		propScore := score.EvaluateProxy(propState, proposed, scoreCfg)
		if score.Compare(propScore, origScore, scoreCfg) < 0 {
			return propState
		}
		return origState
	}
}

// proposeAssignment builds the reassigned connection list described by
// Assign's doc comment, leaving gs untouched.
func proposeAssignment(gs *grid.State, conns []machine.Connection) []machine.Connection {
	order := append([]machine.Connection{}, conns...)
	sort.Slice(order, func(i, j int) bool {
		return estimatedLength(gs, order[i]) > estimatedLength(gs, order[j])
	})

	usedOut := make(map[string]map[int]bool)
	usedIn := make(map[string]map[int]bool)
	out := make([]machine.Connection, 0, len(order))

	for _, c := range order {
		srcM, ok := gs.Machine(c.SourceMachine)
		if !ok {
			out = append(out, c)
			continue
		}
		tgtM, ok := gs.Machine(c.TargetMachine)
		if !ok {
			out = append(out, c)
			continue
		}
		_, outputs, err := machine.Ports(srcM)
		if err != nil {
			out = append(out, c)
			continue
		}
		inputs, _, err := machine.Ports(tgtM)
		if err != nil {
			out = append(out, c)
			continue
		}

		bestOut, bestIn, bestDist := c.SourcePort, c.TargetPort, -1
		for oi, op := range outputs {
			if usedOut[c.SourceMachine][oi] {
				continue
			}
			for ii, ip := range inputs {
				if usedIn[c.TargetMachine][ii] {
					continue
				}
				d := machine.ExternalTile(op).ManhattanTo(machine.ExternalTile(ip))
				if bestDist == -1 || d < bestDist {
					bestOut, bestIn, bestDist = oi, ii, d
				}
			}
		}

		if usedOut[c.SourceMachine] == nil {
			usedOut[c.SourceMachine] = make(map[int]bool)
		}
		if usedIn[c.TargetMachine] == nil {
			usedIn[c.TargetMachine] = make(map[int]bool)
		}
		usedOut[c.SourceMachine][bestOut] = true
		usedIn[c.TargetMachine][bestIn] = true

		nc := c
		nc.SourcePort, nc.TargetPort = bestOut, bestIn
		out = append(out, nc)
	}

	return out
}

// estimatedLength returns the Manhattan distance between a connection's
// currently-assigned ports' external tiles, the cheap ranking key Assign
// visits connections in (longest first).
func estimatedLength(gs *grid.State, c machine.Connection) int {
	src, err := gs.SourcePort(c)
	if err != nil {
		return 0
	}
	tgt, err := gs.TargetPort(c)
	if err != nil {
		return 0
	}
	return machine.ExternalTile(src).ManhattanTo(machine.ExternalTile(tgt))
}

// buildAndRoute clones gs, rewires it to exactly conns (replacing each
// connection's port assignment), and routes every one of them. It reports
// whether every connection routed successfully.
func buildAndRoute(gs *grid.State, conns []machine.Connection) (*grid.State, bool) {
	clone := gs.Clone()
	for _, c := range conns {
		clone.Disconnect(c.ID)
	}
	ids := make([]string, 0, len(conns))
	for _, c := range conns {
		if _, err := clone.Connect(c); err != nil {
			continue
		}
		ids = append(ids, c.ID)
	}
	routed, err := router.RouteAll(clone, ids)
	return clone, err == nil && len(routed) == len(conns)
}
