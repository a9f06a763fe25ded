package operator

import (
	"sort"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/router"
)

// pickCluster grows a connected set of movable machine IDs by a weighted
// random walk over the connection multigraph: starting from a random
// movable machine, at each step every movable machine adjacent to the
// current set is a candidate, weighted by how many connections link it to
// the set. Growth stops once the set reaches a uniformly chosen target
// size in [minSize, maxSize]. Returns false if fewer than minSize
// connected movable machines are reachable at all.
func pickCluster(gs *grid.State, minSize, maxSize int, r randSource) ([]string, bool) {
	start, ok := pickRandomMovable(gs, r)
	if !ok {
		return nil, false
	}
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < minSize {
		maxSize = minSize
	}
	target := minSize
	if maxSize > minSize {
		target += r.Intn(maxSize - minSize + 1)
	}

	inCluster := map[string]bool{start.ID: true}
	order := []string{start.ID}

	for len(order) < target {
		weights := map[string]int{}
		for id := range inCluster {
			for other, n := range neighborCounts(gs, id) {
				if inCluster[other] {
					continue
				}
				m, ok := gs.Machine(other)
				if !ok || !m.Movable() {
					continue
				}
				weights[other] += n
			}
		}
		if len(weights) == 0 {
			break
		}
		next := weightedPick(weights, r)
		inCluster[next] = true
		order = append(order, next)
	}

	if len(order) < minSize {
		return nil, false
	}
	return order, true
}

// weightedPick draws one key from weights proportional to its weight,
// breaking ties deterministically by key for reproducibility.
func weightedPick(weights map[string]int, r randSource) string {
	keys := make([]string, 0, len(weights))
	total := 0
	for k, w := range weights {
		keys = append(keys, k)
		total += w
	}
	sort.Strings(keys)
	roll := r.Intn(total)
	for _, k := range keys {
		roll -= weights[k]
		if roll < 0 {
			return k
		}
	}
	return keys[len(keys)-1]
}

// clusterState snapshots everything destroyRepair needs to fully restore
// gs if the repair fails partway through.
type clusterState struct {
	machines map[string]machine.Machine
	paths    map[string]grid.BeltPath
	conns    []machine.Connection
}

func snapshotCluster(gs *grid.State, ids []string) clusterState {
	cs := clusterState{machines: map[string]machine.Machine{}, paths: map[string]grid.BeltPath{}}
	touched := map[string]machine.Connection{}
	for _, id := range ids {
		if m, ok := gs.Machine(id); ok {
			cs.machines[id] = m
		}
		for _, c := range connectionsTouching(gs, id) {
			touched[c.ID] = c
		}
	}
	for connID, c := range touched {
		cs.conns = append(cs.conns, c)
		if p, ok := gs.BeltPath(connID); ok {
			cs.paths[connID] = p
		}
	}
	sort.Slice(cs.conns, func(i, j int) bool { return cs.conns[i].ID < cs.conns[j].ID })
	return cs
}

func restoreCluster(gs *grid.State, ids []string, cs clusterState) {
	for _, c := range cs.conns {
		gs.RemoveBeltPath(c.ID)
	}
	for _, id := range ids {
		gs.Remove(id)
	}
	for _, id := range ids {
		if m, ok := cs.machines[id]; ok {
			gs.Place(m)
		}
	}
	for _, c := range cs.conns {
		if p, ok := cs.paths[c.ID]; ok {
			gs.ApplyBeltPath(c.ID, p)
		}
	}
}

// destroyRepair removes every machine in ids from gs, then reinserts them
// one at a time (in decreasing order of external-connection count) via
// repairPlacement, rerouting every connection touching the cluster
// afterward. On any failure -- no valid pose for some machine, or a
// touched connection fails to reroute -- gs is fully restored and
// destroyRepair returns false.
func destroyRepair(gs *grid.State, ids []string, r randSource) bool {
	cs := snapshotCluster(gs, ids)
	inCluster := make(map[string]bool, len(ids))
	for _, id := range ids {
		inCluster[id] = true
	}

	externalCount := make(map[string]int, len(ids))
	for _, id := range ids {
		for _, c := range connectionsTouching(gs, id) {
			other := c.TargetMachine
			if other == id {
				other = c.SourceMachine
			}
			if !inCluster[other] {
				externalCount[id]++
			}
		}
	}
	order := append([]string(nil), ids...)
	sort.Slice(order, func(i, j int) bool {
		if externalCount[order[i]] != externalCount[order[j]] {
			return externalCount[order[i]] > externalCount[order[j]]
		}
		return order[i] < order[j]
	})

	for _, c := range cs.conns {
		gs.RemoveBeltPath(c.ID)
	}
	for _, id := range ids {
		gs.Remove(id)
	}

	for _, id := range order {
		original := cs.machines[id]
		pose, ok := repairPlacement(gs, id, original.Type, repairPose{pos: original.Pos, o: original.Orientation}, r)
		if !ok {
			restoreCluster(gs, ids, cs)
			return false
		}
		next := original
		next.Pos, next.Orientation = pose.pos, pose.o
		if !gs.Place(next) {
			restoreCluster(gs, ids, cs)
			return false
		}
	}

	for _, c := range cs.conns {
		if _, err := router.Route(gs, c.ID); err != nil {
			restoreCluster(gs, ids, cs)
			return false
		}
	}
	return true
}

// clusterDestroyRepair picks a connected cluster of movable machines sized
// within [minSize, maxSize] and destroy-repairs it.
func clusterDestroyRepair(gs *grid.State, minSize, maxSize int, r randSource) bool {
	ids, ok := pickCluster(gs, minSize, maxSize, r)
	if !ok {
		return false
	}
	return destroyRepair(gs, ids, r)
}

// connPain scores a connection's routing difficulty by Manhattan length
// plus a corner-count proxy (one corner per axis change the straight-line
// path would need, approximated as 1 if source and target don't share a
// row or column).
func connPain(gs *grid.State, c machine.Connection) (float64, bool) {
	src, err := gs.SourcePort(c)
	if err != nil {
		return 0, false
	}
	tgt, err := gs.TargetPort(c)
	if err != nil {
		return 0, false
	}
	a, b := machine.ExternalTile(src), machine.ExternalTile(tgt)
	pain := float64(a.ManhattanTo(b))
	if a.X != b.X && a.Y != b.Y {
		pain += 1
	}
	return pain, true
}

// criticalNetFocus ranks connections by pain, picks one uniformly from the
// top 35%, builds a seed cluster from its endpoints plus the most painful
// incident machines (capped at min(maxSize, 4)), and destroy-repairs that
// cluster. If the cluster can't be destroy-repaired, it falls back to
// repairing just the two endpoint machines individually.
func criticalNetFocus(gs *grid.State, maxSize int, r randSource) bool {
	conns := gs.Connections()
	type scored struct {
		conn machine.Connection
		pain float64
	}
	var ranked []scored
	for _, c := range conns {
		if pain, ok := connPain(gs, c); ok {
			ranked = append(ranked, scored{c, pain})
		}
	}
	if len(ranked) == 0 {
		return false
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].pain != ranked[j].pain {
			return ranked[i].pain > ranked[j].pain
		}
		return ranked[i].conn.ID < ranked[j].conn.ID
	})
	topN := (len(ranked)*35 + 99) / 100
	if topN < 1 {
		topN = 1
	}
	pick := ranked[r.Intn(topN)].conn

	clusterCap := maxSize
	if clusterCap > 4 {
		clusterCap = 4
	}

	seed := map[string]bool{}
	var order []string
	addSeed := func(id string) {
		if id == "" || seed[id] {
			return
		}
		if m, ok := gs.Machine(id); ok && m.Movable() {
			seed[id] = true
			order = append(order, id)
		}
	}
	addSeed(pick.SourceMachine)
	addSeed(pick.TargetMachine)

	type painIncident struct {
		id   string
		pain float64
	}
	var incident []painIncident
	for id := range seed {
		for _, c := range connectionsTouching(gs, id) {
			pain, ok := connPain(gs, c)
			if !ok {
				continue
			}
			other := c.TargetMachine
			if other == id {
				other = c.SourceMachine
			}
			if seed[other] {
				continue
			}
			incident = append(incident, painIncident{other, pain})
		}
	}
	sort.Slice(incident, func(i, j int) bool {
		if incident[i].pain != incident[j].pain {
			return incident[i].pain > incident[j].pain
		}
		return incident[i].id < incident[j].id
	})
	for _, pi := range incident {
		if len(order) >= clusterCap {
			break
		}
		addSeed(pi.id)
	}

	if len(order) >= 2 && destroyRepair(gs, order, r) {
		return true
	}

	ok1 := repairSingle(gs, pick.SourceMachine, r)
	ok2 := repairSingle(gs, pick.TargetMachine, r)
	return ok1 || ok2
}

// repairSingle destroy-repairs one machine in isolation, used as
// criticalNetFocus's fallback when the full cluster attempt fails.
func repairSingle(gs *grid.State, id string, r randSource) bool {
	m, ok := gs.Machine(id)
	if !ok || !m.Movable() {
		return false
	}
	return destroyRepair(gs, []string{id}, r)
}
