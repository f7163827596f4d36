/* ============================================================= *\
   bfs.go

   The layered valley-free BFS (spec section 4.3): phases pc, pp,
   cp run in that fixed order against a source ASN, producing a
   (weight, uphill, equal_paths) triple for every reachable AS.
\* ============================================================= */

package bfs

import (
	"sort"

	"github.com/asresil/resilcalc/asrel"
)

// PathClass is the per-AS result of one BFS run: the best valley-free
// path class found from the source, plus how many paths of that exact
// class exist.
type PathClass struct {
	Asn        uint32
	Weight     int
	Uphill     int
	EqualPaths int64
}

// Run computes, for every AS reachable from source under the valley-free
// model, its best (weight, uphill) path class and the count of equally
// optimal paths achieving it. The returned map includes source itself
// (weight 0, uphill 0, equal_paths 1); callers that need only the
// destinations should exclude source, per spec section 4.4.
func Run(g *asrel.Graph, source uint32) map[uint32]*PathClass {
	records := map[uint32]*PathClass{
		source: {Asn: source, Weight: 0, Uphill: 0, EqualPaths: 1},
	}
	vertex_count := g.Size()

	run_phase_pc(records, g, []uint32{source})
	run_phase_pp(records, g, sorted_keys(records), vertex_count)
	run_phase_cp(records, g, source, vertex_count)

	return records
}

func sorted_keys(records map[uint32]*PathClass) []uint32 {
	keys := make([]uint32, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// run_phase_pc is phase pc: BFS over provider edges (customer->provider)
// seeded at the given frontier.
func run_phase_pc(records map[uint32]*PathClass, g *asrel.Graph, seeds []uint32) {
	q := new_queue()
	for _, s := range seeds {
		q.enqueue(s)
	}
	drain_providers(records, g, q)
}

// drain_providers applies the standard provider-BFS rule to whatever is
// already queued: create on first arrival, aggregate equal_paths on a
// matching-depth re-arrival, otherwise ignore. Used by both phase pc and
// the provider-chain tail of phase pp.
func drain_providers(records map[uint32]*PathClass, g *asrel.Graph, q *as_queue) {
	for {
		u, ok := q.dequeue()
		if !ok {
			return
		}
		ur := records[u]
		adj, found := g.Neighbors(u)
		if !found {
			continue
		}
		for _, v := range adj.Providers {
			if vr, exists := records[v]; !exists {
				records[v] = &PathClass{Asn: v, Weight: ur.Weight + 1, Uphill: ur.Uphill, EqualPaths: ur.EqualPaths}
				q.enqueue(v)
			} else if vr.Weight == ur.Weight+1 {
				vr.EqualPaths += ur.EqualPaths
			}
		}
	}
}

// run_phase_pp is phase pp: a single peer hop out of every AS in
// frontier, then drained by the same provider-BFS rule as phase pc.
// Peer edges are never repeated; only the fresh arrivals seeded here
// get enqueued, so the drain below only ever walks provider edges.
func run_phase_pp(records map[uint32]*PathClass, g *asrel.Graph, frontier []uint32, vertex_count int) {
	q := new_queue()
	for _, u := range frontier {
		ur, exists := records[u]
		if !exists {
			continue
		}
		adj, found := g.Neighbors(u)
		if !found {
			continue
		}
		for _, v := range adj.Peers {
			if _, exists := records[v]; !exists {
				records[v] = &PathClass{Asn: v, Weight: ur.Weight + vertex_count, Uphill: ur.Uphill, EqualPaths: ur.EqualPaths}
				q.enqueue(v)
			}
		}
	}
	drain_providers(records, g, q)
}

// run_phase_cp is phase cp: the layered downhill sweep over customer
// edges (provider->customer). Every time the walk opens a new uphill
// layer, the frontier just discovered at that layer gets a full
// pc-then-pp re-sweep before the downhill walk resumes, per spec
// section 4.3's layering rule.
func run_phase_cp(records map[uint32]*PathClass, g *asrel.Graph, source uint32, vertex_count int) {
	q := new_queue()
	q.enqueue(source)

	current_layer := 0
	var next_layer []uint32

	for {
		u, ok := q.dequeue()
		if !ok {
			break
		}
		ur := records[u]
		if ur.Uphill > current_layer {
			run_phase_pc(records, g, next_layer)
			run_phase_pp(records, g, next_layer, vertex_count)
			next_layer = nil
			current_layer = ur.Uphill
		}

		adj, found := g.Neighbors(u)
		if !found {
			continue
		}
		for _, v := range adj.Customers {
			if vr, exists := records[v]; !exists {
				records[v] = &PathClass{Asn: v, Weight: ur.Weight, Uphill: ur.Uphill + 1, EqualPaths: ur.EqualPaths}
				q.enqueue(v)
				next_layer = append(next_layer, v)
			} else if vr.Uphill == ur.Uphill+1 {
				vr.EqualPaths += ur.EqualPaths
			}
		}
	}

	if len(next_layer) > 0 {
		run_phase_pc(records, g, next_layer)
		run_phase_pp(records, g, next_layer, vertex_count)
	}
}
