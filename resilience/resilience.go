/* ============================================================= *\
   resilience.go

   Turns a set of per-destination BFS path classes (section 4.3)
   into a normalized resilience score per candidate AS (section 4.4).
\* ============================================================= */

package resilience

import (
	"sort"

	"github.com/asresil/resilcalc/bfs"
)

// Rank scores every candidate ASN against the BFS result set for a single
// source AS. records must not include the source's own entry; vertexCount
// is the total AS count used for the |V|-2 normalizer. Candidates absent
// from records (unreached, or the source itself) score 0.
func Rank(records map[uint32]*bfs.PathClass, vertexCount int, candidates []uint32) map[uint32]float64 {
	scores := make(map[uint32]float64, len(candidates))
	for _, c := range candidates {
		scores[c] = 0
	}

	if vertexCount <= 2 {
		return scores
	}

	entries := make([]*bfs.PathClass, 0, len(records))
	for _, r := range records {
		entries = append(entries, r)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Uphill != entries[j].Uphill {
			return entries[i].Uphill > entries[j].Uphill
		}
		return entries[i].Weight > entries[j].Weight
	})

	unreached := vertexCount - 1 - len(entries)

	nodes := 0
	normalizer := float64(vertexCount - 2)

	for i := 0; i < len(entries); {
		j := i
		var eqPath int64
		for j < len(entries) && entries[j].Uphill == entries[i].Uphill && entries[j].Weight == entries[i].Weight {
			eqPath += entries[j].EqualPaths
			j++
		}
		eqNodes := j - i

		for k := i; k < j; k++ {
			e := entries[k]
			if _, wanted := scores[e.Asn]; !wanted {
				continue
			}
			var raw float64
			if eqNodes == 1 {
				raw = float64(nodes + unreached)
			} else {
				raw = float64(nodes+unreached) + float64(e.EqualPaths)/float64(eqPath)
			}
			scores[e.Asn] = raw / normalizer
		}

		nodes += eqNodes
		i = j
	}

	return scores
}
