package resilience

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asresil/resilcalc/bfs"
)

func TestRank_TriangleScenario(t *testing.T) {
	// Scenario 1 from spec.md section 8, continued: both AS2 and AS3 tie
	// at the same (weight, uphill) class, so they split the class's raw
	// score by their share of equal_paths.
	records := map[uint32]*bfs.PathClass{
		2: {Asn: 2, Weight: 0, Uphill: 1, EqualPaths: 1},
		3: {Asn: 3, Weight: 0, Uphill: 1, EqualPaths: 1},
	}
	scores := Rank(records, 3, []uint32{2, 3})
	assert.InDelta(t, 0.5, scores[2], 1e-9)
	assert.InDelta(t, 0.5, scores[3], 1e-9)
}

func TestRank_ProviderChainScenario(t *testing.T) {
	// Scenario 2 from spec.md section 8: two singleton classes, sorted by
	// weight descending since both share uphill=0.
	records := map[uint32]*bfs.PathClass{
		1: {Asn: 1, Weight: 2, Uphill: 0, EqualPaths: 1},
		2: {Asn: 2, Weight: 1, Uphill: 0, EqualPaths: 1},
	}
	scores := Rank(records, 3, []uint32{1, 2})
	assert.InDelta(t, 0.0, scores[1], 1e-9)
	assert.InDelta(t, 1.0, scores[2], 1e-9)
}

func TestRank_PeerPairScenario(t *testing.T) {
	// Scenario 3 from spec.md section 8: |V|=2 degenerates the |V|-2
	// normalizer, so every candidate scores 0.
	records := map[uint32]*bfs.PathClass{
		2: {Asn: 2, Weight: 2, Uphill: 0, EqualPaths: 1},
	}
	scores := Rank(records, 2, []uint32{2})
	assert.Equal(t, 0.0, scores[2])
}

func TestRank_UnreachedCandidateScoresZero(t *testing.T) {
	// Scenario 6 from spec.md section 8: a candidate ASN never reached by
	// the BFS defaults to 0.
	records := map[uint32]*bfs.PathClass{
		2: {Asn: 2, Weight: 1, Uphill: 0, EqualPaths: 1},
	}
	scores := Rank(records, 4, []uint32{2, 999})
	assert.Equal(t, 0.0, scores[999])
}

func TestRank_MoreAttractiveDestinationScoresHigher(t *testing.T) {
	// spec.md section 4.4: sorting is (uphill desc, weight desc) and later
	// entries (low uphill, low weight — "more attractive" per the text)
	// accumulate a larger nodes count, so AS20 here outscores AS10.
	records := map[uint32]*bfs.PathClass{
		10: {Asn: 10, Weight: 5, Uphill: 2, EqualPaths: 1},
		20: {Asn: 20, Weight: 1, Uphill: 0, EqualPaths: 1},
	}
	scores := Rank(records, 5, []uint32{10, 20})
	assert.Greater(t, scores[20], scores[10])
}

func TestRank_TiedClassBoundedSpread(t *testing.T) {
	// Invariant from spec.md section 8: raw scores within a shared class
	// differ by at most 1 - 1/eq_nodes.
	records := map[uint32]*bfs.PathClass{
		1: {Asn: 1, Weight: 0, Uphill: 0, EqualPaths: 1},
		2: {Asn: 2, Weight: 0, Uphill: 0, EqualPaths: 3},
	}
	scores := Rank(records, 10, []uint32{1, 2})
	diff := scores[2] - scores[1]
	bound := (1 - 1.0/2) / float64(10-2)
	assert.LessOrEqual(t, diff, bound+1e-9)
}
