package bfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asresil/resilcalc/asrel"
)

func build_graph(t *testing.T, lines string) *asrel.Graph {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "as-rel.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	g := asrel.NewGraph()
	require.NoError(t, g.Load(path, nil))
	return g
}

func TestRun_Triangle(t *testing.T) {
	// Scenario 1 from spec.md section 8: 1|2|-1, 2|3|-1, 1|3|-1, source=1.
	// 1 is a provider of both 2 and 3 (2 is also a provider of 3), so
	// phase cp reaches both at a single downhill hop. Their provider edges
	// lead only to ASes that already have records, so the pc re-sweep adds
	// nothing, and the later 2->3 customer edge is one layer too deep to
	// add to 3's equal_paths.
	g := build_graph(t, "1|2|-1\n2|3|-1\n1|3|-1\n")
	records := Run(g, 1)

	require.Contains(t, records, uint32(2))
	require.Contains(t, records, uint32(3))
	assert.Equal(t, 0, records[2].Weight)
	assert.Equal(t, 1, records[2].Uphill)
	assert.Equal(t, int64(1), records[2].EqualPaths)
	assert.Equal(t, 0, records[3].Weight)
	assert.Equal(t, 1, records[3].Uphill)
	assert.Equal(t, int64(1), records[3].EqualPaths)
}

func TestRun_ProviderChain(t *testing.T) {
	// Scenario 2 from spec.md section 8: 1|2|-1, 2|3|-1, source=3. AS3 is
	// the bottommost customer; phase pc climbs the provider chain to 2
	// then to 1, accumulating weight with zero uphill at each hop.
	g := build_graph(t, "1|2|-1\n2|3|-1\n")
	records := Run(g, 3)

	require.Contains(t, records, uint32(2))
	require.Contains(t, records, uint32(1))
	assert.Equal(t, 1, records[2].Weight)
	assert.Equal(t, 0, records[2].Uphill)
	assert.Equal(t, 2, records[1].Weight)
	assert.Equal(t, 0, records[1].Uphill)
}

func TestRun_PeerPair(t *testing.T) {
	// Scenario 3 from spec.md section 8: 1|2|0, source=1.
	g := build_graph(t, "1|2|0\n")
	records := Run(g, 1)

	require.Contains(t, records, uint32(2))
	assert.Equal(t, g.Size(), records[2].Weight)
	assert.Equal(t, 0, records[2].Uphill)
	assert.Equal(t, int64(1), records[2].EqualPaths)
}

func TestRun_SourceRecordIsSeeded(t *testing.T) {
	g := build_graph(t, "1|2|-1\n")
	records := Run(g, 1)
	require.Contains(t, records, uint32(1))
	assert.Equal(t, 0, records[1].Weight)
	assert.Equal(t, 0, records[1].Uphill)
	assert.Equal(t, int64(1), records[1].EqualPaths)
}

func TestRun_EqualPathsAggregateAcrossMultipleProviders(t *testing.T) {
	// 3 has two providers, 1 and 2, both of which share a common further
	// provider 4. Both paths 3->1->4 and 3->2->4 reach 4 at the same
	// weight, so equal_paths at 4 should be the sum, not 1.
	g := build_graph(t, "1|3|-1\n2|3|-1\n4|1|-1\n4|2|-1\n")
	records := Run(g, 3)

	require.Contains(t, records, uint32(4))
	assert.Equal(t, 2, records[4].Weight)
	assert.Equal(t, 0, records[4].Uphill)
	assert.Equal(t, int64(2), records[4].EqualPaths)
}

func TestRun_UnreachableASIsAbsent(t *testing.T) {
	g := build_graph(t, "1|2|-1\n3|4|-1\n")
	records := Run(g, 1)
	assert.NotContains(t, records, uint32(3))
	assert.NotContains(t, records, uint32(4))
}

func TestRun_DownhillLayersReopenProviderAndPeerExploration(t *testing.T) {
	// 1 is provider of 2 (downhill, layer 1). 2 peers with 5, which in
	// turn has provider 6. The layer-1 re-sweep should surface 5 and 6
	// even though neither is reachable via a pure customer-edge walk
	// from 1.
	g := build_graph(t, "1|2|-1\n2|5|0\n6|5|-1\n")
	records := Run(g, 1)

	require.Contains(t, records, uint32(2))
	assert.Equal(t, 1, records[2].Uphill)

	require.Contains(t, records, uint32(5))
	require.Contains(t, records, uint32(6))
}

func TestRun_MonotoneWeightForProviderChainOnly(t *testing.T) {
	g := build_graph(t, "1|2|-1\n2|3|-1\n3|4|-1\n")
	records := Run(g, 4)

	for _, asn := range []uint32{3, 2, 1} {
		require.Contains(t, records, asn)
		assert.Equal(t, 0, records[asn].Uphill)
	}
	assert.True(t, records[3].Weight < records[2].Weight)
	assert.True(t, records[2].Weight < records[1].Weight)
}
