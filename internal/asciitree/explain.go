package asciitree

import (
	"fmt"

	"github.com/asresil/resilcalc/bfs"
)

// FromRecords groups BFS results into a tree keyed first by uphill layer,
// then by weight, then by ASN, for the explain CLI subcommand.
func FromRecords(records map[uint32]*bfs.PathClass) Tree {
	tree := Tree{}
	for asn, r := range records {
		tree.Add([]string{
			fmt.Sprintf("uphill=%d", r.Uphill),
			fmt.Sprintf("weight=%d", r.Weight),
			fmt.Sprintf("AS%d (equal_paths=%d)", asn, r.EqualPaths),
		})
	}
	return tree
}
