/* ============================================================= *\
   asciitree.go

   A box-drawing tree printer, adapted from the upstream
   Tufin/asciitree design the reference tool vendored: Add inserts
   a path (here: uphill layer / weight / ASN), Fprint renders it
   with the usual box-drawing connectors.
\* ============================================================= */

package asciitree

import (
	"fmt"
	"io"
)

// Tree is a path-keyed tree; every node is itself a Tree.
type Tree map[string]Tree

// Add inserts path into the tree, creating any missing intermediate
// nodes.
func (tree Tree) Add(path []string) {
	if len(path) == 0 {
		return
	}
	next, ok := tree[path[0]]
	if !ok {
		next = Tree{}
		tree[path[0]] = next
	}
	next.Add(path[1:])
}

// Fprint writes the tree to w using box-drawing characters, sorted by
// key at each level for deterministic output.
func (tree Tree) Fprint(w io.Writer, keys []string, padding string) {
	for i, k := range keys {
		last := i+1 == len(keys)
		fmt.Fprintf(w, "%s%s%s\n", padding, branch(last), k)
		child := tree[k]
		child.Fprint(w, child.SortedKeys(), padding+continuation(last))
	}
}

// SortedKeys returns the tree's immediate child keys in ascending order.
func (tree Tree) SortedKeys() []string {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	insertionSort(keys)
	return keys
}

func branch(last bool) string {
	if last {
		return "└─ "
	}
	return "├─ "
}

func continuation(last bool) string {
	if last {
		return "   "
	}
	return "│  "
}

// insertionSort keeps asciitree dependency-free; the lists it sorts
// (per-level child counts) are small enough that O(n^2) is fine.
func insertionSort(keys []string) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}
