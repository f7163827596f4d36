/* ============================================================= *\
   asrel.go

   The AS-relationship graph: per-AS adjacency, partitioned into
   providers, peers, and customers. Loaded from a CAIDA-style
   "asn1|asn2|rel" feed.
\* ============================================================= */

package asrel

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/asresil/resilcalc/internal/fileio"
)

// Adjacency holds one AS's neighbors, partitioned by business relationship.
// Order within each slice reflects input order; duplicates are preserved
// since the input is assumed de-duplicated (spec.md section 3).
type Adjacency struct {
	Providers []uint32
	Peers     []uint32
	Customers []uint32
}

// Graph is the in-memory AS-relationship graph for a single run. The
// zero value is an empty graph ready to Load.
type Graph struct {
	adjacency map[uint32]*Adjacency
}

func NewGraph() *Graph {
	return &Graph{adjacency: make(map[uint32]*Adjacency, 65536)}
}

// Load reads filename, one "asn1|asn2|rel" record per line, and records
// the symmetric relationship for each. Blank lines and '#' comments are
// skipped; a malformed line is logged at warn level and skipped. Load
// only fails if the file cannot be opened.
func (g *Graph) Load(filename string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if g.adjacency == nil {
		g.adjacency = make(map[uint32]*Adjacency, 65536)
	}

	r := fileio.NewCompressedReader(filename)
	if err := r.Open(); err != nil {
		return fmt.Errorf("asrel: %w", err)
	}
	defer r.Close()

	scanner := r.Scanner()
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		a, b, rel, ok := parse_record(line)
		if !ok {
			logger.Warn("asrel: malformed line, skipping",
				zap.String("file", filename), zap.Int("line", lineNo), zap.String("text", line))
			continue
		}
		switch rel {
		case -1: // a is a provider of b
			g.append_customer(a, b)
			g.append_provider(b, a)
		case 0: // a and b peer
			g.append_peer(a, b)
			g.append_peer(b, a)
		}
	}
	return nil
}

// Neighbors returns the adjacency record for asn, if one was recorded.
func (g *Graph) Neighbors(asn uint32) (*Adjacency, bool) {
	adj, ok := g.adjacency[asn]
	return adj, ok
}

// Size returns the number of distinct ASes recorded.
func (g *Graph) Size() int {
	return len(g.adjacency)
}

func (g *Graph) entry(asn uint32) *Adjacency {
	adj, ok := g.adjacency[asn]
	if !ok {
		adj = &Adjacency{}
		g.adjacency[asn] = adj
	}
	return adj
}

func (g *Graph) append_provider(asn, provider uint32) {
	e := g.entry(asn)
	e.Providers = append(e.Providers, provider)
}

func (g *Graph) append_customer(asn, customer uint32) {
	e := g.entry(asn)
	e.Customers = append(e.Customers, customer)
}

func (g *Graph) append_peer(asn, peer uint32) {
	e := g.entry(asn)
	e.Peers = append(e.Peers, peer)
}

// parse_record parses "ASN1|ASN2|REL" with REL in {-1, 0}.
func parse_record(line string) (a, b uint32, rel int, ok bool) {
	fields := strings.Split(line, "|")
	if len(fields) != 3 {
		return 0, 0, 0, false
	}
	au, err1 := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 32)
	bu, err2 := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 32)
	r, err3 := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	if r != -1 && r != 0 {
		return 0, 0, 0, false
	}
	return uint32(au), uint32(bu), r, true
}
