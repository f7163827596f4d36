/* ============================================================= *\
   resilcalc.go

   The orchestrator: wires the IP->ASN index and the AS-relationship
   graph together, runs the layered BFS from a source AS, and ranks
   candidate relay ASes by resilience score.
\* ============================================================= */

package resilcalc

import (
	"errors"
	"fmt"
	"net"
	"sync"

	pool "github.com/Emeline-1/pool"
	"go.uber.org/zap"

	"github.com/asresil/resilcalc/asrel"
	"github.com/asresil/resilcalc/bfs"
	"github.com/asresil/resilcalc/internal/xset"
	"github.com/asresil/resilcalc/ipasn"
	"github.com/asresil/resilcalc/resilience"
)

// ErrInputUnavailable is returned when a required data file (the
// AS-relationship feed or the IP->ASN index) could not be opened.
var ErrInputUnavailable = errors.New("resilcalc: required input file unavailable")

// ErrResolveSelfFailed is returned when the source IP is not IPv4 or has
// no ASN in the IP->ASN index.
var ErrResolveSelfFailed = errors.New("resilcalc: could not resolve source AS")

// Config names the two CAIDA-style input files the calculator loads.
type Config struct {
	AsRelFile string
	Ip2AsFile string
}

// Calculator holds the loaded AS-relationship graph and IP->ASN index for
// a single run. Build one with New and reuse it across calls; it holds no
// per-call mutable state.
type Calculator struct {
	graph  *asrel.Graph
	index  *ipasn.Index
	logger *zap.Logger
}

// New loads cfg's two input files concurrently and returns a ready
// Calculator. Loading the relationship graph and the IP->ASN index is
// independent work, so it is handed to a worker pool the way the
// reference loader processes a batch of input files (readers.go's
// parse_warts), rather than sequentially.
func New(cfg Config, logger *zap.Logger) (*Calculator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Calculator{
		graph:  asrel.NewGraph(),
		index:  ipasn.NewIndex(),
		logger: logger,
	}

	files := []string{cfg.AsRelFile, cfg.Ip2AsFile}
	var mux sync.Mutex
	var loadErr error
	load_one := func(filename string) {
		var err error
		switch filename {
		case cfg.AsRelFile:
			err = c.graph.Load(filename, logger)
		case cfg.Ip2AsFile:
			err = c.index.Load(filename, logger)
		}
		if err != nil {
			mux.Lock()
			loadErr = err
			mux.Unlock()
		}
	}
	pool.Launch_pool(2, files, load_one)

	if loadErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, loadErr)
	}

	logger.Info("resilcalc: loaded inputs",
		zap.Int("as_count", c.graph.Size()),
		zap.Int("ip_ranges", c.index.Size()))

	return c, nil
}

// ComputeResil runs the layered BFS from selfAsn and ranks the given
// candidate ASes by resilience score. This is the direct Go equivalent
// of the reference compute_resil entry point.
func (c *Calculator) ComputeResil(selfAsn uint32, candidates []uint32) map[uint32]float64 {
	records := bfs.Run(c.graph, selfAsn)
	delete(records, selfAsn)
	return resilience.Rank(records, c.graph.Size(), candidates)
}

// RunBFS exposes the raw per-AS path classes reached from selfAsn,
// source included, for diagnostics (the explain CLI subcommand).
func (c *Calculator) RunBFS(selfAsn uint32) map[uint32]*bfs.PathClass {
	return bfs.Run(c.graph, selfAsn)
}

// ComputeNodeASResiliency mirrors compute_node_as_resiliency from the
// reference client: it resolves the source and candidate IPs to ASNs via
// the loaded IP->ASN index, then scores each candidate. The returned map
// is keyed by the candidate IP's string form so callers never have to
// re-derive which ASN a given address resolved to.
func (c *Calculator) ComputeNodeASResiliency(selfIP net.IP, candidateIPs []net.IP) (map[string]float64, error) {
	selfAsn, err := c.resolveIP(selfIP)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResolveSelfFailed, err)
	}

	// Resolving each candidate IP only touches the read-only index, so a
	// pool of workers can do it concurrently; resolved ASNs land in a
	// shared set the way parse_warts fans out into a SafeSet.
	resolved := xset.New()
	addrs := make([]string, len(candidateIPs))
	for i, ip := range candidateIPs {
		addrs[i] = ip.String()
	}
	resolve_one := func(addr string) {
		ip := net.ParseIP(addr)
		asn, err := c.resolveIP(ip)
		if err != nil {
			c.logger.Warn("resilcalc: could not resolve candidate IP, scoring 0", zap.String("ip", addr))
			return
		}
		resolved.Add(asn, addr)
	}
	pool.Launch_pool(8, addrs, resolve_one)

	scores := c.ComputeResil(selfAsn, resolved.Keys())

	result := make(map[string]float64, len(candidateIPs))
	for _, addr := range addrs {
		result[addr] = 0
	}
	for _, asn := range resolved.Keys() {
		for _, addr := range resolved.Values(asn) {
			result[addr] = scores[asn]
		}
	}
	return result, nil
}

func (c *Calculator) resolveIP(ip net.IP) (uint32, error) {
	v4 := ip.To4()
	if v4 == nil {
		return 0, fmt.Errorf("resilcalc: %s is not an IPv4 address", ip)
	}
	asn := c.index.Lookup(ipToUint32(v4))
	if asn == 0 {
		return 0, fmt.Errorf("resilcalc: no ASN mapping found for %s", ip)
	}
	return asn, nil
}

func ipToUint32(v4 net.IP) uint32 {
	return uint32(v4[0])<<24 | uint32(v4[1])<<16 | uint32(v4[2])<<8 | uint32(v4[3])
}
