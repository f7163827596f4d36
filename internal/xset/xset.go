/* ============================================================= *\
   xset.go

   A mutex-protected set of ASNs, adapted from the reference
   SafeSet: concurrent workers resolving candidate IPs to ASNs
   share one of these without racing each other.
\* ============================================================= */

package xset

import "sync"

// AsnSet is a concurrency-safe set of ASNs, with each ASN remembering
// every value it was added with, in the order the adds happened.
type AsnSet struct {
	mux sync.Mutex
	set map[uint32][]string
}

func New() *AsnSet {
	return &AsnSet{set: make(map[uint32][]string)}
}

// Add records value under asn, creating the entry if this is the first
// time asn has been seen. Returns true if asn was newly added.
func (s *AsnSet) Add(asn uint32, value string) (newAsn bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	_, exists := s.set[asn]
	s.set[asn] = append(s.set[asn], value)
	return !exists
}

// Contains reports whether asn has been added at least once.
func (s *AsnSet) Contains(asn uint32) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	_, ok := s.set[asn]
	return ok
}

// Keys returns every distinct ASN added so far, in no particular order.
func (s *AsnSet) Keys() []uint32 {
	s.mux.Lock()
	defer s.mux.Unlock()
	keys := make([]uint32, 0, len(s.set))
	for k := range s.set {
		keys = append(keys, k)
	}
	return keys
}

// Values returns every value recorded under asn.
func (s *AsnSet) Values(asn uint32) []string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.set[asn]
}
