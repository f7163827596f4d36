/* ============================================================= *\
   ipasn.go

   IP -> ASN index. Loads a CAIDA-style ip2as CSV (two accepted
   grammars, see parse_line) into a slice of ranges sorted by
   ip_low, and answers point queries by binary search.
\* ============================================================= */

package ipasn

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/asresil/resilcalc/internal/fileio"
)

// Range is one (ip_low, ip_high, asn) record from the ip2as feed.
// Bounds are IPv4 addresses in host byte order, as spec.md requires.
type Range struct {
	Low  uint32
	High uint32
	Asn  uint32
}

// Index is an ordered, binary-searchable IP->ASN table. The zero value
// is an empty index ready to Load.
type Index struct {
	ranges []Range // sorted ascending by Low after Load
}

func NewIndex() *Index {
	return &Index{}
}

// Load reads filename and replaces the index's contents. Blank lines and
// lines starting with '#' are skipped; a line that matches neither
// accepted grammar is logged at warn level and skipped. Load only fails
// if the file cannot be opened.
func (idx *Index) Load(filename string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := fileio.NewCompressedReader(filename)
	if err := r.Open(); err != nil {
		return fmt.Errorf("ipasn: %w", err)
	}
	defer r.Close()

	ranges := make([]Range, 0, 1024)
	scanner := r.Scanner()
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		low, high, asn, ok := parse_line(line)
		if !ok {
			logger.Warn("ipasn: malformed line, skipping",
				zap.String("file", filename), zap.Int("line", lineNo), zap.String("text", line))
			continue
		}
		if high < low {
			logger.Warn("ipasn: inverted range, skipping",
				zap.String("file", filename), zap.Int("line", lineNo))
			continue
		}
		ranges = append(ranges, Range{Low: low, High: high, Asn: asn})
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Low < ranges[j].Low })
	idx.ranges = ranges
	return nil
}

// Lookup returns the ASN whose range contains ip, or 0 (unknown) if no
// range matches. Runs in O(log N) via binary search on ip_low.
func (idx *Index) Lookup(ip uint32) uint32 {
	n := len(idx.ranges)
	i := sort.Search(n, func(i int) bool { return idx.ranges[i].Low > ip })
	// idx.ranges[i-1] is the last range whose Low <= ip, if any.
	if i == 0 {
		return 0
	}
	rng := idx.ranges[i-1]
	if ip < rng.Low || ip > rng.High {
		return 0
	}
	return rng.Asn
}

// Size returns the number of loaded ranges.
func (idx *Index) Size() int {
	return len(idx.ranges)
}

// parse_line accepts the two grammars spec.md allows:
//
//	LOW,HIGH,ASN
//	"LOW","HIGH","ASN",
func parse_line(line string) (low, high, asn uint32, ok bool) {
	fields := split_csv_fields(line)
	if len(fields) < 3 {
		return 0, 0, 0, false
	}
	l, err1 := strconv.ParseUint(fields[0], 10, 32)
	h, err2 := strconv.ParseUint(fields[1], 10, 32)
	a, err3 := strconv.ParseUint(fields[2], 10, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return uint32(l), uint32(h), uint32(a), true
}

// split_csv_fields splits a comma-separated line into trimmed fields,
// stripping a surrounding quote pair and any trailing comma/whitespace
// from each one. It tolerates both "1,2,3" and "\"1\",\"2\",\"3\",".
func split_csv_fields(line string) []string {
	raw := strings.Split(line, ",")
	fields := make([]string, 0, len(raw))
	for _, f := range raw {
		f = strings.TrimSpace(f)
		f = strings.Trim(f, "\"")
		if f == "" {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}
