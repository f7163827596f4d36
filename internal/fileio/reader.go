/* ============================================================= *\
   reader.go

   A decompression-transparent line reader for the CAIDA-style feed
   files (AS-relationship, IP->ASN). CAIDA distributes these as
   plain text, gzip, or bzip2; callers should not have to care.
\* ============================================================= */

package fileio

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// CompressedReader opens a file and exposes a line scanner over its
// decompressed contents. The compression scheme is inferred from the
// file extension; anything else is treated as plain text.
type CompressedReader struct {
	filename     string
	fp           *os.File
	to_close     io.Closer
	decompressed io.Reader
}

func NewCompressedReader(filename string) *CompressedReader {
	return &CompressedReader{filename: filename}
}

func (r *CompressedReader) Open() error {
	var err error
	r.fp, err = os.Open(r.filename)
	if err != nil {
		return fmt.Errorf("fileio: open %s: %w", r.filename, err)
	}

	switch {
	case strings.HasSuffix(r.filename, ".gz"):
		gz, err := gzip.NewReader(r.fp)
		if err != nil {
			r.fp.Close()
			return fmt.Errorf("fileio: gzip %s: %w", r.filename, err)
		}
		r.to_close = gz
		r.decompressed = gz
	case strings.HasSuffix(r.filename, ".bz2"):
		r.decompressed = bzip2.NewReader(r.fp)
	default:
		r.decompressed = r.fp
	}
	return nil
}

func (r *CompressedReader) Scanner() *bufio.Scanner {
	return bufio.NewScanner(r.decompressed)
}

func (r *CompressedReader) Close() error {
	if r.to_close != nil {
		r.to_close.Close()
	}
	return r.fp.Close()
}
