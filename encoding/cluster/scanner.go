// Package cluster parses SPRITE cluster files. Each line describes one
// cluster: a cluster identifier followed by whitespace-delimited reads.
// Reads come in one of two encodings, chosen when the scanner is built:
//
//	FormatFull       <readname>_<chrom>:<start>-<end>
//	FormatStartOnly  <chrom>:<start>
package cluster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format selects the read encoding of a cluster file.
type Format int

const (
	// FormatFull parses <readname>_<chrom>:<start>-<end> tokens, as emitted
	// by the current SPRITE pipeline. Read names may themselves contain
	// underscores; the coordinate starts after the last one.
	FormatFull Format = iota
	// FormatStartOnly parses legacy <chrom>:<start> tokens.
	FormatStartOnly
)

func (f Format) String() string {
	if f == FormatStartOnly {
		return "start-only"
	}
	return "full"
}

// Policy decides what happens when a read token fails to parse.
type Policy int

const (
	// Abort stops the scan; the malformed token is reported through Err.
	Abort Policy = iota
	// SkipRead drops the malformed token and keeps the rest of the cluster.
	SkipRead
	// SkipCluster drops the entire cluster containing the malformed token.
	SkipCluster
)

// ErrMalformedRead is wrapped by scan errors caused by an unparseable read
// token under the Abort policy.
var ErrMalformedRead = errors.New("malformed read token")

var errEOF = errors.New("eof")

// Cluster files can carry thousands of reads on a single line, well past
// bufio's default token size.
const maxLineBytes = 64 * 1024 * 1024

// A Read is one genomic location observation within a cluster.
type Read struct {
	Chrom string
	Start int64
	// End is only populated in FormatFull.
	End int64
}

// A Cluster is one line of a cluster file: an identifier plus the reads
// believed to be in spatial proximity to each other.
type Cluster struct {
	ID    string
	Reads []Read
}

// Scanner provides a convenient interface for reading cluster files. The
// Scan method reads the next cluster, returning a boolean indicating whether
// the read succeeded. Scanners are not threadsafe, and once Scan returns
// false it never returns true again.
type Scanner struct {
	b       *bufio.Scanner
	format  Format
	policy  Policy
	err     error
	line    int
	skipped int
}

// NewScanner constructs a Scanner reading raw cluster data from r. The
// malformed-token policy applies uniformly to every token in the stream.
func NewScanner(r io.Reader, format Format, policy Policy) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(nil, maxLineBytes)
	return &Scanner{b: b, format: format, policy: policy}
}

// Scan reads the next cluster into c, reusing c's read slice. Blank lines
// are skipped; a line holding only an identifier is a valid cluster with
// zero reads. Upon completion the user should check Err to distinguish
// end-of-stream from a scan failure.
func (s *Scanner) Scan(c *Cluster) bool {
	if s.err != nil {
		return false
	}
	for s.b.Scan() {
		s.line++
		fields := strings.Fields(s.b.Text())
		if len(fields) == 0 {
			continue
		}
		c.ID = fields[0]
		c.Reads = c.Reads[:0]
		dropped := false
		for _, tok := range fields[1:] {
			r, err := ParseRead(tok, s.format)
			if err != nil {
				switch s.policy {
				case SkipRead:
					s.skipped++
					continue
				case SkipCluster:
					s.skipped++
					dropped = true
				default:
					s.err = fmt.Errorf("line %d: %q: %w: %v", s.line, tok, ErrMalformedRead, err)
					return false
				}
			}
			if dropped {
				break
			}
			c.Reads = append(c.Reads, r)
		}
		if dropped {
			continue
		}
		return true
	}
	if s.err = s.b.Err(); s.err == nil {
		s.err = errEOF
	}
	return false
}

// Err returns the scanning error, if any. It should be checked after Scan
// returns false.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

// Skipped returns the number of tokens (SkipRead) or clusters (SkipCluster)
// dropped by the malformed-token policy so far.
func (s *Scanner) Skipped() int {
	return s.skipped
}

// ParseRead parses a single read token according to format.
func ParseRead(tok string, format Format) (Read, error) {
	var r Read
	coord := tok
	if format == FormatFull {
		i := strings.LastIndexByte(tok, '_')
		if i < 0 {
			return r, fmt.Errorf("no read name delimiter in %q", tok)
		}
		coord = tok[i+1:]
	}
	chrom, pos, ok := strings.Cut(coord, ":")
	if !ok || chrom == "" {
		return r, fmt.Errorf("no chromosome delimiter in %q", tok)
	}
	r.Chrom = chrom
	var err error
	if format == FormatStartOnly {
		if r.Start, err = strconv.ParseInt(pos, 10, 64); err != nil {
			return Read{}, fmt.Errorf("bad start position in %q", tok)
		}
		return r, nil
	}
	startStr, endStr, ok := strings.Cut(pos, "-")
	if !ok {
		return Read{}, fmt.Errorf("no position range in %q", tok)
	}
	if r.Start, err = strconv.ParseInt(startStr, 10, 64); err != nil {
		return Read{}, fmt.Errorf("bad start position in %q", tok)
	}
	if r.End, err = strconv.ParseInt(endStr, 10, 64); err != nil {
		return Read{}, fmt.Errorf("bad end position in %q", tok)
	}
	if r.End < r.Start {
		return Read{}, fmt.Errorf("start past end in %q", tok)
	}
	return r, nil
}
