// Package genome loads the genomic size reference consumed by the
// SpriteVisu viewer. The reference is a JSON document whose top-level
// "chromosomes" object maps chromosome name to length:
//
//	{"chromosomes": {"chr1": 248956422, "chr2": 242193529}}
//
// The loaded mapping defines the universe of valid chromosome names for
// contact generation and is re-emitted verbatim as meta.json in the output
// directory.
package genome

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"sort"

	"github.com/grailbio/base/file"
	"github.com/pkg/errors"
)

// MetaFilename is the name of the size reference copy written next to the
// contact files for the downstream viewer.
const MetaFilename = "meta.json"

// Sizes holds a chromosome name -> length mapping parsed from a size
// reference file. It is immutable after New.
type Sizes struct {
	chromosomes map[string]int64
	names       []string
	raw         []byte
}

type reference struct {
	Chromosomes map[string]int64 `json:"chromosomes"`
}

// New parses a size reference from r. The original bytes are retained so
// Export can reproduce the reference exactly.
func New(r io.Reader) (*Sizes, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't read genomic size reference")
	}
	var ref reference
	if err := json.Unmarshal(raw, &ref); err != nil {
		return nil, errors.Wrap(err, "malformed genomic size reference")
	}
	if len(ref.Chromosomes) == 0 {
		return nil, errors.Errorf(`genomic size reference lacks a top-level "chromosomes" mapping`)
	}
	s := &Sizes{chromosomes: ref.Chromosomes, raw: raw}
	for name := range ref.Chromosomes {
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	return s, nil
}

// Load reads the size reference at path.
func Load(ctx context.Context, path string) (s *Sizes, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	return New(in.Reader(ctx))
}

// Valid reports whether name appears in the reference. Contacts naming an
// unrecognized chromosome are dropped downstream, not rejected with an
// error, so this is a filter rather than a validator.
func (s *Sizes) Valid(name string) bool {
	_, ok := s.chromosomes[name]
	return ok
}

// Names returns the chromosome names in lexicographic order.
func (s *Sizes) Names() []string {
	return s.names
}

// Len returns the length of the named chromosome.
func (s *Sizes) Len(name string) (int64, bool) {
	n, ok := s.chromosomes[name]
	return n, ok
}

// Export writes the size reference verbatim to <dir>/meta.json, overwriting
// any existing file.
func (s *Sizes) Export(ctx context.Context, dir string) (err error) {
	var out file.File
	if out, err = file.Create(ctx, filepath.Join(dir, MetaFilename)); err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	_, err = out.Writer(ctx).Write(s.raw)
	return err
}
