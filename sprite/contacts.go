// Package sprite converts SPRITE read-clusters into pairwise genomic
// contacts: one text file of "start1,start2,weight" lines per chromosome
// pair, a verbatim copy of the size reference, and a SQLite audit table of
// every parsed read. Convert drives a single sequential pass over a cluster
// file; ContactMap and Generator are usable on their own for testing or
// embedding.
package sprite

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JesKwek/MultiVis-Directory-Generation/encoding/cluster"
	"github.com/JesKwek/MultiVis-Directory-Generation/encoding/genome"
	"github.com/grailbio/base/file"
)

// ContactMap accumulates contact lines keyed by canonical chromosome pair.
// Lines are append-only and never deduplicated across clusters: repeated
// contacts are the heatmap intensity signal. The map grows for the duration
// of one run and is flushed to disk exactly once.
type ContactMap struct {
	sizes *genome.Sizes
	pairs map[string][]string
	keys  []string // pair keys in first-appearance order
	n     int
}

// NewContactMap returns an empty accumulator filtering against sizes.
func NewContactMap(sizes *genome.Sizes) *ContactMap {
	return &ContactMap{sizes: sizes, pairs: make(map[string][]string)}
}

// Add appends one contact. The pair key always names the lexicographically
// smaller chromosome first, swapping the positions along with the names, so
// (A,B) and (B,A) land on the same key. Contacts naming a chromosome outside
// the size reference are silently dropped.
func (m *ContactMap) Add(chrom1 string, start1 int64, chrom2 string, start2 int64, weight int) {
	if !m.sizes.Valid(chrom1) || !m.sizes.Valid(chrom2) {
		return
	}
	if chrom1 > chrom2 {
		chrom1, chrom2 = chrom2, chrom1
		start1, start2 = start2, start1
	}
	key := chrom1 + "-" + chrom2
	lines, ok := m.pairs[key]
	if !ok {
		m.keys = append(m.keys, key)
	}
	m.pairs[key] = append(lines, fmt.Sprintf("%d,%d,%d", start1, start2, weight))
	m.n++
}

// Pairs returns the canonical pair keys in first-appearance order.
func (m *ContactMap) Pairs() []string {
	return m.keys
}

// Lines returns the contact lines accumulated under key.
func (m *ContactMap) Lines(key string) []string {
	return m.pairs[key]
}

// Len returns the total number of contact lines accumulated.
func (m *ContactMap) Len() int {
	return m.n
}

// WriteFiles writes each pair's lines, newline-joined, to <dir>/<key>.txt,
// overwriting existing files of the same name.
func (m *ContactMap) WriteFiles(ctx context.Context, dir string) error {
	for _, key := range m.keys {
		if err := m.writeFile(ctx, dir, key); err != nil {
			return err
		}
	}
	return nil
}

func (m *ContactMap) writeFile(ctx context.Context, dir, key string) (err error) {
	var out file.File
	if out, err = file.Create(ctx, filepath.Join(dir, key+".txt")); err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	_, err = io.WriteString(out.Writer(ctx), strings.Join(m.pairs[key], "\n"))
	return err
}

// Bins are one cluster's unique read start positions grouped by chromosome.
// Duplicate starts on the same chromosome collapse to a single entry; the
// dedup is deliberate, so two reads at the same chrom:start never produce a
// self-pair contact.
type Bins map[string]map[int64]struct{}

// BinReads groups a cluster's reads into Bins.
func BinReads(reads []cluster.Read) Bins {
	bins := make(Bins)
	for _, r := range reads {
		set, ok := bins[r.Chrom]
		if !ok {
			set = make(map[int64]struct{})
			bins[r.Chrom] = set
		}
		set[r.Start] = struct{}{}
	}
	return bins
}

// Generator turns clusters into contacts, applying the cluster-size filter.
type Generator struct {
	contacts *ContactMap
	min, max int
	skipped  int
}

// NewGenerator returns a Generator appending to contacts. Clusters whose
// read count falls outside [minSize, maxSize] are skipped entirely.
func NewGenerator(contacts *ContactMap, minSize, maxSize int) *Generator {
	return &Generator{contacts: contacts, min: minSize, max: maxSize}
}

// Cluster emits the contacts for one cluster.
//
// Intrachromosomal: every unordered pair of distinct positions on a
// chromosome with k >= 2 unique positions, k*(k-1)/2 contacts of weight k.
// Interchromosomal: the full cross product between each unordered pair of
// chromosomes with m and n unique positions, m*n contacts of weight m+n.
//
// Chromosomes and positions are visited in sorted order so a given input
// always produces identical output files.
func (g *Generator) Cluster(c *cluster.Cluster) {
	n := len(c.Reads)
	if n < g.min || n > g.max {
		g.skipped++
		return
	}
	bins := BinReads(c.Reads)

	chroms := make([]string, 0, len(bins))
	starts := make(map[string][]int64, len(bins))
	for chrom, set := range bins {
		chroms = append(chroms, chrom)
		s := make([]int64, 0, len(set))
		for start := range set {
			s = append(s, start)
		}
		sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
		starts[chrom] = s
	}
	sort.Strings(chroms)

	for _, chrom := range chroms {
		s := starts[chrom]
		k := len(s)
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				g.contacts.Add(chrom, s[i], chrom, s[j], k)
			}
		}
	}

	for i := 0; i < len(chroms); i++ {
		for j := i + 1; j < len(chroms); j++ {
			s1, s2 := starts[chroms[i]], starts[chroms[j]]
			weight := len(s1) + len(s2)
			for _, a := range s1 {
				for _, b := range s2 {
					g.contacts.Add(chroms[i], a, chroms[j], b, weight)
				}
			}
		}
	}
}

// SkippedClusters returns how many clusters fell outside the size bounds.
func (g *Generator) SkippedClusters() int {
	return g.skipped
}
