// Package merfish converts MERFISH spatial imaging tables into SPRITE
// cluster files, so spatial-proximity data can flow through the same
// contact-generation pass as sequencing-based SPRITE data.
//
// The input is a tab-separated table with at least the columns
// "cell number", "experiment number", "x(nm)", "y(nm)", "z(nm)" and
// "genomic coordinate" (chrom:start-end). Points are clustered by 3-D
// spatial proximity (DBSCAN), and each (cell, experiment, spatial cluster)
// group becomes one cluster line of the form
//
//	cell_<n>_exp_<m>_cluster_<k>\t<chrom>:<mid>\t...
//
// where <mid> is the midpoint of the point's genomic coordinate range. The
// output parses in the contact pipeline's start-only mode.
package merfish

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

// Opts control the spatial clustering.
type Opts struct {
	// Eps is the DBSCAN neighborhood radius in nanometers.
	Eps float64
	// MinSamples is the DBSCAN core-point threshold: a point is a core point
	// when at least MinSamples points (itself included) lie within Eps.
	MinSamples int
}

var DefaultOpts = Opts{Eps: 1000, MinSamples: 2}

// A Point is one usable row of the MERFISH table: a probe with resolved
// spatial and genomic coordinates.
type Point struct {
	// Barcode identifies the cell: cell_<n>_exp_<m>.
	Barcode string
	// Coord is the collapsed genomic coordinate, chrom:midpoint.
	Coord string
	// Spatial position in nanometers.
	X, Y, Z float64
}

var requiredCols = []string{
	"cell number",
	"experiment number",
	"x(nm)",
	"y(nm)",
	"z(nm)",
	"genomic coordinate",
}

const maxLineBytes = 16 * 1024 * 1024

// ParsePoints reads the MERFISH table from r. Rows with a missing or
// unparseable genomic coordinate, or with non-finite spatial coordinates,
// are dropped; only a missing header column is an error.
func ParsePoints(r io.Reader) ([]Point, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineBytes)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "couldn't read MERFISH table")
		}
		return nil, errors.New("empty MERFISH table")
	}
	cols := make(map[string]int)
	for i, name := range strings.Split(sc.Text(), "\t") {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			return nil, errors.Errorf("MERFISH table lacks a %q column", name)
		}
	}
	var points []Point
	for sc.Scan() {
		fields := strings.Split(sc.Text(), "\t")
		at := func(name string) string {
			i := cols[name]
			if i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}
		coord, ok := midpoint(at("genomic coordinate"))
		if !ok {
			continue
		}
		x, okX := spatial(at("x(nm)"))
		y, okY := spatial(at("y(nm)"))
		z, okZ := spatial(at("z(nm)"))
		if !okX || !okY || !okZ {
			continue
		}
		cell, exp := at("cell number"), at("experiment number")
		if cell == "" || exp == "" {
			continue
		}
		points = append(points, Point{
			Barcode: "cell_" + cell + "_exp_" + exp,
			Coord:   coord,
			X:       x,
			Y:       y,
			Z:       z,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read MERFISH table")
	}
	return points, nil
}

func spatial(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// midpoint collapses chrom:start-end to chrom:(start+end)/2.
func midpoint(coord string) (string, bool) {
	chrom, pos, ok := strings.Cut(coord, ":")
	if !ok || chrom == "" {
		return "", false
	}
	startStr, endStr, ok := strings.Cut(pos, "-")
	if !ok {
		return "", false
	}
	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return "", false
	}
	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s:%d", chrom, (start+end)/2), true
}

// Convert reads a MERFISH table from in and writes SPRITE cluster lines to
// out. Each (cell, experiment, spatial cluster) group becomes one line, in
// order of first appearance. Noise points keep the Noise label so isolated
// probes within a cell still form a (size-filterable) group downstream.
func Convert(in io.Reader, out io.Writer, opts *Opts) error {
	if opts == nil {
		opts = &DefaultOpts
	}
	points, err := ParsePoints(in)
	if err != nil {
		return err
	}
	labels, err := Cluster(points, opts.Eps, opts.MinSamples)
	if err != nil {
		return err
	}

	groups := make(map[string][]string)
	var order []string
	for i, p := range points {
		barcode := fmt.Sprintf("%s_cluster_%d", p.Barcode, labels[i])
		if _, ok := groups[barcode]; !ok {
			order = append(order, barcode)
		}
		groups[barcode] = append(groups[barcode], p.Coord)
	}

	w := tsv.NewWriter(out)
	for _, barcode := range order {
		w.WriteString(barcode)
		for _, coord := range groups[barcode] {
			w.WriteString(coord)
		}
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}
