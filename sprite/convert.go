package sprite

import (
	"context"
	"io"
	"os"

	"github.com/JesKwek/MultiVis-Directory-Generation/encoding/cluster"
	"github.com/JesKwek/MultiVis-Directory-Generation/encoding/genome"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
)

// Convert runs a single sequential pass over the cluster file at clusterPath
// and populates outDir with meta.json, one <chrom1>-<chrom2>.txt contact
// file per observed chromosome pair, and the read database. outDir and its
// parents are created if absent. clusterPath may be gzip-compressed.
//
// Memory is bounded by the number of generated contact lines, which is
// quadratic in cluster size for intrachromosomal pairs; deep clusters on a
// large reference need a correspondingly large heap. There is no incremental
// flushing and no retry: a failed run is rerun from scratch.
func Convert(ctx context.Context, clusterPath, sizesPath, outDir string, opts *Opts) (err error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	sizes, err := genome.Load(ctx, sizesPath)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(outDir, 0777); err != nil {
		return err
	}
	if err = sizes.Export(ctx, outDir); err != nil {
		return err
	}

	var in file.File
	if in, err = file.Open(ctx, clusterPath); err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(clusterPath) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return err
		}
	}

	db, err := OpenReadDB(ctx, outDir, opts.Format)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			db.Discard()
		}
	}()

	contacts := NewContactMap(sizes)
	gen := NewGenerator(contacts, opts.MinClusterSize, opts.MaxClusterSize)
	sc := cluster.NewScanner(reader, opts.Format, opts.OnMalformed)
	var (
		c         cluster.Cluster
		nClusters int
	)
	for sc.Scan(&c) {
		nClusters++
		// The audit table receives every read before the size filter is
		// consulted; only contact generation is bounded.
		for _, r := range c.Reads {
			if err = db.Insert(ctx, r, c.ID); err != nil {
				return err
			}
		}
		gen.Cluster(&c)
	}
	if err = sc.Err(); err != nil {
		return err
	}
	if err = contacts.WriteFiles(ctx, outDir); err != nil {
		return err
	}
	if err = db.Close(); err != nil {
		return err
	}
	committed = true

	log.Printf("%s: %d clusters, %d reads, %d contacts across %d chromosome pairs",
		clusterPath, nClusters, db.Rows(), contacts.Len(), len(contacts.Pairs()))
	if n := gen.SkippedClusters(); n > 0 {
		log.Printf("%s: skipped %d clusters outside [%d, %d]",
			clusterPath, n, opts.MinClusterSize, opts.MaxClusterSize)
	}
	if n := sc.Skipped(); n > 0 {
		log.Printf("%s: dropped %d malformed entries", clusterPath, n)
	}
	return nil
}
