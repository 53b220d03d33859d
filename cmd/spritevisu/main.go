package main

// See doc.go for documentation

import (
	"flag"

	"github.com/JesKwek/MultiVis-Directory-Generation/encoding/cluster"
	"github.com/JesKwek/MultiVis-Directory-Generation/sprite"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

var (
	clustersPath = flag.String("clusters", "", "Input clusters file, optionally gzipped; required")
	sizesPath    = flag.String("genomic-size", "", "JSON file with genomic size information, e.g. chromsize_hg19.json; required")
	outDir       = flag.String("out", "spritevisu", "Output directory for the generated heatmap files")
	maxCluster   = flag.Int("max-cluster-size", sprite.DefaultOpts.MaxClusterSize, "Clusters with more reads than this are skipped")
	minCluster   = flag.Int("min-cluster-size", sprite.DefaultOpts.MinClusterSize, "Clusters with fewer reads than this are skipped")
	startOnly    = flag.Bool("start-only", false, "The cluster file contains <chrom>:<start> reads without read names or end positions")
	onMalformed  = flag.String("on-malformed", "abort", "What to do with a read token that fails to parse; 'abort', 'skip-read', or 'skip-cluster'")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *clustersPath == "" || *sizesPath == "" {
		log.Fatalf("both -clusters and -genomic-size are required; run with -help for usage")
	}
	opts := sprite.DefaultOpts
	opts.MaxClusterSize = *maxCluster
	opts.MinClusterSize = *minCluster
	if *startOnly {
		opts.Format = cluster.FormatStartOnly
	}
	switch *onMalformed {
	case "abort":
		opts.OnMalformed = cluster.Abort
	case "skip-read":
		opts.OnMalformed = cluster.SkipRead
	case "skip-cluster":
		opts.OnMalformed = cluster.SkipCluster
	default:
		log.Fatalf("unknown -on-malformed mode %q", *onMalformed)
	}

	ctx := vcontext.Background()
	if err := sprite.Convert(ctx, *clustersPath, *sizesPath, *outDir, &opts); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}
