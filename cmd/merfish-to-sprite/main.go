package main

// See doc.go for documentation

import (
	"flag"

	"github.com/JesKwek/MultiVis-Directory-Generation/merfish"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

var (
	inPath     = flag.String("in", "", "Input MERFISH table (tab-separated); required")
	outPath    = flag.String("out", "sprite_clusters.txt", "Output SPRITE cluster file")
	eps        = flag.Float64("eps", merfish.DefaultOpts.Eps, "Maximum distance in nm between points in a spatial cluster")
	minSamples = flag.Int("min-samples", merfish.DefaultOpts.MinSamples, "Minimum number of points within eps for a point to seed a cluster")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *inPath == "" {
		log.Fatalf("-in is required; run with -help for usage")
	}
	ctx := vcontext.Background()
	in, err := file.Open(ctx, *inPath)
	if err != nil {
		log.Fatalf("open %v: %v", *inPath, err)
	}
	out, err := file.Create(ctx, *outPath)
	if err != nil {
		log.Fatalf("create %v: %v", *outPath, err)
	}
	opts := merfish.Opts{Eps: *eps, MinSamples: *minSamples}
	if err := merfish.Convert(in.Reader(ctx), out.Writer(ctx), &opts); err != nil {
		log.Fatalf("%v", err)
	}
	if err := out.Close(ctx); err != nil {
		log.Fatalf("close %v: %v", *outPath, err)
	}
	if err := in.Close(ctx); err != nil {
		log.Fatalf("close %v: %v", *inPath, err)
	}
}
