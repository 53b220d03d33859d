package sprite

import "github.com/JesKwek/MultiVis-Directory-Generation/encoding/cluster"

// Opts are the commandline-facing knobs for Convert.
type Opts struct {
	// Clusters with more reads than MaxClusterSize or fewer than
	// MinClusterSize contribute no contacts. Their reads still reach the
	// relational sink.
	MaxClusterSize int
	MinClusterSize int
	// Format selects the cluster-file read encoding.
	Format cluster.Format
	// OnMalformed decides what happens to read tokens that fail to parse.
	OnMalformed cluster.Policy
}

var DefaultOpts = Opts{
	MaxClusterSize: 1000,
	MinClusterSize: 2,
	Format:         cluster.FormatFull,
	OnMalformed:    cluster.Abort,
}
