/*
spritevisu converts a SPRITE cluster file into a contact directory for the
SpriteVisu/MultiVis interactive viewer.

For every cluster within the configured size bounds it emits all
intrachromosomal position pairs (weighted by the chromosome's unique-position
count) and all interchromosomal position cross products (weighted by the sum
of the two counts). Contacts land in one <chrom1>-<chrom2>.txt file per
chromosome pair, alongside meta.json (a verbatim copy of the genomic size
reference) and a SQLite table of every parsed read.

Sample usage:

	spritevisu \
	    -clusters clusters.txt \
	    -genomic-size chromsize_hg19.json \
	    -out spritevisu \
	    -max-cluster-size 1000 \
	    -min-cluster-size 2

Pass -start-only when the cluster file carries legacy <chrom>:<start> reads
instead of <readname>_<chrom>:<start>-<end>.
*/
package main
