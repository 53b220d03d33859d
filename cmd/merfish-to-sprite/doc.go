/*
merfish-to-sprite converts a MERFISH spatial imaging table into a SPRITE
cluster file, so spatial data can be visualized through the same spritevisu
contact pipeline.

Probes are clustered by 3-D spatial proximity (DBSCAN over the x/y/z
coordinates in nanometers), and each (cell, experiment, spatial cluster)
group becomes one cluster line whose reads are the probes' genomic
coordinates collapsed to their midpoints. The output uses the start-only
read encoding; feed it to spritevisu with -start-only.

Sample usage:

	merfish-to-sprite -in genomic-scale.tsv -out sprite_clusters.txt -eps 1000 -min-samples 2
*/
package main
