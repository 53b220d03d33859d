package merfish

import (
	"math"
	"strconv"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
)

// Noise is the cluster label of points that belong to no cluster.
const Noise = -1

// Cluster runs DBSCAN over the points' 3-D coordinates and returns one label
// per point. A point is a core point when at least minSamples points (itself
// included) lie within eps of it; clusters grow outward from core points
// only, so border points join a cluster without extending it. Labels are
// dense, start at 0 in order of discovery, and Noise marks the leftovers.
//
// The eps-neighborhood is materialized as an undirected graph and each
// cluster is collected with a breadth-first traversal whose neighbor filter
// blocks expansion through non-core points.
func Cluster(points []Point, eps float64, minSamples int) ([]int, error) {
	g, err := core.NewGraph()
	if err != nil {
		return nil, err
	}
	for i := range points {
		if err := g.AddVertex(strconv.Itoa(i)); err != nil {
			return nil, err
		}
	}
	neighbors := make([]int, len(points))
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if dist(points[i], points[j]) <= eps {
				if _, err := g.AddEdge(strconv.Itoa(i), strconv.Itoa(j), 0); err != nil {
					return nil, err
				}
				neighbors[i]++
				neighbors[j]++
			}
		}
	}
	isCore := make([]bool, len(points))
	for i, n := range neighbors {
		isCore[i] = n+1 >= minSamples
	}

	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = Noise
	}
	expandThroughCore := bfs.WithFilterNeighbor(func(curr, _ string) bool {
		n, _ := strconv.Atoi(curr)
		return isCore[n]
	})
	next := 0
	for i := range points {
		if !isCore[i] || labels[i] != Noise {
			continue
		}
		res, err := bfs.BFS(g, strconv.Itoa(i), expandThroughCore)
		if err != nil {
			return nil, err
		}
		for _, id := range res.Order {
			n, _ := strconv.Atoi(id)
			if labels[n] == Noise {
				labels[n] = next
			}
		}
		next++
	}
	return labels, nil
}

func dist(a, b Point) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
