package merfish

import (
	"reflect"
	"testing"
)

func xPoints(xs ...float64) []Point {
	pts := make([]Point, len(xs))
	for i, x := range xs {
		pts[i] = Point{X: x}
	}
	return pts
}

func TestClusterChains(t *testing.T) {
	// Points chained within eps of a neighbor merge into one cluster even
	// when the chain ends are farther than eps apart.
	labels, err := Cluster(xPoints(0, 500, 900, 10000, 10500), 1000, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 0, 0, 1, 1}; !reflect.DeepEqual(labels, want) {
		t.Errorf("got %v, want %v", labels, want)
	}
}

func TestClusterNoise(t *testing.T) {
	labels, err := Cluster(xPoints(0, 5000, 20000), 1000, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{Noise, Noise, Noise}; !reflect.DeepEqual(labels, want) {
		t.Errorf("got %v, want %v", labels, want)
	}
}

func TestClusterMinSamples(t *testing.T) {
	// With minSamples=3 an isolated pair stays noise, while a triple whose
	// members sit within eps of each other forms a cluster.
	labels, err := Cluster(xPoints(0, 500, 20000, 20500, 21000), 1000, 3)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{Noise, Noise, 0, 0, 0}; !reflect.DeepEqual(labels, want) {
		t.Errorf("got %v, want %v", labels, want)
	}
}

func TestClusterBorderPoints(t *testing.T) {
	// With minSamples=3, the point at 1800 has only one neighbor within eps
	// (the core point at 1000) so it is a border point: it joins the cluster
	// without carrying it any further, and the point at 3600 stays noise.
	labels, err := Cluster(xPoints(0, 1000, 1800, 3600, 500), 1000, 3)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 0, 0, Noise, 0}; !reflect.DeepEqual(labels, want) {
		t.Errorf("got %v, want %v", labels, want)
	}
}

func TestClusterEmpty(t *testing.T) {
	labels, err := Cluster(nil, 1000, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(labels) != 0 {
		t.Errorf("got %v, want empty", labels)
	}
}

func TestDist(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 4, Y: 6, Z: 3}
	if got, want := dist(a, b), 5.0; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
