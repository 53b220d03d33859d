package cluster

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const fullClusters = "c1\treadA_chr1:10-20\treadB_chr1:30-40\treadC_chr2:5-15\n" +
	"\n" +
	"c2 r1_name_with_underscores_chr2:100-150\n" +
	"c3\n"

func TestScanFull(t *testing.T) {
	s := NewScanner(strings.NewReader(fullClusters), FormatFull, Abort)
	var c Cluster

	if !s.Scan(&c) {
		t.Fatal(s.Err())
	}
	if got, want := c.ID, "c1"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	want := []Read{
		{Chrom: "chr1", Start: 10, End: 20},
		{Chrom: "chr1", Start: 30, End: 40},
		{Chrom: "chr2", Start: 5, End: 15},
	}
	if !reflect.DeepEqual(c.Reads, want) {
		t.Errorf("got %v, want %v", c.Reads, want)
	}

	// Blank line is skipped; read names may contain underscores.
	if !s.Scan(&c) {
		t.Fatal(s.Err())
	}
	if got, want := c.ID, "c2"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := c.Reads[0], (Read{Chrom: "chr2", Start: 100, End: 150}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// An identifier with no reads is a valid, empty cluster.
	if !s.Scan(&c) {
		t.Fatal(s.Err())
	}
	if got, want := c.ID, "c3"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := len(c.Reads), 0; got != want {
		t.Errorf("got %v reads, want %v", got, want)
	}

	if s.Scan(&c) {
		t.Error("expected end of stream")
	}
	if err := s.Err(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestScanStartOnly(t *testing.T) {
	s := NewScanner(strings.NewReader("c1\tchr1:10\tchr2:5\n"), FormatStartOnly, Abort)
	var c Cluster
	if !s.Scan(&c) {
		t.Fatal(s.Err())
	}
	want := []Read{
		{Chrom: "chr1", Start: 10},
		{Chrom: "chr2", Start: 5},
	}
	if !reflect.DeepEqual(c.Reads, want) {
		t.Errorf("got %v, want %v", c.Reads, want)
	}
}

func TestParseRead(t *testing.T) {
	tests := []struct {
		tok     string
		format  Format
		want    Read
		wantErr bool
	}{
		{"readA_chr1:10-20", FormatFull, Read{"chr1", 10, 20}, false},
		{"a_b_c_chrX:1-2", FormatFull, Read{"chrX", 1, 2}, false},
		{"chr1:10", FormatStartOnly, Read{"chr1", 10, 0}, false},
		// Malformed.
		{"chr1:10-20", FormatStartOnly, Read{}, true}, // "10-20" is not an integer
		{"readA_chr1:10", FormatFull, Read{}, true},   // no end position
		{"readAchr1:10-20", FormatFull, Read{}, true}, // no underscore
		{"readA_:10-20", FormatFull, Read{}, true},    // empty chromosome
		{"readA_chr1:30-10", FormatFull, Read{}, true},
		{"chr1", FormatStartOnly, Read{}, true},
		{"chr1:ten", FormatStartOnly, Read{}, true},
		{"", FormatFull, Read{}, true},
	}
	for _, tt := range tests {
		got, err := ParseRead(tt.tok, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q (%v): unexpected error state: %v", tt.tok, tt.format, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.tok, got, tt.want)
		}
	}
}

func TestAbortPolicy(t *testing.T) {
	s := NewScanner(strings.NewReader("c1\tgarbage\tchr1:10\n"), FormatStartOnly, Abort)
	var c Cluster
	if s.Scan(&c) {
		t.Fatal("expected scan failure")
	}
	if !errors.Is(s.Err(), ErrMalformedRead) {
		t.Errorf("got %v, want ErrMalformedRead", s.Err())
	}
	// Once failed, Scan never succeeds again.
	if s.Scan(&c) {
		t.Error("scanner revived after error")
	}
}

func TestSkipReadPolicy(t *testing.T) {
	s := NewScanner(strings.NewReader("c1\tchr1:10\tgarbage\tchr2:5\n"), FormatStartOnly, SkipRead)
	var c Cluster
	if !s.Scan(&c) {
		t.Fatal(s.Err())
	}
	want := []Read{
		{Chrom: "chr1", Start: 10},
		{Chrom: "chr2", Start: 5},
	}
	if !reflect.DeepEqual(c.Reads, want) {
		t.Errorf("got %v, want %v", c.Reads, want)
	}
	if got, want := s.Skipped(), 1; got != want {
		t.Errorf("got %v skipped, want %v", got, want)
	}
	if err := s.Err(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestSkipClusterPolicy(t *testing.T) {
	in := "c1\tchr1:10\tgarbage\tchr2:5\n" + "c2\tchr1:7\n"
	s := NewScanner(strings.NewReader(in), FormatStartOnly, SkipCluster)
	var c Cluster
	if !s.Scan(&c) {
		t.Fatal(s.Err())
	}
	if got, want := c.ID, "c2"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := s.Skipped(), 1; got != want {
		t.Errorf("got %v skipped, want %v", got, want)
	}
	if s.Scan(&c) {
		t.Error("expected end of stream")
	}
	if err := s.Err(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
