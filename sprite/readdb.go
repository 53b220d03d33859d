package sprite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/JesKwek/MultiVis-Directory-Generation/encoding/cluster"
	_ "modernc.org/sqlite" // database/sql driver
)

// Read database filenames, one per cluster-file format.
const (
	ReadDBName          = "cluster_id_reads.db"
	ReadDBNameStartOnly = "cluster_id_reads-startonly.db"
)

// ReadDB streams every parsed read into a SQLite table, independent of the
// cluster-size filter: the table is a complete audit log of raw reads. Each
// format owns its own schema:
//
//	FormatFull       contacts(chromosome TEXT, start INTEGER, end INTEGER, cluster_id TEXT)
//	FormatStartOnly  contacts(chromosome TEXT, start INTEGER, cluster_id TEXT)
type ReadDB struct {
	db     *sql.DB
	tx     *sql.Tx
	insert *sql.Stmt
	format cluster.Format
	rows   int64
}

// OpenReadDB creates the read database in dir, naming it after the format.
// All inserts run inside a single transaction committed by Close.
func OpenReadDB(ctx context.Context, dir string, format cluster.Format) (*ReadDB, error) {
	name := ReadDBName
	schema := `CREATE TABLE IF NOT EXISTS contacts (
		chromosome TEXT,
		start INTEGER,
		"end" INTEGER,
		cluster_id TEXT
	)`
	insert := `INSERT INTO contacts VALUES (?, ?, ?, ?)`
	if format == cluster.FormatStartOnly {
		name = ReadDBNameStartOnly
		schema = `CREATE TABLE IF NOT EXISTS contacts (
			chromosome TEXT,
			start INTEGER,
			cluster_id TEXT
		)`
		insert = `INSERT INTO contacts VALUES (?, ?, ?)`
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("opening read database %s: %w", name, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating contacts table: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("begin read insert transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		_ = tx.Rollback()
		_ = db.Close()
		return nil, fmt.Errorf("preparing read insert: %w", err)
	}
	return &ReadDB{db: db, tx: tx, insert: stmt, format: format}, nil
}

// Insert records one parsed read belonging to clusterID.
func (d *ReadDB) Insert(ctx context.Context, r cluster.Read, clusterID string) error {
	var err error
	if d.format == cluster.FormatStartOnly {
		_, err = d.insert.ExecContext(ctx, r.Chrom, r.Start, clusterID)
	} else {
		_, err = d.insert.ExecContext(ctx, r.Chrom, r.Start, r.End, clusterID)
	}
	if err != nil {
		return fmt.Errorf("inserting read %s:%d of cluster %s: %w", r.Chrom, r.Start, clusterID, err)
	}
	d.rows++
	return nil
}

// Rows returns the number of reads inserted so far.
func (d *ReadDB) Rows() int64 {
	return d.rows
}

// Close commits the insert transaction and closes the database.
func (d *ReadDB) Close() error {
	if err := d.tx.Commit(); err != nil {
		_ = d.db.Close()
		return fmt.Errorf("commit read inserts: %w", err)
	}
	return d.db.Close()
}

// Discard rolls the insert transaction back and closes the database. It is
// the failure-path counterpart of Close; errors are ignored since the run is
// already aborting.
func (d *ReadDB) Discard() {
	_ = d.tx.Rollback()
	_ = d.db.Close()
}
