// Package duckdb stores finished RefFlat rows in a queryable DuckDB database
// for downstream RNA-seq metrics tooling.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/gtf2refflat/internal/gtf"
	"github.com/inodb/gtf2refflat/internal/refflat"
)

// Store manages a DuckDB connection holding a refflat table. It implements
// refflat.RowWriter: rows are buffered on Write and batch-appended on Flush.
type Store struct {
	db      *sql.DB
	path    string
	pending []refflat.Row
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates the refflat table if it doesn't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS refflat (
		gene_name VARCHAR,
		transcript_id VARCHAR,
		chrom VARCHAR,
		strand VARCHAR,
		tx_start BIGINT,
		tx_end BIGINT,
		cds_start BIGINT,
		cds_end BIGINT,
		exon_count INTEGER,
		exon_starts VARCHAR,
		exon_ends VARCHAR
	)`)
	return err
}

// Write buffers one row for the next Flush.
func (s *Store) Write(row refflat.Row) error {
	s.pending = append(s.pending, row)
	return nil
}

// Flush batch-appends all buffered rows.
func (s *Store) Flush() error {
	rows := s.pending
	s.pending = nil
	return s.WriteRows(rows)
}

// WriteRows batch-inserts rows using the Appender API.
func (s *Store) WriteRows(rows []refflat.Row) error {
	if len(rows) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "refflat")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range rows {
		fields := r.Fields()
		if err := appender.AppendRow(
			r.GeneName, r.TranscriptID, r.Chrom, r.Strand.Symbol(),
			r.TxStart, r.TxEnd, r.CDSStart, r.CDSEnd,
			int32(r.ExonCount), fields[9], fields[10],
		); err != nil {
			return fmt.Errorf("append refflat row: %w", err)
		}
	}

	return appender.Flush()
}

// CountRows returns the number of rows in the refflat table.
func (s *Store) CountRows() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM refflat`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count refflat rows: %w", err)
	}
	return n, nil
}

// LookupTranscript returns the stored rows for a transcript identifier.
func (s *Store) LookupTranscript(transcriptID string) ([]refflat.Row, error) {
	rows, err := s.db.Query(`SELECT gene_name, transcript_id, chrom, strand,
		tx_start, tx_end, cds_start, cds_end, exon_count
		FROM refflat WHERE transcript_id = ?`, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("query refflat: %w", err)
	}
	defer rows.Close()

	var out []refflat.Row
	for rows.Next() {
		var r refflat.Row
		var strand string
		var exonCount int32
		if err := rows.Scan(&r.GeneName, &r.TranscriptID, &r.Chrom, &strand,
			&r.TxStart, &r.TxEnd, &r.CDSStart, &r.CDSEnd, &exonCount); err != nil {
			return nil, fmt.Errorf("scan refflat row: %w", err)
		}
		r.Strand = gtf.ParseStrand(strand)
		r.ExonCount = int(exonCount)
		out = append(out, r)
	}

	return out, rows.Err()
}
