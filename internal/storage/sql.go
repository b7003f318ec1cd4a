package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
)

const sqlSchema = `
CREATE TABLE IF NOT EXISTS reviews (
	position     INTEGER NOT NULL,
	source_row   INTEGER NOT NULL,
	reviewer     TEXT NOT NULL DEFAULT '',
	review_text  TEXT NOT NULL DEFAULT '',
	rating_label TEXT NOT NULL DEFAULT '',
	rating       INTEGER NOT NULL,
	raw_date     TEXT NOT NULL DEFAULT '',
	review_date  TEXT NOT NULL,
	dataset      TEXT NOT NULL DEFAULT '',
	exported_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS word_frequencies (
	rank        INTEGER NOT NULL,
	word        TEXT NOT NULL,
	count       INTEGER NOT NULL,
	dataset     TEXT NOT NULL DEFAULT '',
	exported_at TEXT NOT NULL
);
`

// ReviewRow is one row of the reviews table.
type ReviewRow struct {
	Position    int    `db:"position"`
	SourceRow   int    `db:"source_row"`
	Reviewer    string `db:"reviewer"`
	Text        string `db:"review_text"`
	RatingLabel string `db:"rating_label"`
	Rating      int    `db:"rating"`
	RawDate     string `db:"raw_date"`
	Date        string `db:"review_date"`
	Dataset     string `db:"dataset"`
	ExportedAt  string `db:"exported_at"`
}

// WordRow is one row of the word_frequencies table.
type WordRow struct {
	Rank       int    `db:"rank"`
	Word       string `db:"word"`
	Count      int    `db:"count"`
	Dataset    string `db:"dataset"`
	ExportedAt string `db:"exported_at"`
}

// SQLSink replaces the contents of the reviews and word_frequencies tables
// in a single transaction. Driver is "sqlite" or "postgres".
type SQLSink struct {
	Driver string
	DSN    string
	now    func() time.Time
}

func (s *SQLSink) Write(ctx context.Context, r *analysis.Report) error {
	db, err := sqlx.Open(s.Driver, s.DSN)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.Driver, err)
	}
	defer db.Close()
	if s.Driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect %s: %w", s.Driver, err)
	}
	if _, err := db.ExecContext(ctx, sqlSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	stamp := now().UTC().Format(time.RFC3339)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"reviews", "word_frequencies"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for i, rv := range r.Result.Reviews {
		row := ReviewRow{
			Position:    i + 1,
			SourceRow:   rv.Row,
			Reviewer:    rv.Reviewer,
			Text:        rv.Text,
			RatingLabel: string(rv.RatingLabel),
			Rating:      rv.RatingValue,
			RawDate:     rv.RawDate,
			Date:        rv.Date,
			Dataset:     r.Name,
			ExportedAt:  stamp,
		}
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO reviews
			(position, source_row, reviewer, review_text, rating_label, rating, raw_date, review_date, dataset, exported_at)
			VALUES (:position, :source_row, :reviewer, :review_text, :rating_label, :rating, :raw_date, :review_date, :dataset, :exported_at)`, row); err != nil {
			return fmt.Errorf("insert review %d: %w", rv.Row, err)
		}
	}
	for i, w := range r.Result.Words {
		row := WordRow{Rank: i + 1, Word: w.Word, Count: w.Count, Dataset: r.Name, ExportedAt: stamp}
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO word_frequencies (rank, word, count, dataset, exported_at)
			VALUES (:rank, :word, :count, :dataset, :exported_at)`, row); err != nil {
			return fmt.Errorf("insert word %q: %w", w.Word, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ReadWords returns the stored word list in rank order.
func ReadWords(ctx context.Context, driver, dsn string) ([]WordRow, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	defer db.Close()
	var rows []WordRow
	if err := db.SelectContext(ctx, &rows, "SELECT rank, word, count, dataset, exported_at FROM word_frequencies ORDER BY rank"); err != nil {
		return nil, fmt.Errorf("select words: %w", err)
	}
	return rows, nil
}

// ReadReviews returns the stored reviews in export order.
func ReadReviews(ctx context.Context, driver, dsn string) ([]ReviewRow, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	defer db.Close()
	var rows []ReviewRow
	if err := db.SelectContext(ctx, &rows, "SELECT * FROM reviews ORDER BY position"); err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	return rows, nil
}
