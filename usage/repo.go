// Package usage keeps a ledger of conversions in SQLite.
package usage

import (
	"context"
	"database/sql"

	"github.com/rcbilson/mdconvert/sqlite"
)

type Usage struct {
	Mode      string
	LengthIn  int
	LengthOut int
}

// Summary totals the recorded conversions for one mode.
type Summary struct {
	Mode        string
	Conversions int
	LengthIn    int
	LengthOut   int
}

// Recorder accepts one Usage per conversion.
type Recorder interface {
	Record(ctx context.Context, u Usage) error
}

type discard struct{}

func (discard) Record(context.Context, Usage) error { return nil }

// Discard is a Recorder that keeps nothing.
var Discard Recorder = discard{}

type Repo struct {
	db *sql.DB
}

func NewRepo(dbfile string) (Repo, error) {
	db, err := sqlite.NewFromFile(dbfile, schema)
	if err != nil {
		return Repo{}, err
	}
	return Repo{db}, nil
}

func NewTestRepo() (Repo, error) {
	db, err := sqlite.NewFromMemory(schema)
	if err != nil {
		return Repo{}, err
	}
	return Repo{db}, nil
}

func (repo *Repo) Close() {
	repo.db.Close()
}

// Record inserts one conversion into the ledger
func (repo *Repo) Record(ctx context.Context, u Usage) error {
	_, err := repo.db.ExecContext(ctx,
		"INSERT INTO usage (mode, lengthIn, lengthOut) VALUES (?, ?, ?)",
		u.Mode, u.LengthIn, u.LengthOut)
	return err
}

// Returns the totals for each mode, ordered by mode
func (repo *Repo) Summary(ctx context.Context) ([]Summary, error) {
	query := `
		SELECT mode, COUNT(*), COALESCE(SUM(lengthIn), 0), COALESCE(SUM(lengthOut), 0)
		FROM usage GROUP BY mode ORDER BY mode;`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Summary

	for rows.Next() {
		var s Summary
		err := rows.Scan(&s.Mode, &s.Conversions, &s.LengthIn, &s.LengthOut)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
