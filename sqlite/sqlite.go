// Package sqlite opens SQLite databases and brings them up to date with a
// versioned schema.
//
// A schema is a list of SQL scripts. Script i upgrades a database from
// version i to version i+1; the current version is kept in the metadata
// table. Scripts may contain several statements.
package sqlite

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const metadataTable = `
CREATE TABLE IF NOT EXISTS metadata (
  id integer primary key,
  schemaVersion integer
);`

func NewFromFile(dbfile string, schema []string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+dbfile+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", dbfile)
	}
	// one writer at a time avoids SQLITE_BUSY under concurrent requests
	db.SetMaxOpenConns(1)
	if err := upgrade(db, schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "upgrading %s", dbfile)
	}
	return db, nil
}

// NewFromMemory returns a private in-memory database, mostly for tests.
func NewFromMemory(schema []string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "opening in-memory database")
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	if err := upgrade(db, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Version reports the schema version recorded in db.
func Version(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT schemaVersion FROM metadata WHERE id = 0").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "reading schema version")
	}
	return version, nil
}

func upgrade(db *sql.DB, schema []string) error {
	if _, err := db.Exec(metadataTable); err != nil {
		return errors.Wrap(err, "creating metadata table")
	}
	version, err := Version(db)
	if err != nil {
		return err
	}
	if version > len(schema) {
		return errors.Errorf("database schema version %d is newer than supported version %d", version, len(schema))
	}
	for ; version < len(schema); version++ {
		tx, err := db.Begin()
		if err != nil {
			return errors.Wrap(err, "starting schema upgrade")
		}
		if _, err := tx.Exec(schema[version]); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "applying schema version %d", version+1)
		}
		if _, err := tx.Exec("INSERT OR REPLACE INTO metadata (id, schemaVersion) VALUES (0, ?)", version+1); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "recording schema version %d", version+1)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(err, "committing schema version %d", version+1)
		}
	}
	return nil
}
