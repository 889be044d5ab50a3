package ingest

import (
	"database/sql"
	"fmt"

	"github.com/ohler55/ojg/oj"
	_ "modernc.org/sqlite"
)

// Entry is one stored compendium row.
type Entry struct {
	Key        string
	ID         string
	Collection string
	Type       string
	Name       string
	SourcePath string
	Body       string
}

// StreamCompendium iterates over the documents of a compendium in key order,
// calling fn for each one. Only one row is alive at a time.
func StreamCompendium(dbPath string, fn func(Entry) error) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.Query(`SELECT key, id, collection, type, name, source_path, body FROM documents ORDER BY key`)
	if err != nil {
		return fmt.Errorf("query documents: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.ID, &e.Collection, &e.Type, &e.Name, &e.SourcePath, &e.Body); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}

// LoadCompendium reads every stored document body, parsed, keyed by document
// key.
func LoadCompendium(dbPath string) (map[string]any, error) {
	docs := make(map[string]any)
	err := StreamCompendium(dbPath, func(e Entry) error {
		parsed, err := oj.ParseString(e.Body)
		if err != nil {
			return fmt.Errorf("parse document %s: %w", e.Key, err)
		}
		docs[e.Key] = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}
