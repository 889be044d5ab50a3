package ingest

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/logger"
	_ "modernc.org/sqlite"
)

// CompendiumWriter stores every document in a single SQLite table. The table
// is rebuilt on open, so a database always reflects exactly one run.
type CompendiumWriter struct {
	db        *sql.DB
	tx        *sql.Tx
	stmt      *sql.Stmt
	batchSize int
	count     int
	mu        sync.Mutex
}

// NewCompendiumWriter opens (or creates) the database at dbPath and resets
// its documents table.
func NewCompendiumWriter(dbPath string) (*CompendiumWriter, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	for _, pragma := range []string{"PRAGMA synchronous = OFF", "PRAGMA journal_mode = MEMORY"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	schema := `
	DROP TABLE IF EXISTS documents;
	CREATE TABLE documents (
		key TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		collection TEXT NOT NULL,
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		source_path TEXT NOT NULL,
		body JSON NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	w := &CompendiumWriter{
		db:        db,
		batchSize: 1000,
	}
	if err := w.beginTx(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func (w *CompendiumWriter) beginTx() error {
	var err error
	w.tx, err = w.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	w.stmt, err = w.tx.Prepare(`
		INSERT OR REPLACE INTO documents (key, id, collection, type, name, source_path, body)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	return nil
}

func (w *CompendiumWriter) commitTx() error {
	if w.stmt != nil {
		_ = w.stmt.Close()
		w.stmt = nil
	}
	if w.tx == nil {
		return nil
	}
	err := w.tx.Commit()
	w.tx = nil
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Write inserts one document. Every batchSize documents the transaction is
// committed and a new one started.
func (w *CompendiumWriter) Write(relPath string, doc *api.Document, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stmt == nil {
		return fmt.Errorf("insert %s: no open transaction", doc.Key)
	}
	_, err := w.stmt.Exec(
		doc.Key,
		doc.ID,
		api.CollectionFor(doc.Type),
		doc.Type,
		doc.Name,
		relPath,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", doc.Key, err)
	}

	w.count++
	if w.count >= w.batchSize {
		if err := w.commitTx(); err != nil {
			return err
		}
		if err := w.beginTx(); err != nil {
			return err
		}
		logger.Debug("Compendium batch committed", map[string]interface{}{"rows": w.count})
		w.count = 0
	}
	return nil
}

func (w *CompendiumWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.commitTx(); err != nil {
		_ = w.db.Close()
		return err
	}
	if _, err := w.db.Exec(`CREATE INDEX IF NOT EXISTS idx_collection_type ON documents(collection, type)`); err != nil {
		logger.Warn("Compendium index creation failed", map[string]interface{}{"error": err.Error()})
	}
	return w.db.Close()
}

var _ Sink = (*CompendiumWriter)(nil)
