package ingest

import "github.com/agentic-research/grimoire/api"

// Sink receives every validated document. Implementations must be safe for
// concurrent use: the engine calls Write from all workers.
type Sink interface {
	// Write persists one document. relPath is the source record's path
	// relative to the source root; data is the encoded document.
	Write(relPath string, doc *api.Document, data []byte) error
	Close() error
}
