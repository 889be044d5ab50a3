package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/agentic-research/grimoire/api"
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/char/asciifolding"
	"github.com/blevesearch/bleve/v2/analysis/char/html"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

const textAnalyzer = "grimoire_text"

// IndexEntry is the searchable projection of a document.
type IndexEntry struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Collection  string `json:"collection"`
	Description string `json:"description"`
}

// descriptionPaths are tried in order; every match is joined.
var descriptionPaths = []jp.Expr{
	jp.MustParseString("$.system.description.value"),
	jp.MustParseString("$.system.details.biography.value"),
	jp.MustParseString("$.system.description"),
	jp.MustParseString("$.pages[*].system.text.content"),
}

// NewIndexEntry projects an encoded document.
func NewIndexEntry(doc *api.Document, data []byte) (IndexEntry, error) {
	e := IndexEntry{
		Key:        doc.Key,
		Name:       doc.Name,
		Type:       doc.Type,
		Collection: api.CollectionFor(doc.Type),
	}
	parsed, err := oj.Parse(data)
	if err != nil {
		return e, fmt.Errorf("parse document %s: %w", doc.Key, err)
	}
	var parts []string
	for _, x := range descriptionPaths {
		for _, v := range x.Get(parsed) {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			break
		}
	}
	e.Description = strings.Join(parts, "\n")
	return e, nil
}

func indexMapping() (mapping.IndexMapping, error) {
	m := bleve.NewIndexMapping()
	err := m.AddCustomAnalyzer(textAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"char_filters":  []string{html.Name, asciifolding.Name},
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("register analyzer: %w", err)
	}

	text := bleve.NewTextFieldMapping()
	text.Analyzer = textAnalyzer
	keyword := bleve.NewKeywordFieldMapping()

	doc := bleve.NewDocumentStaticMapping()
	doc.AddFieldMappingsAt("key", keyword)
	doc.AddFieldMappingsAt("type", keyword)
	doc.AddFieldMappingsAt("collection", keyword)
	doc.AddFieldMappingsAt("name", text)
	doc.AddFieldMappingsAt("description", text)

	m.DefaultMapping = doc
	m.DefaultAnalyzer = textAnalyzer
	return m, nil
}

// IndexWriter feeds documents into a bleve index rebuilt on open.
type IndexWriter struct {
	index     bleve.Index
	batch     *bleve.Batch
	batchSize int
	mu        sync.Mutex
}

// NewIndexWriter removes any index at dir and creates an empty one.
func NewIndexWriter(dir string) (*IndexWriter, error) {
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove old index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}
	m, err := indexMapping()
	if err != nil {
		return nil, err
	}
	index, err := bleve.New(dir, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &IndexWriter{index: index, batch: index.NewBatch(), batchSize: 100}, nil
}

func (w *IndexWriter) Write(relPath string, doc *api.Document, data []byte) error {
	entry, err := NewIndexEntry(doc, data)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.batch.Index(entry.Key, entry); err != nil {
		return fmt.Errorf("failed to add %s to batch: %w", entry.Key, err)
	}
	if w.batch.Size() >= w.batchSize {
		if err := w.index.Batch(w.batch); err != nil {
			return fmt.Errorf("failed to index batch: %w", err)
		}
		w.batch = w.index.NewBatch()
	}
	return nil
}

func (w *IndexWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.batch.Size() > 0 {
		if err := w.index.Batch(w.batch); err != nil {
			_ = w.index.Close()
			return fmt.Errorf("failed to index final batch: %w", err)
		}
	}
	return w.index.Close()
}

var _ Sink = (*IndexWriter)(nil)

// Hit is one search result.
type Hit struct {
	Key        string
	Name       string
	Type       string
	Collection string
	Score      float64
}

// Search runs a query string query ("fireball", "type:spell fire",
// "+collection:actors ogre") against the index at dir.
func Search(dir, query string, limit int) ([]Hit, uint64, error) {
	index, err := bleve.Open(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("open index %s: %w", dir, err)
	}
	defer func() { _ = index.Close() }() // safe to ignore

	if limit <= 0 {
		limit = 10
	}
	req := bleve.NewSearchRequest(bleve.NewQueryStringQuery(query))
	req.Size = limit
	req.Fields = []string{"name", "type", "collection"}
	res, err := index.Search(req)
	if err != nil {
		return nil, 0, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{Key: h.ID, Score: h.Score}
		if s, ok := h.Fields["name"].(string); ok {
			hit.Name = s
		}
		if s, ok := h.Fields["type"].(string); ok {
			hit.Type = s
		}
		if s, ok := h.Fields["collection"].(string); ok {
			hit.Collection = s
		}
		hits = append(hits, hit)
	}
	return hits, res.Total, nil
}
