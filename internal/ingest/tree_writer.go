package ingest

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/agentic-research/grimoire/api"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// TreeWriter mirrors the source layout under the output root, grouped by
// collection: {collection}/{category dirs}/{stem}.json.
type TreeWriter struct {
	fs billy.Filesystem
	mu sync.Mutex
}

// NewTreeWriter writes into fs. Existing files are overwritten.
func NewTreeWriter(fs billy.Filesystem) *TreeWriter {
	return &TreeWriter{fs: fs}
}

// OutputPath returns where the document for relPath is written.
func OutputPath(collection, relPath string) string {
	dir, base := path.Split(relPath)
	stem := strings.TrimSuffix(base, path.Ext(base))
	return path.Join(collection, dir, stem+".json")
}

// Write stores data through a temp file and a rename so readers never see a
// partial document.
func (w *TreeWriter) Write(relPath string, doc *api.Document, data []byte) error {
	out := OutputPath(api.CollectionFor(doc.Type), relPath)
	dir := path.Dir(out)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := util.TempFile(w.fs, dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = w.fs.Remove(name)
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := tmp.Close(); err != nil {
		_ = w.fs.Remove(name)
		return fmt.Errorf("close %s: %w", out, err)
	}
	if err := w.fs.Rename(name, out); err != nil {
		_ = w.fs.Remove(name)
		return fmt.Errorf("rename %s: %w", out, err)
	}
	return nil
}

func (w *TreeWriter) Close() error { return nil }

var _ Sink = (*TreeWriter)(nil)
