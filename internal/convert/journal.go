package convert

import (
	"fmt"
	"path"
	"sort"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/record"
)

var (
	sectionKeys = []string{"sections", "secciones", "pages", "paginas", "páginas", "chapters", "capitulos", "capítulos"}
	contentKeys = []string{"content", "contenido", "body", "cuerpo", "paragraphs", "parrafos", "párrafos", "text", "texto", "description", "descripcion", "descripción"}
)

// Journal converts rule text into a journal entry with one text page per
// section, or a single page for the whole content.
func Journal(rec *record.Record, target Target) (*api.Document, error) {
	b, err := newBuilder(rec, target)
	if err != nil {
		return nil, err
	}

	var pages []api.Document
	switch v := rec.Get(sectionKeys...).(type) {
	case []any:
		for i, e := range v {
			title, content := b.section(e, i)
			pages = append(pages, b.page(i, title, content))
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			pages = append(pages, b.page(i, k, renderHTML(v[k])))
		}
	}
	if len(pages) == 0 {
		content := rec.Get(contentKeys...)
		if content == nil {
			b.note("journal: no content")
		}
		pages = append(pages, b.page(0, b.doc.Name, renderHTML(content)))
	}

	category := path.Dir(rec.Path)
	if category == "." {
		category = ""
	}
	b.doc.System = JournalSystem{Category: category, Source: sourceOf(rec)}
	b.doc.Pages = pages
	return b.doc, nil
}

// section reads one section entry: a mapping with a heading and content, or
// bare text.
func (b *builder) section(e any, i int) (string, string) {
	m, ok := e.(map[string]any)
	if !ok {
		return fmt.Sprintf("%s (%d)", b.doc.Name, i+1), renderHTML(e)
	}
	sub := record.New(b.rec.Path, m)
	title := sub.String(append([]string{"heading", "encabezado"}, nameKeys...)...)
	if title == "" {
		title = fmt.Sprintf("%s (%d)", b.doc.Name, i+1)
	}
	return title, renderHTML(sub.Get(contentKeys...))
}

func (b *builder) page(i int, title, content string) api.Document {
	return b.embed("page", i, title, "text", PageSystem{Text: PageText{Content: content, Format: 1}})
}
