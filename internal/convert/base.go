package convert

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"unicode"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/identity"
	"github.com/agentic-research/grimoire/internal/record"
	"github.com/agentic-research/grimoire/internal/transform"
)

// Key aliases shared by every record family.
var (
	nameKeys        = []string{"name", "nombre", "title", "titulo", "título"}
	descriptionKeys = []string{"description", "descripcion", "descripción", "desc", "text", "texto"}
	imageKeys       = []string{"img", "image", "imagen", "icon"}
	priceKeys       = []string{"cost", "price", "precio", "coste", "costo", "value", "valor"}
	weightKeys      = []string{"weight", "peso"}
	rarityKeys      = []string{"rarity", "rareza"}
	quantityKeys    = []string{"quantity", "cantidad"}
)

const (
	genericImage = "icons/svg/item-bag.svg"
	resultImage  = "icons/svg/d20-black.svg"
	sortStep     = 100000
)

var defaultImages = map[string]string{
	"npc":       "icons/svg/mystery-man.svg",
	"character": "icons/svg/mystery-man.svg",
	"vehicle":   "icons/svg/mystery-man.svg",
	"weapon":    "icons/svg/sword.svg",
	"equipment": "icons/svg/shield.svg",
	"spell":     "icons/svg/book.svg",
	"feat":      "icons/svg/aura.svg",
	"table":     "icons/svg/d20-grey.svg",
	"journal":   "icons/svg/book.svg",
}

// DefaultImage is the placeholder icon for a document type.
func DefaultImage(docType string) string {
	if img, ok := defaultImages[docType]; ok {
		return img
	}
	return genericImage
}

// builder assembles one top-level document and its embedded children.
type builder struct {
	rec        *record.Record
	target     Target
	collection string
	doc        *api.Document
	sort       int
}

// newBuilder fills the base envelope shared by all document families.
func newBuilder(rec *record.Record, target Target) (*builder, error) {
	name := rec.String(nameKeys...)
	if name == "" {
		return nil, ErrMissingName
	}
	collection := target.Collection
	if collection == "" {
		collection = api.CollectionFor(target.Type)
	}
	id := identity.ID(rec.Path)

	img := rec.String(imageKeys...)
	if img == "" {
		img = DefaultImage(target.Type)
	}
	ownership := api.OwnershipNone
	if collection == api.CollectionJournal {
		ownership = api.OwnershipObserver
	}
	original := rec.String("id", "_id", "slug")
	if original == "" {
		original = identity.Sanitize(rec.Path)
	}

	return &builder{
		rec:        rec,
		target:     target,
		collection: collection,
		doc: &api.Document{
			ID:        id,
			Key:       identity.Key(collection, id),
			Name:      name,
			Type:      target.Type,
			Image:     img,
			Effects:   []any{},
			Ownership: &api.Ownership{Default: ownership},
			Flags: &api.Flags{Provenance: api.Provenance{
				OriginalID: original,
				Source:     rec.Path,
				Notes:      []string{},
			}},
		},
	}, nil
}

// note records a lossy decision in the document's provenance.
func (b *builder) note(format string, args ...any) {
	p := &b.doc.Flags.Provenance
	p.Notes = append(p.Notes, fmt.Sprintf(format, args...))
}

// embed builds the index-th embedded document of a role.
func (b *builder) embed(role string, index int, name, docType string, system any) api.Document {
	id := identity.EmbeddedID(b.rec.Path, role, index, name)
	b.sort += sortStep
	doc := api.Document{
		ID:      id,
		Key:     identity.EmbeddedKey(b.collection, api.EmbeddedName(b.collection), b.doc.ID, id),
		Name:    name,
		Type:    docType,
		System:  system,
		Effects: []any{},
		Sort:    b.sort,
	}
	switch b.collection {
	case api.CollectionActors:
		doc.Image = DefaultImage(docType)
	case api.CollectionTables:
		doc.Image = resultImage
	}
	return doc
}

func (b *builder) description() api.Description {
	return api.Description{Value: Paragraphs(b.rec.String(descriptionKeys...))}
}

// traitSet maps a free-text list through enum. Unrecognized tokens are
// dropped and noted.
func (b *builder) traitSet(enum *transform.Enum, keys ...string) Trait {
	t := Trait{Value: []string{}}
	text := b.rec.String(keys...)
	if isNone(text) {
		return t
	}
	codes, unknown := enum.ParseSet(text)
	t.Value = append(t.Value, codes...)
	for _, u := range unknown {
		b.note("%s: dropped unrecognized %q", enum.Name(), u)
	}
	return t
}

// price reads the record's cost in gold pieces.
func (b *builder) price() *transform.Price {
	text := b.rec.String(priceKeys...)
	if text == "" {
		return nil
	}
	p, ok := transform.NormalizePrice(text)
	if !ok {
		b.note("price: unreadable %q", text)
		return nil
	}
	return &p
}

// weight reads the record's weight in pounds.
func (b *builder) weight() float64 {
	text := b.rec.String(weightKeys...)
	if text == "" || isNone(text) {
		return 0
	}
	w, ok := transform.ParseWeight(text)
	if !ok {
		b.note("weight: unreadable %q", text)
	}
	return w
}

func (b *builder) rarity() string {
	text := b.rec.String(rarityKeys...)
	if text == "" {
		return ""
	}
	r, ok := transform.Rarities.Code(text)
	if !ok {
		b.note("rarity: dropped unrecognized %q", text)
	}
	return r
}

// physical fills the fields every carried item has.
func (b *builder) physical() PhysicalItem {
	return PhysicalItem{
		Description: b.description(),
		Source:      sourceOf(b.rec),
		Quantity:    b.rec.Int(1, quantityKeys...),
		Weight:      b.weight(),
		Price:       b.price(),
		Rarity:      b.rarity(),
		Identifier:  Slug(b.doc.Name),
	}
}

// categoryHint is the record's stated category plus its directory names,
// folded, for keyword checks such as "martial" or "ranged".
func (b *builder) categoryHint(keys ...string) string {
	dir := b.rec.Path
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i]
	} else {
		dir = ""
	}
	return transform.Fold(b.rec.String(keys...) + " " + strings.ReplaceAll(dir, "/", " "))
}

func sourceOf(rec *record.Record) api.Source {
	src := api.Source{Rules: rec.String("rules", "reglas", "ruleset")}
	if m := rec.Map("source", "fuente"); m != nil {
		sub := record.New(rec.Path, m)
		src.Book = sub.String("book", "libro", "name", "nombre")
		src.Page = sub.String("page", "pagina", "página")
		return src
	}
	src.Book = rec.String("source", "fuente", "book", "libro")
	src.Page = rec.String("page", "pagina", "página")
	return src
}

func isNone(text string) bool {
	switch transform.Fold(text) {
	case "", "-", "—", "none", "ninguno", "ninguna", "n/a":
		return true
	}
	return false
}

// Slug lowercases and hyphenates a name: "Cota de Malla" -> "cota-de-malla".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range transform.Fold(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// splitLabel splits "Perception +5" or "darkvision 18 m" into the label and
// the remainder starting at the first digit or sign.
func splitLabel(tok string) (string, string) {
	i := strings.IndexFunc(tok, func(r rune) bool {
		return unicode.IsDigit(r) || r == '+' || r == '-' || r == '−'
	})
	if i < 0 {
		return strings.TrimSpace(tok), ""
	}
	return strings.TrimSpace(tok[:i]), strings.TrimSpace(tok[i:])
}

// Paragraphs renders plain text as escaped HTML paragraphs. Blank lines
// separate paragraphs; single newlines become line breaks.
func Paragraphs(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, l := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(l))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

// renderHTML renders a decoded content value: text, a list of paragraphs or
// named entries, or a mapping of headings to text.
func renderHTML(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return Paragraphs(t)
	case []any:
		var b strings.Builder
		for _, e := range t {
			b.WriteString(renderHTML(e))
		}
		return b.String()
	case map[string]any:
		entry := record.New("", t)
		name := entry.String(nameKeys...)
		body := entry.Get(append([]string{"content", "contenido"}, descriptionKeys...)...)
		if name != "" {
			inner := renderHTML(body)
			lead := "<p><strong>" + html.EscapeString(strings.TrimSuffix(name, ".")) + ".</strong> "
			if strings.HasPrefix(inner, "<p>") {
				return lead + strings.TrimPrefix(inner, "<p>")
			}
			return lead + inner + "</p>"
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			b.WriteString("<h3>" + html.EscapeString(k) + "</h3>")
			b.WriteString(renderHTML(t[k]))
		}
		return b.String()
	}
	return Paragraphs(record.Text(v))
}
