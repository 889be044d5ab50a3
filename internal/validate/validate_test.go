package validate

import (
	"testing"

	"github.com/agentic-research/grimoire/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func baseDoc(collection, docType string) *api.Document {
	id := "goblin0a1b2c3d"
	return &api.Document{
		ID:        id,
		Key:       "!" + collection + "!" + id,
		Name:      "Goblin",
		Type:      docType,
		Image:     "icons/svg/mystery-man.svg",
		System:    map[string]any{},
		Effects:   []any{},
		Ownership: &api.Ownership{Default: api.OwnershipNone},
		Flags: &api.Flags{Provenance: api.Provenance{
			OriginalID: "goblin",
			Source:     "creatures/goblin.yaml",
			Notes:      []string{},
		}},
	}
}

func embedded(collection, embeddedName string) api.Document {
	return api.Document{
		ID:      "scimitar11223344",
		Key:     "!" + collection + "." + embeddedName + "!goblin0a1b2c3d.scimitar11223344",
		Name:    "Scimitar",
		Type:    "weapon",
		System:  map[string]any{},
		Effects: []any{},
		Sort:    100000,
	}
}

func TestValidator_Accepts(t *testing.T) {
	v := newValidator(t)

	actor := baseDoc("actors", "npc")
	actor.Items = []api.Document{embedded("actors", "items")}
	_, err := v.Document(actor)
	require.NoError(t, err)

	journal := baseDoc("journal", "journal")
	journal.Ownership.Default = api.OwnershipObserver
	page := embedded("journal", "pages")
	page.Type = "text"
	journal.Pages = []api.Document{page}
	_, err = v.Document(journal)
	require.NoError(t, err)

	weapon := baseDoc("items", "weapon")
	data, err := v.Document(weapon)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"_key": "!items!goblin0a1b2c3d"`)
}

func TestValidator_Rejects(t *testing.T) {
	v := newValidator(t)
	tests := []struct {
		name   string
		mutate func(d *api.Document)
		path   string
	}{
		{"empty name", func(d *api.Document) { d.Name = "" }, "/name"},
		{"bad id", func(d *api.Document) { d.ID = "Not An Id" }, "/_id"},
		{"actor key on item type", func(d *api.Document) { d.Type = "weapon" }, "/"},
		{"item key on actor type", func(d *api.Document) { d.Key = "!items!goblin0a1b2c3d" }, "/_key"},
		{"bad ownership", func(d *api.Document) { d.Ownership.Default = 7 }, "/ownership/default"},
		{"missing provenance source", func(d *api.Document) { d.Flags.Provenance.Source = "" }, "/flags/provenance/source"},
		{"bad embedded key", func(d *api.Document) {
			e := embedded("actors", "items")
			e.Key = "!actors!x"
			d.Items = []api.Document{e}
		}, "/items/0/_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := baseDoc("actors", "npc")
			tt.mutate(doc)
			_, err := v.Document(doc)
			require.Error(t, err)

			var verr *Error
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Violations)
			paths := make([]string, 0, len(verr.Violations))
			for _, vi := range verr.Violations {
				paths = append(paths, vi.Path)
			}
			assert.Contains(t, paths, tt.path)
			assert.Contains(t, err.Error(), "document failed validation")
		})
	}
}

func TestValidator_JournalNeedsPages(t *testing.T) {
	v := newValidator(t)
	doc := baseDoc("journal", "journal")
	_, err := v.Document(doc)
	require.Error(t, err)
}

func TestValidator_TableNeedsResults(t *testing.T) {
	v := newValidator(t)
	doc := baseDoc("tables", "table")
	_, err := v.Document(doc)
	require.Error(t, err)
}

func TestValidator_RejectsNonJSON(t *testing.T) {
	v := newValidator(t)
	assert.Error(t, v.Validate([]byte("{not json")))
}
