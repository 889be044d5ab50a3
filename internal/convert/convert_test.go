package convert

import (
	"errors"
	"testing"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/record"
	"github.com/agentic-research/grimoire/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse decodes an inline YAML record at path.
func parse(t *testing.T, path, content string) *record.Record {
	t.Helper()
	rec, err := record.Parse(path, []byte(content))
	require.NoError(t, err)
	return rec
}

func target(docType string) Target {
	return Target{Rule: "test", Collection: api.CollectionFor(docType), Type: docType}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"armor", "creature", "item", "journal", "spell", "table", "weapon"}, r.Kinds())
	assert.Equal(t, []string{"vehicle"}, r.Missing([]string{"creature", "vehicle", "table"}))
	assert.Empty(t, r.Missing(nil))
}

func TestRegistry_ConvertUnknownKind(t *testing.T) {
	r := NewRegistry()
	_, err := r.Convert("creature", record.New("a.yaml", nil), target("npc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"creature"`)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	called := false
	r.Register("custom", ConverterFunc(func(rec *record.Record, tg Target) (*api.Document, error) {
		called = true
		return &api.Document{Name: rec.String("name"), Type: tg.Type}, nil
	}))
	c, ok := r.Lookup("custom")
	require.True(t, ok)
	assert.NotNil(t, c)

	doc, err := r.Convert("custom", record.New("x.yaml", map[string]any{"name": "X"}), target("loot"))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "X", doc.Name)
	assert.Equal(t, "loot", doc.Type)
}

func TestMissingName(t *testing.T) {
	rec := parse(t, "equipment/weapons/nameless.yaml", "damage: 1d4 piercing\n")
	for kind, c := range map[string]ConverterFunc{"weapon": Weapon, "armor": Armor, "item": Item, "creature": Creature} {
		t.Run(kind, func(t *testing.T) {
			_, err := c(rec, target("weapon"))
			assert.ErrorIs(t, err, ErrMissingName)
		})
	}
}

func TestEnvelope(t *testing.T) {
	rec := parse(t, "equipment/weapons/simple/01-club.yaml", "name: Club\ndamage: 1d4 bludgeoning\n")
	doc, err := Weapon(rec, target("weapon"))
	require.NoError(t, err)

	assert.Regexp(t, `^club[0-9a-f]{8}$`, doc.ID)
	assert.Equal(t, "!items!"+doc.ID, doc.Key)
	assert.Equal(t, "icons/svg/sword.svg", doc.Image)
	assert.Equal(t, api.OwnershipNone, doc.Ownership.Default)
	assert.Equal(t, "club", doc.Flags.Provenance.OriginalID)
	assert.Equal(t, "equipment/weapons/simple/01-club.yaml", doc.Flags.Provenance.Source)
	assert.NotNil(t, doc.Effects)

	again, err := Weapon(parse(t, "equipment/weapons/simple/01-club.yaml", "name: Club\ndamage: 1d4 bludgeoning\n"), target("weapon"))
	require.NoError(t, err)
	assert.Equal(t, doc.ID, again.ID)
}

func TestEnvelope_OriginalIDFromRecord(t *testing.T) {
	rec := parse(t, "feats/alert.yaml", "id: feat-alert\nname: Alert\n")
	doc, err := Item(rec, target("feat"))
	require.NoError(t, err)
	assert.Equal(t, "feat-alert", doc.Flags.Provenance.OriginalID)
}

func TestConvertedDocumentsValidate(t *testing.T) {
	v, err := validate.New()
	require.NoError(t, err)

	cases := []struct {
		kind string
		path string
		typ  string
		body string
	}{
		{"creature", "creatures/giants/ogre.yaml", "npc", ogreYAML},
		{"weapon", "equipment/weapons/martial/shortsword.yaml", "weapon", "name: Shortsword\ndamage: 1d6 piercing\n"},
		{"armor", "equipment/armor/chain-mail.yaml", "equipment", "name: Chain Mail\ncategory: Heavy\nac: 16\n"},
		{"spell", "spells/3/fireball.yaml", "spell", fireballYAML},
		{"item", "classes/wizard/features/arcane-recovery.yaml", "feat", "name: Arcane Recovery\nlevel: 2\n"},
		{"journal", "rules/resting.yaml", "journal", "name: Resting\ncontent: Take a break.\n"},
		{"table", "tables/encounters.yaml", "table", "name: Encounters\nentries: [Goblins, Wolves]\n"},
	}
	r := DefaultRegistry()
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			doc, err := r.Convert(tc.kind, parse(t, tc.path, tc.body), target(tc.typ))
			require.NoError(t, err)
			_, err = v.Document(doc)
			assert.NoError(t, err)
		})
	}
}

func TestSkipIsDistinguishable(t *testing.T) {
	err := errors.Join(errors.New("context"), ErrSkip)
	assert.ErrorIs(t, err, ErrSkip)
	assert.NotErrorIs(t, ErrMissingName, ErrSkip)
}
