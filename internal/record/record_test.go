package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goblinYAML = `
name: Goblin
nombre: Trasgo
size: Small
stats:
  str: 8
  dex: "14"
speed:
  walk: 9 m
armor_class: 15 (leather armor, shield)
legendary: sí
languages: Common
actions:
  - name: Scimitar
    description: "Melee Weapon Attack: +4 to hit"
  - "Nimble Escape. The goblin can take the Disengage action."
traits:
  Keen Smell: Advantage on smell checks.
  Darkvision:
    description: Sees in the dark.
`

func TestParse_YAML(t *testing.T) {
	r, err := Parse("creatures/goblin.yaml", []byte(goblinYAML))
	require.NoError(t, err)

	assert.Equal(t, "creatures/goblin.yaml", r.Path)
	assert.Equal(t, "Goblin", r.String("name"))
	assert.Equal(t, "Trasgo", r.String("nombre", "name"))
	assert.Equal(t, "Goblin", r.String("title", "name"))
	assert.Equal(t, 8, r.Int(10, "stats.str"))
	assert.Equal(t, 14, r.Int(10, "stats.dex"))
	assert.Equal(t, 10, r.Int(10, "stats.con"))
	assert.Equal(t, "9 m", r.String("$..walk"))
	assert.True(t, r.Has("speed"))
	assert.False(t, r.Has("missing", "also.missing"))
	assert.True(t, r.Bool("legendary"))
	assert.Equal(t, []string{"Common"}, r.Strings("languages"))

	ac, ok := r.Number("armor_class")
	require.True(t, ok)
	assert.Equal(t, 15.0, ac)
}

func TestParse_JSON(t *testing.T) {
	r, err := Parse("equipment/weapons/dagger.json", []byte(`{
		"name": "Dagger",
		"damage": "1d4 piercing",
		"weight": 0.5,
		"cost": 2,
		"properties": ["Finesse", "Light", "Thrown"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Dagger", r.String("name"))
	assert.Equal(t, 2, r.Int(0, "cost"))
	w, ok := r.Number("weight")
	require.True(t, ok)
	assert.Equal(t, 0.5, w)
	assert.Equal(t, []string{"Finesse", "Light", "Thrown"}, r.Strings("properties"))
	assert.Equal(t, "Finesse, Light, Thrown", r.String("properties"))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("empty.yaml", []byte(""))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse("list.yaml", []byte("- a\n- b\n"))
	assert.Error(t, err)

	_, err = Parse("broken.yaml", []byte("name: [unclosed"))
	assert.Error(t, err)

	_, err = Parse("broken.json", []byte(`{"name": `))
	assert.Error(t, err)
}

func TestParse_NonStringKeys(t *testing.T) {
	r, err := Parse("tables/t.yaml", []byte("1: one\n2: two\n"))
	require.NoError(t, err)
	assert.Equal(t, "one", r.String("1"))
	assert.Equal(t, "two", r.String("2"))
}

func TestRecords(t *testing.T) {
	r, err := Parse("creatures/goblin.yaml", []byte(goblinYAML))
	require.NoError(t, err)

	actions := r.Records("actions")
	require.Len(t, actions, 2)
	assert.Equal(t, "Scimitar", actions[0].String("name"))
	assert.Equal(t, "Nimble Escape", actions[1].String("name"))
	assert.Equal(t, "The goblin can take the Disengage action.", actions[1].String("description"))

	traits := r.Records("traits")
	require.Len(t, traits, 2)
	assert.Equal(t, "Darkvision", traits[0].String("name"))
	assert.Equal(t, "Sees in the dark.", traits[0].String("description"))
	assert.Equal(t, "Keen Smell", traits[1].String("name"))
	assert.Equal(t, "Advantage on smell checks.", traits[1].String("description"))

	assert.Empty(t, r.Records("reactions"))
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{15, 15, true},
		{int64(7), 7, true},
		{2.5, 2.5, true},
		{"15 (leather armor)", 15, true},
		{"−2", -2, true},
		{"1,5 kg", 1.5, true},
		{"1,800", 1800, true},
		{"5,900 XP", 5900, true},
		{"1.500", 1500, true},
		{"-1,200", -1200, true},
		{"0,125", 0.125, true},
		{"none", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := Number(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestIsRecordFile(t *testing.T) {
	assert.True(t, IsRecordFile("a/b.yaml"))
	assert.True(t, IsRecordFile("a/b.YML"))
	assert.True(t, IsRecordFile("b.json"))
	assert.False(t, IsRecordFile("README.md"))
	assert.False(t, IsRecordFile("image.png"))
}

func TestNew(t *testing.T) {
	r := New("x.yaml", nil)
	assert.NotNil(t, r.Data())
	assert.Empty(t, r.String("name"))
}
