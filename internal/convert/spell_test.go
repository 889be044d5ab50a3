package convert

import (
	"testing"

	"github.com/agentic-research/grimoire/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fireballYAML = `
name: Fireball
level: 3
school: Evocation
casting_time: 1 action
range: 45 meters
components: V, S, M (a tiny ball of bat guano and sulfur)
duration: Instantaneous
description: Each creature in a 6-meter-radius sphere must make a Dexterity saving throw. A target takes 8d6 fire damage on a failed save.
higher_levels: When you cast this spell using a slot of 4th level or higher, the damage increases by 1d6 for each slot level above 3rd.
classes: [Sorcerer, Wizard]
`

func convertSpell(t *testing.T, path, body string) SpellSystem {
	t.Helper()
	doc, err := Spell(parse(t, path, body), target("spell"))
	require.NoError(t, err)
	return doc.System.(SpellSystem)
}

func TestSpell_Fireball(t *testing.T) {
	sys := convertSpell(t, "spells/3/fireball.yaml", fireballYAML)

	assert.Equal(t, 3, sys.Level)
	assert.Equal(t, "evo", sys.School)
	assert.True(t, sys.Components.Vocal)
	assert.True(t, sys.Components.Somatic)
	assert.True(t, sys.Components.Material)
	assert.False(t, sys.Components.Ritual)
	assert.False(t, sys.Components.Concentration)
	assert.Equal(t, "a tiny ball of bat guano and sulfur", sys.Materials.Value)
	assert.Equal(t, transform.Activation{Type: "action", Cost: 1}, sys.Activation)
	assert.Equal(t, "inst", sys.Duration.Units)
	assert.Equal(t, transform.SpellRange{Value: 150, Units: "ft"}, sys.Range)
	assert.Equal(t, []transform.DamagePart{{Formula: "8d6", Type: "fire"}}, sys.Damage.Parts)
	assert.Equal(t, &SaveBlock{Ability: "dex", Scaling: "spell"}, sys.Save)
	assert.Equal(t, "save", sys.ActionType)
	assert.Equal(t, Scaling{Mode: "level", Formula: "1d6"}, sys.Scaling)
	assert.Contains(t, sys.Description.Value, "<strong>At Higher Levels.</strong>")
	assert.Equal(t, []string{"sorcerer", "wizard"}, sys.Classes)
	assert.Equal(t, "fireball", sys.Identifier)
}

func TestSpell_SpanishCantripAttack(t *testing.T) {
	sys := convertSpell(t, "conjuros/0/rayo-de-fuego.yaml", `
nombre: Rayo de fuego
nivel: Truco
escuela: Evocación
tiempo_de_lanzamiento: 1 acción
alcance: 36 m
componentes: V, S
duracion: Instantánea
descripcion: Haces un ataque de conjuro a distancia contra una criatura. Si impacta, recibe 1d10 de daño de fuego.
`)
	assert.Equal(t, 0, sys.Level)
	assert.Equal(t, "evo", sys.School)
	assert.Equal(t, "action", sys.Activation.Type)
	assert.Equal(t, "inst", sys.Duration.Units)
	assert.Equal(t, 120, sys.Range.Value)
	assert.Equal(t, "rsak", sys.ActionType)
	assert.Nil(t, sys.Save)
	assert.Equal(t, []transform.DamagePart{{Formula: "1d10", Type: "fire"}}, sys.Damage.Parts)
	assert.Equal(t, "cantrip", sys.Scaling.Mode)
}

func TestSpell_Healing(t *testing.T) {
	sys := convertSpell(t, "spells/1/cure-wounds.yaml", `
name: Cure Wounds
level: 1st-level evocation
casting_time: 1 action
range: Touch
components: V, S
duration: Concentration, up to 1 minute
description: A creature you touch regains a number of hit points equal to 1d8 + your spellcasting ability modifier.
`)
	assert.Equal(t, 1, sys.Level)
	assert.Equal(t, "heal", sys.ActionType)
	assert.Equal(t, "touch", sys.Range.Units)
	assert.True(t, sys.Components.Concentration)
	assert.Equal(t, transform.Duration{Value: 1, Units: "minute", Concentration: true}, sys.Duration)
}

func TestSpell_MaterialCost(t *testing.T) {
	sys := convertSpell(t, "spells/3/revivify.yaml", `
name: Revivify
level: 3
components: V, S, M
material: diamonds worth 300 gp, which the spell consumes
description: You touch a creature that has died within the last minute.
ritual: false
`)
	assert.True(t, sys.Components.Material)
	assert.Equal(t, Materials{Value: "diamonds worth 300 gp, which the spell consumes", Consumed: true, Cost: 300}, sys.Materials)
	assert.Equal(t, "util", sys.ActionType)
}

func TestSpell_ReferenceIsSkipped(t *testing.T) {
	rec := parse(t, "spells/base/reference/magic-missile.yaml", "name: Magic Missile\nreference: srd/magic-missile\n")
	assert.True(t, IsReference(rec))

	doc, err := Spell(rec, target("spell"))
	assert.Nil(t, doc)
	require.ErrorIs(t, err, ErrSkip)
	assert.Contains(t, err.Error(), "srd/magic-missile")
}

func TestSpell_ReferenceWithContentConverts(t *testing.T) {
	rec := parse(t, "spells/1/shield.yaml", "name: Shield\nsee: srd/shield\ndescription: An invisible barrier of magical force appears.\n")
	assert.False(t, IsReference(rec))
	_, err := Spell(rec, target("spell"))
	assert.NoError(t, err)
}

func TestSpell_UnreadableLevelIsNoted(t *testing.T) {
	doc, err := Spell(parse(t, "spells/odd.yaml", "name: Odd\nlevel: high\n"), target("spell"))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.System.(SpellSystem).Level)
	assert.Contains(t, doc.Flags.Provenance.Notes, `level: unreadable "high", using 0`)
}
