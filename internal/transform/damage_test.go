package transform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDamage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []DamagePart
	}{
		{"bare formula and type", "1d6 piercing", []DamagePart{{"1d6", "piercing"}}},
		{"average in front", "7 (1d8 + 3) piercing damage", []DamagePart{{"1d8 + 3", "piercing"}}},
		{"compact modifier", "1d6+2 slashing", []DamagePart{{"1d6 + 2", "slashing"}}},
		{"uppercase dice", "2D8−1 Cold", []DamagePart{{"2d8 - 1", "cold"}}},
		{"spanish with filler", "7 (1d8 + 3) de daño perforante", []DamagePart{{"1d8 + 3", "piercing"}}},
		{"spanish points", "2d6 puntos de daño de fuego", []DamagePart{{"2d6", "fire"}}},
		{"english points", "3d6 points of fire damage", []DamagePart{{"3d6", "fire"}}},
		{"two parts", "1d8 slashing plus 2d6 fire", []DamagePart{{"1d8", "slashing"}, {"2d6", "fire"}}},
		{"unknown word", "1d4 sparkly", []DamagePart{{"1d4", ""}}},
		{"formula at end", "deals 1d10", []DamagePart{{"1d10", ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDamage(tt.in))
		})
	}
}

func TestExtractDamage_NoDice(t *testing.T) {
	assert.Empty(t, ExtractDamage("The creature takes 5 damage"))
	assert.Empty(t, ExtractDamage(""))
}

func TestDamagePartJSON(t *testing.T) {
	out, err := json.Marshal(ExtractDamage("1d6 piercing"))
	require.NoError(t, err)
	assert.JSONEq(t, `[["1d6","piercing"]]`, string(out))
}

func TestNormalizeFormula(t *testing.T) {
	assert.Equal(t, "1d6 + 2", NormalizeFormula("1D6+2"))
	assert.Equal(t, "2d4 - 1", NormalizeFormula(" 2d4 −1 "))
	assert.Equal(t, "1d8", NormalizeFormula("1d8"))
}

func TestFirstFormula(t *testing.T) {
	assert.Equal(t, "2d6 + 4", FirstFormula("Hit: 11 (2d6+4) bludgeoning"))
	assert.Empty(t, FirstFormula("no dice"))
}
