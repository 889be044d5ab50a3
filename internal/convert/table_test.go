package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultRanges(t *testing.T, body string) ([][2]int, TableSystem) {
	t.Helper()
	doc, err := Table(parse(t, "tables/t.yaml", body), target("table"))
	require.NoError(t, err)
	var out [][2]int
	for _, r := range doc.Results {
		out = append(out, r.System.(ResultSystem).Range)
	}
	return out, doc.System.(TableSystem)
}

func TestTable_StatedRanges(t *testing.T) {
	doc, err := Table(parse(t, "tables/encounters.yaml", `
name: Encounters
entries:
  - range: 1-2
    result: Goblins
  - range: 3-5
    result: Wolves
  - range: 6
    result: Dragon
`), target("table"))
	require.NoError(t, err)
	require.Len(t, doc.Results, 3)

	sys := doc.System.(TableSystem)
	assert.Equal(t, "1d6", sys.Formula)
	assert.True(t, sys.Replacement)

	first := doc.Results[0]
	assert.Equal(t, "Goblins", first.Name)
	assert.Equal(t, "text", first.Type)
	assert.Equal(t, "icons/svg/d20-black.svg", first.Image)
	assert.Equal(t, "!tables.results!"+doc.ID+"."+first.ID, first.Key)
	assert.Equal(t, ResultSystem{Text: "Goblins", Range: [2]int{1, 2}, Weight: 2}, first.System)
	assert.Equal(t, [2]int{3, 5}, doc.Results[1].System.(ResultSystem).Range)
	assert.Equal(t, 3, doc.Results[1].System.(ResultSystem).Weight)
	assert.Equal(t, [2]int{6, 6}, doc.Results[2].System.(ResultSystem).Range)
}

func TestTable_InlineRanges(t *testing.T) {
	ranges, sys := resultRanges(t, "name: T\nentries:\n  - \"1-2: Rain\"\n  - \"3: Sun\"\n  - \"4–8. Fog\"\n")
	assert.Equal(t, [][2]int{{1, 2}, {3, 3}, {4, 8}}, ranges)
	assert.Equal(t, "1d8", sys.Formula)
}

func TestTable_Sequential(t *testing.T) {
	ranges, sys := resultRanges(t, `
name: Fruit
without_replacement: true
entries: [Apple, Banana, {result: Cherry, weight: 2}]
`)
	assert.Equal(t, [][2]int{{1, 1}, {2, 2}, {3, 4}}, ranges)
	assert.Equal(t, "1d4", sys.Formula)
	assert.False(t, sys.Replacement)
}

func TestTable_Percentile(t *testing.T) {
	ranges, sys := resultRanges(t, `
name: Loot
formula: 1d100
entries:
  "51-00": Treasure
  "01-50": Nothing
`)
	assert.Equal(t, [][2]int{{1, 50}, {51, 100}}, ranges)
	assert.Equal(t, "1d100", sys.Formula)
}

func TestTable_MappingSameLowRollIsStable(t *testing.T) {
	body := `
name: Weather
entries:
  "3-4": Fog
  "1": Rain
  "01": Drizzle
  "2": Sun
`
	for i := 0; i < 20; i++ {
		doc, err := Table(parse(t, "tables/weather.yaml", body), target("table"))
		require.NoError(t, err)
		var names []string
		for _, r := range doc.Results {
			names = append(names, r.Name)
		}
		assert.Equal(t, []string{"Drizzle", "Rain", "Sun", "Fog"}, names)
	}
}

func TestTable_Errors(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"no entries", "name: Empty\n", "no entries"},
		{"inverted", "name: Bad\nentries:\n  - range: 5-2\n    result: X\n", "inverted"},
		{"unreadable range", "name: Bad\nentries:\n  - range: lots\n    result: X\n", "unreadable range"},
		{"scalar entries", "name: Bad\nentries: 3\n", "want a list or mapping"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Table(parse(t, "tables/bad.yaml", tt.body), target("table"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseRollRange(t *testing.T) {
	tests := []struct {
		in     any
		lo, hi int
	}{
		{3, 3, 3},
		{"3", 3, 3},
		{"1-2", 1, 2},
		{"01–10", 1, 10},
		{"00", 100, 100},
		{[]any{1, 4}, 1, 4},
	}
	for _, tt := range tests {
		lo, hi, err := parseRollRange(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.lo, lo, "%v", tt.in)
		assert.Equal(t, tt.hi, hi, "%v", tt.in)
	}
	_, _, err := parseRollRange([]any{1})
	assert.Error(t, err)
}
