package convert

import (
	"strconv"
	"strings"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/record"
	"github.com/agentic-research/grimoire/internal/transform"
)

// Weapon converts a weapon record. The weapon class comes from the stated
// category or the directory it sits in ("equipment/weapons/martial/...").
func Weapon(rec *record.Record, target Target) (*api.Document, error) {
	b, err := newBuilder(rec, target)
	if err != nil {
		return nil, err
	}
	sys := WeaponSystem{
		PhysicalItem: b.physical(),
		Properties:   map[string]bool{},
		Activation:   transform.Activation{Type: "action", Cost: 1},
	}

	for _, p := range weaponProperties(rec) {
		label, detail := splitParen(p)
		code, ok := transform.WeaponProperties.Code(label)
		if !ok {
			b.note("weapon property: dropped unrecognized %q", p)
			continue
		}
		sys.Properties[code] = true
		switch code {
		case "ver":
			if f := transform.FirstFormula(detail); f != "" {
				sys.Damage.Versatile = f
			}
		case "thr", "amm":
			if r, ok := parseRangeDetail(detail); ok {
				sys.Range = r
			}
		}
	}

	dmgText := rec.String("damage", "dano", "daño")
	parts := transform.ExtractDamage(dmgText)
	if dt := rec.String("damage_type", "tipo_de_dano", "tipo_de_daño"); dt != "" {
		code, ok := transform.DamageTypes.Code(dt)
		if !ok {
			b.note("damage type: dropped unrecognized %q", dt)
		}
		for i := range parts {
			if parts[i].Type == "" {
				parts[i].Type = code
			}
		}
	}
	if len(parts) == 0 {
		if dmgText != "" {
			b.note("damage: no dice formula in %q", dmgText)
		}
		parts = []transform.DamagePart{}
	}
	sys.Damage.Parts = parts
	if v := rec.String("versatile", "versatil", "versátil"); v != "" {
		sys.Damage.Versatile = transform.FirstFormula(v)
	}
	if r := rec.String("range", "alcance", "distancia"); r != "" {
		if rng, ok := parseRangeDetail(r); ok {
			sys.Range = rng
		}
	}

	hint := b.categoryHint("category", "categoria", "categoría", "weapon_type", "tipo_de_arma", "tipo")
	ranged := sys.Properties["amm"] || strings.Contains(hint, "ranged") || strings.Contains(hint, "distancia")
	var class string
	switch {
	case strings.Contains(hint, "natural"):
		class = "natural"
	case strings.Contains(hint, "martial") || strings.Contains(hint, "marcial"):
		class = "martial"
	case strings.Contains(hint, "simple") || strings.Contains(hint, "sencilla"):
		class = "simple"
	default:
		class = "simple"
		b.note("weapon category: not stated, using simple")
	}
	sys.WeaponType = class
	if class != "natural" {
		if ranged {
			sys.WeaponType += "R"
		} else {
			sys.WeaponType += "M"
		}
	}

	sys.ActionType = "mwak"
	if ranged {
		sys.ActionType = "rwak"
	}
	if sys.Range.Units == "" && !ranged {
		sys.Range = transform.Range{Value: 5, Units: "ft"}
		if sys.Properties["rch"] {
			sys.Range.Value = 10
		}
	}
	if n := rec.Int(0, "magic_bonus", "attack_bonus", "bonificador_magico", "bonificador"); n != 0 {
		sys.AttackBonus = strconv.Itoa(n)
		sys.Properties["mgc"] = true
	}

	b.doc.System = sys
	return b.doc, nil
}

// weaponProperties lists property entries. A text list is split on commas
// outside parentheses so "Thrown (range 6/18 m)" stays whole.
func weaponProperties(rec *record.Record) []string {
	switch v := rec.Get("properties", "propiedades").(type) {
	case []any:
		var out []string
		for _, e := range v {
			if s := record.Text(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case nil:
		return nil
	default:
		text := record.Text(v)
		if isNone(text) {
			return nil
		}
		return splitOutsideParens(text)
	}
}

func splitOutsideParens(text string) []string {
	var (
		out   []string
		depth int
		start int
	)
	flush := func(end int) {
		if s := strings.TrimSpace(text[start:end]); s != "" {
			out = append(out, s)
		}
	}
	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',', ';':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(text))
	return out
}

// splitParen splits "Versatile (1d10)" into "Versatile" and "1d10".
func splitParen(s string) (string, string) {
	i := strings.Index(s, "(")
	if i < 0 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:i]), strings.Trim(strings.TrimSpace(s[i:]), "()")
}

// parseRangeDetail reads "range 6/18 m", "6/18 m" or a single distance.
func parseRangeDetail(text string) (transform.Range, bool) {
	if r, ok := transform.ParseRange(text); ok {
		return r, true
	}
	if r, ok := transform.ParseRange("range " + text); ok {
		return r, true
	}
	if ft, ok := transform.ParseDistance(text); ok {
		return transform.Range{Value: ft, Units: "ft"}, true
	}
	return transform.Range{}, false
}
