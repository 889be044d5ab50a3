package convert

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/record"
	"github.com/agentic-research/grimoire/internal/transform"
)

var (
	referenceKeys = []string{"reference", "see", "canonical", "ref", "referencia", "ver"}
	healingRe     = regexp.MustCompile(`(?i)\b(?:heal|heals|healing|regain|regains|cura|curar|recupera|recuperan)\b`)
	spellAttackRe = regexp.MustCompile(`(?i)\b(?:spell attack|ataque de conjuro|ataque con conjuro)\b`)
	saveMentionRe = regexp.MustCompile(`(?i)saving throw|tirada de salvaci[oó]n|salvaci[oó]n de`)
)

// IsReference reports whether a spell record only points at an entry in an
// external spell catalogue and carries no content of its own.
func IsReference(rec *record.Record) bool {
	return rec.String(referenceKeys...) != "" && rec.String(descriptionKeys...) == ""
}

// Spell converts a spell record. Reference stubs yield ErrSkip.
func Spell(rec *record.Record, target Target) (*api.Document, error) {
	if IsReference(rec) {
		return nil, fmt.Errorf("%w: %s refers to %s", ErrSkip, rec.Path, rec.String(referenceKeys...))
	}
	b, err := newBuilder(rec, target)
	if err != nil {
		return nil, err
	}
	desc := rec.String(descriptionKeys...)
	sys := SpellSystem{
		Description: b.description(),
		Source:      sourceOf(rec),
		Level:       b.spellLevel(),
		Preparation: Preparation{Mode: "prepared"},
		Classes:     []string{},
		Identifier:  Slug(b.doc.Name),
	}

	if text := rec.String("school", "escuela"); text != "" {
		school, ok := transform.Schools.Code(text)
		if !ok {
			b.note("school: dropped unrecognized %q", text)
		}
		sys.School = school
	}

	compText := rec.String("components", "componentes")
	sys.Components = transform.ParseComponents(compText)
	materials := rec.String("material", "materials", "materiales")
	if materials == "" {
		materials = sys.Components.Materials
	}
	if materials != "" {
		sys.Components.Material = true
		sys.Materials = parseMaterials(materials)
	}
	sys.Components.Ritual = rec.Bool("ritual") || strings.Contains(transform.Fold(compText+" "+rec.String("level", "nivel")), "ritual")

	sys.Activation = transform.ParseActivation(rec.String("casting_time", "tiempo_de_lanzamiento", "activation", "lanzamiento"))
	sys.Duration = transform.ParseDuration(rec.String("duration", "duracion", "duración"))
	sys.Components.Concentration = sys.Duration.Concentration || rec.Bool("concentration", "concentracion", "concentración")
	sys.Range, sys.Target = transform.ParseSpellRange(rec.String("range", "alcance"))
	if sys.Target.Type == "" {
		if area := rec.String("area", "area_of_effect", "area_de_efecto", "área", "target", "objetivo"); area != "" {
			sys.Target = transform.ParseArea(area)
		}
	}

	parts := transform.ExtractDamage(rec.String("damage", "dano", "daño"))
	if len(parts) == 0 {
		parts = transform.ExtractDamage(desc)
	}
	if dt := rec.String("damage_type", "tipo_de_dano", "tipo_de_daño"); dt != "" {
		code, _ := transform.DamageTypes.Code(dt)
		for i := range parts {
			if parts[i].Type == "" {
				parts[i].Type = code
			}
		}
	}
	if parts == nil {
		parts = []transform.DamagePart{}
	}
	sys.Damage = Damage{Parts: parts}

	sys.Save = b.spellSave(desc)
	attack := rec.String("attack", "attack_type", "ataque", "tipo_de_ataque")
	switch {
	case attack != "" || spellAttackRe.MatchString(desc):
		sys.ActionType = transform.AttackKind("spell attack "+attack, desc)
	case sys.Save != nil:
		sys.ActionType = "save"
	case len(parts) > 0 && healingRe.MatchString(desc):
		sys.ActionType = "heal"
	case len(parts) > 0:
		sys.ActionType = "other"
	default:
		sys.ActionType = "util"
	}

	higher := rec.String("higher_levels", "at_higher_levels", "a_niveles_superiores", "niveles_superiores", "en_niveles_superiores")
	sys.Scaling = Scaling{Mode: "none"}
	if sys.Level == 0 && len(parts) > 0 {
		sys.Scaling.Mode = "cantrip"
	}
	if higher != "" {
		sys.Description.Value += "<p><strong>At Higher Levels.</strong> " + html.EscapeString(higher) + "</p>"
		if sys.Level > 0 {
			sys.Scaling = Scaling{Mode: "level", Formula: transform.FirstFormula(higher)}
		}
	}

	for _, c := range rec.Strings("classes", "clases") {
		for _, tok := range transform.SplitList(c) {
			sys.Classes = append(sys.Classes, Slug(tok))
		}
	}

	b.doc.System = sys
	return b.doc, nil
}

func (b *builder) spellLevel() int {
	v := b.rec.Get("level", "nivel")
	if n, ok := v.(int); ok && n >= 0 && n <= 9 {
		return n
	}
	if lvl, ok := transform.ParseSpellLevel(record.Text(v)); ok {
		return lvl
	}
	if b.rec.Bool("cantrip", "truco") {
		return 0
	}
	b.note("level: unreadable %q, using 0", record.Text(v))
	return 0
}

// spellSave reads an explicit save field, or a saving throw named in the
// description. Spell saves scale with the caster's DC.
func (b *builder) spellSave(desc string) *SaveBlock {
	text := b.rec.String("save", "saving_throw", "salvacion", "salvación", "tirada_de_salvacion")
	if text == "" {
		loc := saveMentionRe.FindStringIndex(desc)
		if loc == nil {
			return nil
		}
		lo := max(0, loc[0]-40)
		hi := min(len(desc), loc[1]+40)
		for lo > 0 && !utf8.RuneStart(desc[lo]) {
			lo--
		}
		for hi < len(desc) && !utf8.RuneStart(desc[hi]) {
			hi++
		}
		text = desc[lo:hi]
	}
	code, ok := transform.Abilities.Code(text)
	if !ok {
		code, ok = transform.Abilities.Find(text)
	}
	if !ok {
		b.note("save: no ability in %q", text)
		return nil
	}
	return &SaveBlock{Ability: code, Scaling: "spell"}
}

var (
	consumedRe     = regexp.MustCompile(`(?i)\b(?:consumes|consumed|se consume|consume)\b`)
	materialCostRe = regexp.MustCompile(`(?i)\d[\d.,]*\s*(?:gp|pp|ep|sp|cp|po|pe|pc|ppt|mo|mp|mc)\b`)
)

// parseMaterials reads "a diamond worth 300 gp, which the spell consumes".
func parseMaterials(text string) Materials {
	m := Materials{Value: text, Consumed: consumedRe.MatchString(text)}
	if cost := materialCostRe.FindString(text); cost != "" {
		if p, ok := transform.NormalizePrice(cost); ok {
			m.Cost = p.Value
		}
	}
	return m
}
