package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/record"
	"github.com/agentic-research/grimoire/internal/transform"
)

var (
	prerequisiteKeys = []string{"prerequisite", "prerequisites", "requirements", "prerrequisito", "prerrequisitos", "requisito", "requisitos"}
	hitDieRe         = regexp.MustCompile(`(?i)d(\d+)`)
)

// physicalTypes are item types that are carried and priced.
var physicalTypes = map[string]bool{
	"consumable": true,
	"tool":       true,
	"loot":       true,
	"container":  true,
}

// Item converts every item type without a dedicated converter: consumables,
// tools, loot, feats and class features, backgrounds, classes, subclasses and
// races.
func Item(rec *record.Record, target Target) (*api.Document, error) {
	b, err := newBuilder(rec, target)
	if err != nil {
		return nil, err
	}
	sys := ItemSystem{
		Description: b.description(),
		Source:      sourceOf(rec),
		Identifier:  Slug(b.doc.Name),
	}
	if physicalTypes[target.Type] {
		sys.Quantity = rec.Int(1, quantityKeys...)
		sys.Weight = b.weight()
		sys.Price = b.price()
		sys.Rarity = b.rarity()
	}

	switch target.Type {
	case "consumable":
		b.consumable(&sys)
	case "tool":
		if cat := rec.String("category", "categoria", "categoría", "tool_type", "tipo"); cat != "" {
			sys.Type = &ItemSubtype{Value: Slug(cat)}
		}
	case "feat":
		b.feat(&sys)
	case "background":
		sys.Skills = b.skillSet("skill_proficiencies", "skills", "habilidades", "competencias_en_habilidades")
		sys.Tools = rec.String("tool_proficiencies", "tools", "herramientas", "competencias_con_herramientas")
	case "class":
		b.class(&sys)
	case "subclass":
		cls := rec.String("class", "clase")
		if cls == "" {
			cls = pathSegment(rec.Path, 1)
		}
		sys.ClassIdentifier = Slug(cls)
	case "race":
		b.race(&sys)
	}

	b.doc.System = sys
	return b.doc, nil
}

func (b *builder) consumable(sys *ItemSystem) {
	text := b.rec.String("consumable_type", "subtype", "subtipo", "category", "categoria", "categoría", "tipo")
	kind, ok := transform.ConsumableTypes.Code(text)
	if !ok {
		kind, ok = transform.ConsumableTypes.Find(b.categoryHint() + " " + b.doc.Name)
	}
	if !ok {
		kind = transform.ConsumableTypes.Fallback()
	}
	sys.Type = &ItemSubtype{Value: kind}
	b.usesAndActivation(sys)
	if parts := transform.ExtractDamage(b.rec.String("effect", "efecto", "healing", "curacion", "curación", "damage", "dano", "daño")); len(parts) > 0 {
		sys.Damage = &Damage{Parts: parts}
	}
}

func (b *builder) feat(sys *ItemSystem) {
	kind := "feat"
	if strings.HasPrefix(b.rec.Path, "classes/") {
		kind = "class"
	}
	sys.Type = &ItemSubtype{Value: kind}
	sys.Requirements = b.rec.String(prerequisiteKeys...)
	if sys.Requirements == "" && kind == "class" {
		cls := pathSegment(b.rec.Path, 1)
		if lvl := b.rec.Int(0, "level", "nivel"); lvl > 0 {
			sys.Requirements = fmt.Sprintf("%s %d", titleCase(cls), lvl)
		} else {
			sys.Requirements = titleCase(cls)
		}
	}
	b.usesAndActivation(sys)
}

func (b *builder) usesAndActivation(sys *ItemSystem) {
	if text := b.rec.String("activation", "activacion", "activación", "action", "accion", "acción", "casting_time"); text != "" {
		act := transform.ParseActivation(text)
		sys.Activation = &act
	}
	uses := transform.ParseUses(b.rec.String("uses", "usos", "charges", "cargas", "recharge", "recarga"))
	if uses.Empty() {
		if n := b.rec.Int(0, "uses", "usos", "charges", "cargas"); n > 0 {
			uses = transform.Uses{Value: n, Max: fmt.Sprint(n)}
		}
	}
	if !uses.Empty() {
		sys.Uses = &uses
	}
}

func (b *builder) class(sys *ItemSystem) {
	sys.Levels = 1
	if m := hitDieRe.FindStringSubmatch(b.rec.String("hit_die", "hit_dice", "dado_de_golpe", "dados_de_golpe")); m != nil {
		sys.HitDice = "d" + m[1]
	} else {
		b.note("hit die: missing")
	}
	saves, unknown := transform.Abilities.ParseSet(b.rec.String("saving_throws", "saves", "tiradas_de_salvacion", "tiradas_de_salvación", "salvaciones"))
	for _, u := range unknown {
		b.note("saving throw: dropped unrecognized %q", u)
	}
	sys.Saves = saves
	if text := b.rec.String("spellcasting_ability", "spellcasting", "caracteristica_de_lanzamiento", "aptitud_magica"); text != "" {
		code, ok := transform.Abilities.Code(text)
		if !ok {
			code, ok = transform.Abilities.Find(text)
		}
		if !ok {
			b.note("spellcasting ability: dropped unrecognized %q", text)
		}
		sys.Spellcasting = code
	}
	sys.Skills = b.skillSet("skill_proficiencies", "skills", "habilidades")
}

func (b *builder) race(sys *ItemSystem) {
	if text := b.rec.String("size", "tamano", "tamaño"); text != "" {
		sys.Size = transform.Sizes.CodeOr(text)
	}
	if b.rec.Has("speed", "velocidad", "movement", "movimiento") {
		mv := b.movement()
		sys.Movement = &mv
	}
	if text := b.rec.String("darkvision", "vision_en_la_oscuridad", "visión_en_la_oscuridad"); text != "" {
		sys.Darkvision, _ = transform.ParseDistance(text)
	} else if s := b.senses(); s.Darkvision > 0 {
		sys.Darkvision = s.Darkvision
	}
}

// skillSet maps a skill list to codes, noting unrecognized entries.
func (b *builder) skillSet(keys ...string) []string {
	text := b.rec.String(keys...)
	if isNone(text) {
		return nil
	}
	codes, unknown := transform.Skills.ParseSet(text)
	for _, u := range unknown {
		b.note("skill: dropped unrecognized %q", u)
	}
	return codes
}

// pathSegment returns the i-th slash-separated segment of p, or "".
func pathSegment(p string, i int) string {
	segs := strings.Split(p, "/")
	if i < len(segs)-1 {
		return segs[i]
	}
	return ""
}

func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
