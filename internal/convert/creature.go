package convert

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/record"
	"github.com/agentic-research/grimoire/internal/transform"
)

// creatureRoles lists the embedded stat block sections in output order.
var creatureRoles = []struct {
	role       string
	activation string
	keys       []string
}{
	{"trait", "", []string{"traits", "special_abilities", "rasgos", "features", "atributos"}},
	{"action", "action", []string{"actions", "acciones"}},
	{"bonus", "bonus", []string{"bonus_actions", "acciones_adicionales", "acciones_bonus"}},
	{"reaction", "reaction", []string{"reactions", "reacciones"}},
	{"legendary", "legendary", []string{"legendary_actions", "acciones_legendarias"}},
}

var (
	abilityKeys = []string{"abilities", "ability_scores", "stats", "caracteristicas", "características", "puntuaciones"}
	xpInTextRe  = regexp.MustCompile(`(?i)(\d[\d.,]*)\s*(?:XP|PX)`)
)

// Creature converts a monster or character stat block into an actor with its
// traits and actions embedded as items.
func Creature(rec *record.Record, target Target) (*api.Document, error) {
	b, err := newBuilder(rec, target)
	if err != nil {
		return nil, err
	}

	sys := CreatureSystem{
		Abilities: b.abilities(),
		Source:    sourceOf(rec),
	}

	typeText := rec.String("type", "tipo", "creature_type", "tipo_de_criatura")
	sys.Details.Type = b.creatureType(typeText)
	sys.Details.Alignment = rec.String("alignment", "alineamiento")
	sys.Details.Biography = b.description()

	crText := rec.String("challenge", "challenge_rating", "cr", "vd", "valor_de_desafio", "desafio")
	cr, ok := transform.ParseRating(crText)
	if !ok && target.Type == "npc" {
		b.note("challenge rating: unreadable %q, using 0", crText)
	}
	sys.Details.CR = cr
	sys.Details.XP = XP{Value: b.experience(crText, cr)}

	sys.Attributes.AC = b.armorClass()
	sys.Attributes.HP = b.hitPoints()
	sys.Attributes.Movement = b.movement()
	sys.Attributes.Senses = b.senses()

	sys.Traits.Size = b.size(typeText)
	sys.Traits.DI = b.traitSet(transform.DamageTypes, "damage_immunities", "inmunidades_al_dano", "inmunidades_al_daño", "inmunidades_dano")
	sys.Traits.DR = b.traitSet(transform.DamageTypes, "damage_resistances", "resistencias_al_dano", "resistencias_al_daño", "resistencias_dano", "resistencias")
	sys.Traits.DV = b.traitSet(transform.DamageTypes, "damage_vulnerabilities", "vulnerabilidades_al_dano", "vulnerabilidades_al_daño", "vulnerabilidades")
	sys.Traits.CI = b.traitSet(transform.Conditions, "condition_immunities", "inmunidades_a_condiciones", "inmunidades_a_estados", "inmunidades_estado")
	sys.Traits.Languages = b.traitSet(transform.Languages, "languages", "idiomas", "lenguas")

	sys.Skills = b.skills(sys.Abilities, transform.ProficiencyForCR(cr))

	b.doc.System = sys
	b.doc.Items = b.creatureItems()
	return b.doc, nil
}

// abilities reads the six scores from a nested block, or from top-level
// fields named by code or English label.
func (b *builder) abilities() map[string]Ability {
	out := make(map[string]Ability, 6)
	for _, code := range transform.Abilities.Codes() {
		out[code] = Ability{Value: 10}
	}

	scores := b.rec.Map(abilityKeys...)
	if scores == nil {
		scores = make(map[string]any)
		for _, code := range transform.Abilities.Codes() {
			if v := b.rec.Get(code, strings.ToLower(transform.Abilities.Label(code))); v != nil {
				scores[code] = v
			}
		}
	}
	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		code, ok := transform.Abilities.Code(k)
		if !ok {
			b.note("ability: dropped unrecognized %q", k)
			continue
		}
		v := scores[k]
		if m, isMap := v.(map[string]any); isMap {
			v = record.New(b.rec.Path, m).Get("value", "score", "valor", "puntuacion")
		}
		n, ok := record.Number(v)
		if !ok {
			b.note("ability %s: unreadable score %q", code, record.Text(v))
			continue
		}
		out[code] = Ability{Value: int(n), Mod: transform.AbilityModifier(int(n))}
	}

	saves := b.rec.String("saving_throws", "saves", "tiradas_de_salvacion", "tiradas_de_salvación", "salvaciones")
	for _, tok := range transform.SplitList(saves) {
		label, _ := splitLabel(tok)
		code, ok := transform.Abilities.Code(label)
		if !ok {
			b.note("saving throw: dropped unrecognized %q", tok)
			continue
		}
		a := out[code]
		a.Proficient = 1
		out[code] = a
	}
	return out
}

func (b *builder) creatureType(text string) CreatureType {
	ct := CreatureType{}
	base := text
	if i := strings.Index(text, "("); i >= 0 {
		base = strings.TrimSpace(text[:i])
		ct.Subtype = strings.TrimSpace(strings.Trim(text[i:], "()"))
	}
	if sub := b.rec.String("subtype", "subtipo"); sub != "" {
		ct.Subtype = sub
	}
	if base == "" {
		ct.Value = transform.CreatureTypes.Fallback()
		b.note("creature type: missing")
		return ct
	}

	f := transform.Fold(base)
	for _, prefix := range []string{"swarm of ", "enjambre de "} {
		if rest, ok := strings.CutPrefix(f, prefix); ok {
			ct.Swarm, _ = transform.Sizes.Find(rest)
			base = rest
			break
		}
	}
	if c, ok := transform.CreatureTypes.Code(base); ok {
		ct.Value = c
		return ct
	}
	if c, ok := transform.CreatureTypes.Find(base); ok {
		ct.Value = c
		return ct
	}
	ct.Value = transform.CreatureTypes.Fallback()
	ct.Custom = base
	b.note("creature type: unrecognized %q kept as custom", base)
	return ct
}

// size reads the size field, falling back to a size word in the type line
// ("Medium humanoid").
func (b *builder) size(typeText string) string {
	text := b.rec.String("size", "tamano", "tamaño")
	if text == "" {
		if c, ok := transform.Sizes.Find(typeText); ok && !strings.Contains(transform.Fold(typeText), "swarm") && !strings.Contains(transform.Fold(typeText), "enjambre") {
			return c
		}
		return transform.Sizes.Fallback()
	}
	c, ok := transform.Sizes.Code(text)
	if !ok {
		b.note("size: unrecognized %q, using %s", text, transform.Sizes.Fallback())
		return transform.Sizes.Fallback()
	}
	return c
}

func (b *builder) experience(crText string, cr float64) int {
	if n, ok := b.rec.Number("xp", "px", "experience", "experiencia"); ok {
		return int(n)
	}
	if m := xpInTextRe.FindStringSubmatch(crText); m != nil {
		if n, ok := transform.ParseNumber(m[1]); ok {
			return int(n)
		}
	}
	return transform.XPForCR(cr)
}

func (b *builder) armorClass() ArmorClass {
	ac := ArmorClass{Calc: "flat"}
	v := b.rec.Get("armor_class", "ac", "ca", "clase_de_armadura", "clase_armadura")
	text := record.Text(v)
	if m, isMap := v.(map[string]any); isMap {
		sub := record.New(b.rec.Path, m)
		v = sub.Get("value", "valor", "flat")
		text = sub.String("type", "tipo", "calc")
	}
	n, ok := record.Number(v)
	if !ok {
		b.note("armor class: missing, using 10")
		n = 10
	}
	ac.Flat = int(n)
	if strings.Contains(transform.Fold(text), "natural") {
		ac.Calc = "natural"
	}
	return ac
}

func (b *builder) hitPoints() HitPoints {
	var (
		hp      HitPoints
		n       float64
		ok      bool
		formula string
	)
	v := b.rec.Get("hit_points", "hp", "puntos_de_golpe", "pg")
	if m, isMap := v.(map[string]any); isMap {
		sub := record.New(b.rec.Path, m)
		n, ok = sub.Number("average", "value", "max", "media", "valor")
		formula = transform.FirstFormula(sub.String("formula", "dice", "dados"))
	} else {
		n, ok = record.Number(v)
		formula = transform.FirstFormula(record.Text(v))
	}
	if formula == "" {
		formula = transform.FirstFormula(b.rec.String("hit_dice", "dados_de_golpe"))
	}
	if !ok {
		b.note("hit points: missing")
	}
	hp.Value, hp.Max, hp.Formula = int(n), int(n), formula
	return hp
}

func (b *builder) movement() transform.Movement {
	mv := transform.Movement{Units: "ft"}
	switch v := b.rec.Get("speed", "velocidad", "movement", "movimiento").(type) {
	case nil:
		b.note("speed: missing")
	case string:
		mv = transform.ParseMovement(v)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if f := transform.Fold(k); f == "hover" || f == "levitar" || f == "flotar" {
				mv.Hover = mv.Hover || transform.ParseBool(record.Text(v[k]))
				continue
			}
			if !mv.SetSpeed(k, record.Text(v[k])) {
				b.note("speed %s: unreadable %q", k, record.Text(v[k]))
			}
		}
	default:
		if n, ok := record.Number(v); ok {
			mv.Walk = transform.MetersToFeet(n)
		}
	}
	return mv
}

func (b *builder) senses() SensesBlock {
	s := SensesBlock{Units: "ft"}
	type entry struct{ label, value string }
	var entries []entry

	switch v := b.rec.Get("senses", "sentidos").(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			entries = append(entries, entry{k, record.Text(v[k])})
		}
	case nil:
	default:
		for _, tok := range strings.FieldsFunc(record.Text(v), func(r rune) bool { return r == ',' || r == ';' }) {
			label, rest := splitLabel(tok)
			entries = append(entries, entry{label, rest})
		}
	}

	var special []string
	for _, e := range entries {
		f := transform.Fold(e.label)
		if strings.Contains(f, "passive") || strings.Contains(f, "pasiva") {
			continue
		}
		code, ok := transform.Senses.Code(e.label)
		ft, hasDist := transform.ParseDistance(e.value)
		if !ok || !hasDist {
			special = append(special, strings.TrimSpace(e.label+" "+e.value))
			continue
		}
		switch code {
		case "darkvision":
			s.Darkvision = ft
		case "blindsight":
			s.Blindsight = ft
		case "tremorsense":
			s.Tremorsense = ft
		case "truesight":
			s.Truesight = ft
		}
	}
	s.Special = strings.Join(special, ", ")
	return s
}

// skills derives proficiency levels from stated skill totals.
func (b *builder) skills(abilities map[string]Ability, pb int) map[string]Skill {
	out := make(map[string]Skill, len(transform.SkillAbility))
	for _, code := range transform.Skills.Codes() {
		out[code] = Skill{Ability: transform.SkillAbility[code]}
	}

	type entry struct {
		label string
		bonus any
	}
	var entries []entry
	switch v := b.rec.Get("skills", "habilidades", "pericias").(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			entries = append(entries, entry{k, v[k]})
		}
	case nil:
	default:
		for _, tok := range transform.SplitList(record.Text(v)) {
			label, rest := splitLabel(tok)
			entries = append(entries, entry{label, rest})
		}
	}

	for _, e := range entries {
		code, ok := transform.Skills.Code(e.label)
		if !ok {
			b.note("skill: dropped unrecognized %q", e.label)
			continue
		}
		sk := out[code]
		bonus, ok := record.Number(e.bonus)
		if !ok {
			sk.Value = 1
		} else {
			sk.Value = ProficiencyLevel(int(bonus)-abilities[sk.Ability].Mod, pb)
		}
		out[code] = sk
	}
	return out
}

// ProficiencyLevel maps the part of a skill bonus not explained by the
// ability modifier to 0 (none), 1 (proficient) or 2 (expertise).
func ProficiencyLevel(diff, pb int) int {
	switch {
	case diff <= 0:
		return 0
	case pb > 0 && diff >= 2*pb:
		return 2
	}
	return 1
}

func (b *builder) creatureItems() []api.Document {
	var items []api.Document
	for _, section := range creatureRoles {
		for i, e := range b.rec.Records(section.keys...) {
			name := e.String(nameKeys...)
			if name == "" {
				b.note("%s %d: no name, dropped", section.role, i+1)
				continue
			}
			items = append(items, b.creatureItem(section.role, section.activation, i, name, e))
		}
	}
	return items
}

// creatureItem converts one trait or action. Actions whose type or text
// imply an attack roll become natural weapons; everything else is a feat.
func (b *builder) creatureItem(role, activation string, index int, name string, e *record.Record) api.Document {
	desc := e.String(descriptionKeys...)
	hint := e.String("type", "tipo", "attack_type", "tipo_de_ataque")
	full := hint + " " + desc

	sys := ActionSystem{
		Description: api.Description{Value: Paragraphs(desc)},
	}
	if activation != "" {
		sys.Activation = transform.Activation{Type: activation, Cost: 1}
		if role == "legendary" {
			sys.Activation.Cost = transform.ParseActionCost(name + " " + desc)
		}
	}
	if text := e.String("activation", "activacion", "activación"); text != "" {
		sys.Activation = transform.ParseActivation(text)
	}
	uses := transform.ParseUses(name)
	if uses.Empty() {
		uses = transform.ParseUses(e.String("uses", "usos", "recharge", "recarga"))
	}
	if !uses.Empty() {
		sys.Uses = &uses
	}

	docType := "feat"
	if role != "trait" && transform.ImpliesAttack(hint, desc) {
		docType = "weapon"
		sys.ActionType = transform.AttackKind(hint, desc)
		sys.WeaponType = "natural"
		if n, ok := e.Number("attack_bonus", "to_hit", "bonificador_de_ataque", "bonificador"); ok {
			sys.AttackBonus = strconv.Itoa(int(n))
		} else if n, ok := transform.ParseAttackBonus(desc); ok {
			sys.AttackBonus = strconv.Itoa(n)
		}
		sys.Range = actionRange(e, full)
	} else {
		sys.Type = &ItemSubtype{Value: "monster"}
	}

	parts := transform.ExtractDamage(e.String("damage", "dano", "daño"))
	if len(parts) == 0 {
		parts = transform.ExtractDamage(desc)
	}
	if dt := e.String("damage_type", "tipo_de_dano", "tipo_de_daño"); dt != "" {
		code, _ := transform.DamageTypes.Code(dt)
		for i := range parts {
			if parts[i].Type == "" {
				parts[i].Type = code
			}
		}
	}
	sys.Damage = Damage{Parts: parts}
	if sys.Damage.Parts == nil {
		sys.Damage.Parts = []transform.DamagePart{}
	}

	if save, ok := transform.ParseSave(full); ok {
		dc := save.DC
		sys.Save = &SaveBlock{Ability: save.Ability, DC: &dc, Scaling: "flat"}
		if sys.ActionType == "" {
			sys.ActionType = "save"
		}
	} else if sys.ActionType == "" && len(parts) > 0 {
		sys.ActionType = "other"
	}

	return b.embed(role, index, name, docType, sys)
}

// actionRange reads an explicit reach/range field, then the text.
func actionRange(e *record.Record, text string) transform.Range {
	if r := e.String("range", "distancia"); r != "" {
		if rng, ok := transform.ParseRange("range " + r); ok {
			return rng
		}
		if ft, ok := transform.ParseDistance(r); ok {
			return transform.Range{Value: ft, Units: "ft"}
		}
	}
	if r := e.String("reach", "alcance"); r != "" {
		if ft, ok := transform.ParseDistance(r); ok {
			return transform.Range{Value: ft, Units: "ft"}
		}
	}
	if rng, ok := transform.ParseRange(text); ok {
		return rng
	}
	if ft, ok := transform.ParseReach(text); ok {
		return transform.Range{Value: ft, Units: "ft"}
	}
	return transform.Range{}
}
