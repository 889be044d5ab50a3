package convert

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/record"
	"github.com/agentic-research/grimoire/internal/transform"
)

var (
	dexCapRe     = regexp.MustCompile(`(?:max|maximo)\.?\s*(\d+)`)
	dexMentionRe = regexp.MustCompile(`\b(?:dex|des|destreza|dexterity)\b`)
)

// Armor converts armor and shields.
func Armor(rec *record.Record, target Target) (*api.Document, error) {
	b, err := newBuilder(rec, target)
	if err != nil {
		return nil, err
	}
	sys := ArmorSystem{PhysicalItem: b.physical()}

	category := b.armorCategory()
	acText := rec.String("armor_class", "ac", "ca", "clase_de_armadura", "clase_armadura", "armor", "armadura")
	value, ok := record.Number(acText)
	if !ok {
		b.note("armor class: unreadable %q", acText)
	}
	sys.Armor = ArmorValue{Value: int(value), Type: category, Dex: dexCap(acText, category)}

	if n, ok := rec.Number("strength", "fuerza", "strength_requirement", "requisito_de_fuerza"); ok {
		sys.Strength = int(n)
	}
	stealth := transform.Fold(rec.String("stealth", "sigilo", "stealth_disadvantage", "desventaja_en_sigilo"))
	sys.Stealth = strings.Contains(stealth, "disadvantage") || strings.Contains(stealth, "desventaja") || transform.ParseBool(stealth)

	b.doc.System = sys
	return b.doc, nil
}

// armorCategory reads the stated category, then the directory names, then
// the item name ("Shield").
func (b *builder) armorCategory() string {
	text := b.rec.String("category", "categoria", "categoría", "armor_type", "tipo_de_armadura", "type", "tipo")
	if c, ok := transform.ArmorCategories.Code(text); ok {
		return c
	}
	if c, ok := transform.ArmorCategories.Find(b.categoryHint()); ok {
		return c
	}
	if c, ok := transform.ArmorCategories.Find(b.doc.Name); ok {
		return c
	}
	b.note("armor category: unrecognized %q", text)
	return transform.ArmorCategories.Fallback()
}

// dexCap returns the dexterity cap implied by an armor class text such as
// "14 + Dex modifier (max 2)". Nil means the full modifier applies.
func dexCap(acText, category string) *int {
	f := transform.Fold(acText)
	if m := dexCapRe.FindStringSubmatch(f); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return &n
		}
	}
	if dexMentionRe.MatchString(f) && category != "medium" {
		return nil
	}
	switch category {
	case "heavy":
		n := 0
		return &n
	case "medium":
		n := 2
		return &n
	}
	return nil
}
