package transform

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	attackBonusRe = regexp.MustCompile(`(?i)([+\-−]\s*\d+)\s*(?:to hit|al ataque|para (?:impactar|golpear)|a impactar)`)
	reachRe       = regexp.MustCompile(`(?i)\b(?:reach|alcance)\s+(\d+(?:[.,]\d+)?)\s*(meters?|metros?|m\b|ft\.?|feet|pies)?`)
	rangeRe       = regexp.MustCompile(`(?i)\b(?:range|alcance|distancia)\s+(\d+(?:[.,]\d+)?)\s*/\s*(\d+(?:[.,]\d+)?)\s*(meters?|metros?|m\b|ft\.?|feet|pies)?`)
	saveDCRe      = regexp.MustCompile(`(?i)\b(?:DC|CD)\s*(\d+)`)
	saveAbilityRe = regexp.MustCompile(`(?i)(\p{L}+)\s+saving throw|salvaci[oó]n de (\p{L}+)|tirada de (\p{L}+)`)
	attackWordsRe = regexp.MustCompile(`(?i)\b(?:attack|ataque)\b`)
	rangedWordsRe = regexp.MustCompile(`(?i)\b(?:ranged|a distancia)\b`)
)

// ParseAttackBonus reads "+4 to hit" or "+4 al ataque".
func ParseAttackBonus(text string) (int, bool) {
	m := attackBonusRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	s := strings.ReplaceAll(strings.ReplaceAll(m[1], " ", ""), "−", "-")
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseReach reads "reach 1.5 m" and returns feet. "alcance 24/96 m" is a
// range and is not taken as a reach.
func ParseReach(text string) (int, bool) {
	for _, idx := range reachRe.FindAllStringSubmatchIndex(text, -1) {
		if strings.HasPrefix(strings.TrimSpace(text[idx[3]:]), "/") {
			continue
		}
		v, ok := ParseNumber(text[idx[2]:idx[3]])
		if !ok {
			continue
		}
		unit := ""
		if idx[4] >= 0 {
			unit = text[idx[4]:idx[5]]
		}
		return toFeet(v, unit), true
	}
	return 0, false
}

// Range is a normal/long distance pair in feet.
type Range struct {
	Value int    `json:"value"`
	Long  int    `json:"long"`
	Units string `json:"units"`
}

// ParseRange reads "range 24/96 m" (or "range 80/320 ft.").
func ParseRange(text string) (Range, bool) {
	m := rangeRe.FindStringSubmatch(text)
	if m == nil {
		return Range{}, false
	}
	short, ok1 := ParseNumber(m[1])
	long, ok2 := ParseNumber(m[2])
	if !ok1 || !ok2 {
		return Range{}, false
	}
	return Range{Value: toFeet(short, m[3]), Long: toFeet(long, m[3]), Units: defaultUnitsFt}, true
}

// Save is a saving throw requirement.
type Save struct {
	Ability string `json:"ability"`
	DC      int    `json:"dc"`
}

// ParseSave reads "DC 13 Dexterity saving throw" or
// "tirada de salvación de Destreza CD 13".
func ParseSave(text string) (Save, bool) {
	m := saveDCRe.FindStringSubmatch(text)
	if m == nil {
		return Save{}, false
	}
	dc, err := strconv.Atoi(m[1])
	if err != nil {
		return Save{}, false
	}
	save := Save{DC: dc}
	for _, am := range saveAbilityRe.FindAllStringSubmatch(text, -1) {
		for _, word := range am[1:] {
			if word == "" {
				continue
			}
			if c, ok := Abilities.Code(word); ok {
				save.Ability = c
				return save, true
			}
		}
	}
	if c, ok := Abilities.Find(text); ok {
		save.Ability = c
	}
	return save, true
}

// ImpliesAttack reports whether an action type or description describes an
// attack roll.
func ImpliesAttack(actionType, text string) bool {
	if attackWordsRe.MatchString(actionType) {
		return true
	}
	_, ok := ParseAttackBonus(text)
	return ok
}

// AttackKind classifies an attack as melee or ranged, weapon or spell:
// "mwak", "rwak", "msak" or "rsak".
func AttackKind(actionType, text string) string {
	f := Fold(actionType + " " + text)
	ranged := rangedWordsRe.MatchString(f) && !strings.Contains(f, "melee or ranged") && !strings.Contains(f, "cuerpo a cuerpo o a distancia")
	spell := strings.Contains(f, "spell attack") || strings.Contains(f, "ataque de conjuro") || strings.Contains(f, "ataque con conjuro")
	switch {
	case ranged && spell:
		return "rsak"
	case spell:
		return "msak"
	case ranged:
		return "rwak"
	}
	return "mwak"
}
