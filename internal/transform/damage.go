package transform

import (
	"encoding/json"
	"regexp"
	"strings"
)

// DamagePart is a [formula, damage type] pair. Type is empty when the word
// following the formula is not a known damage type.
type DamagePart struct {
	Formula string
	Type    string
}

// MarshalJSON renders a part as a two-element array.
func (p DamagePart) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Formula, p.Type})
}

// Damage grammar:
//
//	damage  := formula [")"] ws [filler] word
//	formula := term (ws? sign ws? term)*     with at least one dice term
//	term    := dice | integer
//	dice    := [integer] ("d"|"D") integer
//	sign    := "+" | "-" | "−"
//	filler  := ("points"|"puntos") ws ("of"|"de") ws [("damage"|"daño") ws]
//	         | "de" ws [("daño") ws]
//	word    := letters
var (
	termPattern    = `(?:\d*[dD]\d+|\d+)`
	formulaPattern = termPattern + `(?:\s*[+\-−]\s*` + termPattern + `)*`
	damageRe       = regexp.MustCompile(`(?i)(` + formulaPattern + `)\)?` +
		`(?:\s+(?:(?:points|puntos)\s+(?:of|de)\s+)?(?:de\s+)?(?:(?:damage|daño|dano)\s+(?:de\s+)?)?(\p{L}+))?`)
	diceRe  = regexp.MustCompile(`\d*[dD]\d+`)
	signsRe = regexp.MustCompile(`\s*([+\-−])\s*`)
)

// ExtractDamage returns every dice formula in text with the damage type that
// follows it. Text without a dice formula yields nil.
func ExtractDamage(text string) []DamagePart {
	var parts []DamagePart
	for _, m := range damageRe.FindAllStringSubmatch(text, -1) {
		if !diceRe.MatchString(m[1]) {
			continue
		}
		part := DamagePart{Formula: NormalizeFormula(m[1])}
		if m[2] != "" {
			if c, ok := DamageTypes.Code(m[2]); ok {
				part.Type = c
			}
		}
		parts = append(parts, part)
	}
	return parts
}

// NormalizeFormula lowercases dice and puts single spaces around signs:
// "1D6+2" becomes "1d6 + 2".
func NormalizeFormula(f string) string {
	f = strings.TrimSpace(f)
	f = strings.ReplaceAll(f, "D", "d")
	f = signsRe.ReplaceAllStringFunc(f, func(s string) string {
		sign := strings.TrimSpace(s)
		if sign == "−" {
			sign = "-"
		}
		return " " + sign + " "
	})
	return f
}

// FirstFormula returns the first dice formula in text, or "".
func FirstFormula(text string) string {
	for _, m := range damageRe.FindAllStringSubmatch(text, -1) {
		if diceRe.MatchString(m[1]) {
			return NormalizeFormula(m[1])
		}
	}
	return ""
}
