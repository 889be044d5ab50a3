package transform

import (
	"regexp"
	"strconv"
	"strings"
)

// Activation is the cost to use an ability or cast a spell.
type Activation struct {
	Type      string `json:"type"`
	Cost      int    `json:"cost"`
	Condition string `json:"condition"`
}

var leadingCountRe = regexp.MustCompile(`^\s*(\d+)\s*`)

// ParseActivation reads "1 action", "1 acción adicional", "10 minutes" or
// "1 reaction, which you take when ...". Text after a comma becomes the
// condition.
func ParseActivation(text string) Activation {
	act := Activation{Type: ActivationTypes.Fallback()}
	text = strings.TrimSpace(text)
	if text == "" {
		act.Type = ""
		return act
	}
	head, cond, _ := strings.Cut(text, ",")
	act.Condition = strings.TrimSpace(cond)
	cost := 1
	if m := leadingCountRe.FindStringSubmatch(head); m != nil {
		cost, _ = strconv.Atoi(m[1])
		head = head[len(m[0]):]
	}
	act.Type = ActivationTypes.CodeOr(head)
	act.Cost = cost
	return act
}

// Duration is a spell or effect duration.
type Duration struct {
	Value         int    `json:"value"`
	Units         string `json:"units"`
	Concentration bool   `json:"-"`
}

var (
	concentrationRe = regexp.MustCompile(`(?i)^\s*(?:concentration|concentraci[oó]n)\s*,?\s*(?:up to|hasta)?\s*`)
	quantityRe      = regexp.MustCompile(`(\d+)\s*(\p{L}+)`)
)

// ParseDuration reads "Instantaneous", "Concentration, up to 1 minute",
// "Concentración, hasta 10 minutos", "8 hours" or "Until dispelled".
func ParseDuration(text string) Duration {
	var d Duration
	if loc := concentrationRe.FindStringIndex(text); loc != nil {
		d.Concentration = true
		text = text[loc[1]:]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		d.Units = "inst"
		return d
	}
	if m := quantityRe.FindStringSubmatch(text); m != nil {
		if u, ok := DurationUnits.Code(m[2]); ok {
			d.Value, _ = strconv.Atoi(m[1])
			d.Units = u
			return d
		}
	}
	d.Units = DurationUnits.CodeOr(text)
	return d
}

// SpellRange is the distance of a spell or ability.
type SpellRange struct {
	Value int    `json:"value"`
	Units string `json:"units"`
}

// Target is an area of effect.
type Target struct {
	Value int    `json:"value"`
	Units string `json:"units"`
	Type  string `json:"type"`
}

var (
	parenRe = regexp.MustCompile(`\(([^)]*)\)`)
	areaRe  = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*-?\s*(meters?|metros?|m\b|ft\.?|feet|foot|pies?)?\s*(?:-|de)?\s*(\p{L}+)`)
	mileRe  = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(miles?|millas?)`)
)

// ParseSpellRange reads "Self", "Touch", "18 m", "1 mile" or
// "Self (4.5 m cone)". The parenthetical area is returned as a Target.
func ParseSpellRange(text string) (SpellRange, Target) {
	var (
		r SpellRange
		t Target
	)
	text = strings.TrimSpace(text)
	if text == "" {
		return r, t
	}
	if m := parenRe.FindStringSubmatch(text); m != nil {
		t = ParseArea(m[1])
		text = strings.TrimSpace(parenRe.ReplaceAllString(text, ""))
	}
	if m := mileRe.FindStringSubmatch(text); m != nil {
		v, _ := ParseNumber(m[1])
		r.Value, r.Units = int(v), "mi"
		return r, t
	}
	if ft, ok := ParseDistance(text); ok {
		r.Value, r.Units = ft, "ft"
		return r, t
	}
	r.Units = RangeUnits.CodeOr(text)
	return r, t
}

// ParseArea reads "4.5 m cone", "15-foot cone" or "esfera de 6 m de radio".
func ParseArea(text string) Target {
	var t Target
	for _, m := range areaRe.FindAllStringSubmatch(text, -1) {
		if shape, ok := AreaShapes.Code(m[3]); ok {
			v, _ := ParseNumber(m[1])
			t.Value, t.Units, t.Type = toFeet(v, m[2]), "ft", shape
			return t
		}
	}
	if shape, ok := AreaShapes.Find(text); ok {
		t.Type = shape
		if ft, ok := ParseDistance(text); ok {
			t.Value, t.Units = ft, "ft"
		}
	}
	return t
}

// Components are the spell component flags.
type Components struct {
	Vocal         bool   `json:"vocal"`
	Somatic       bool   `json:"somatic"`
	Material      bool   `json:"material"`
	Ritual        bool   `json:"ritual"`
	Concentration bool   `json:"concentration"`
	Materials     string `json:"-"`
}

// ParseComponents reads "V, S, M (a bit of fleece)".
func ParseComponents(text string) Components {
	var c Components
	if m := parenRe.FindStringSubmatch(text); m != nil {
		c.Materials = strings.TrimSpace(m[1])
		text = parenRe.ReplaceAllString(text, "")
	}
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ' ' }) {
		switch strings.ToUpper(strings.Trim(tok, ". ")) {
		case "V":
			c.Vocal = true
		case "S":
			c.Somatic = true
		case "M":
			c.Material = true
		}
	}
	return c
}

var levelRe = regexp.MustCompile(`(\d+)`)

// ParseSpellLevel reads "Cantrip", "Truco", "3", "3rd-level" or "nivel 3".
func ParseSpellLevel(text string) (int, bool) {
	f := Fold(text)
	if strings.Contains(f, "cantrip") || strings.Contains(f, "truco") {
		return 0, true
	}
	m := levelRe.FindStringSubmatch(f)
	if m == nil {
		return 0, false
	}
	lvl, err := strconv.Atoi(m[1])
	if err != nil || lvl > 9 {
		return 0, false
	}
	return lvl, true
}

// ParseBool accepts yes/no in English and Spanish.
func ParseBool(text string) bool {
	switch Fold(text) {
	case "yes", "y", "true", "si", "1", "x":
		return true
	}
	return false
}
