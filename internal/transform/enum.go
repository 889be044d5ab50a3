package transform

import "strings"

// Enum is a fixed bidirectional lookup between canonical codes and the
// labels (English and Spanish) that appear in source records.
type Enum struct {
	name     string
	fallback string
	codes    []string
	byLabel  map[string]string
	byCode   map[string]string
}

// Entry lists a canonical code, its display label and any aliases.
type Entry struct {
	Code    string
	Label   string
	Aliases []string
}

// NewEnum builds an Enum. Codes themselves are accepted as labels.
func NewEnum(name, fallback string, entries ...Entry) *Enum {
	e := &Enum{
		name:     name,
		fallback: fallback,
		byLabel:  make(map[string]string, len(entries)*3),
		byCode:   make(map[string]string, len(entries)),
	}
	for _, en := range entries {
		e.codes = append(e.codes, en.Code)
		e.byCode[en.Code] = en.Label
		e.byLabel[Fold(en.Code)] = en.Code
		e.byLabel[Fold(en.Label)] = en.Code
		for _, a := range en.Aliases {
			e.byLabel[Fold(a)] = en.Code
		}
	}
	return e
}

// Name identifies the enumeration in notes and errors.
func (e *Enum) Name() string { return e.name }

// Fallback is the generic bucket returned by CodeOr for unmapped labels.
func (e *Enum) Fallback() string { return e.fallback }

// Codes returns the canonical codes in declaration order.
func (e *Enum) Codes() []string {
	return append([]string(nil), e.codes...)
}

// Code looks up a label. Whole-label matches win over leading-word matches.
func (e *Enum) Code(label string) (string, bool) {
	f := Fold(label)
	if f == "" {
		return "", false
	}
	if c, ok := e.byLabel[f]; ok {
		return c, true
	}
	if w := firstWord(f); w != f {
		if c, ok := e.byLabel[w]; ok {
			return c, true
		}
	}
	return "", false
}

// CodeOr looks up a label and falls back to the enum's generic bucket.
func (e *Enum) CodeOr(label string) string {
	if c, ok := e.Code(label); ok {
		return c
	}
	return e.fallback
}

// Label returns the display label for a code.
func (e *Enum) Label(code string) string {
	return e.byCode[code]
}

// Has reports whether code is canonical for this enum.
func (e *Enum) Has(code string) bool {
	_, ok := e.byCode[code]
	return ok
}

// Find returns the first code whose label occurs as a whole word inside text.
// Used for prose like "DC 13 Dexterity saving throw". Words shorter than four
// letters are ignored: abbreviations such as "con" collide with prose.
func (e *Enum) Find(text string) (string, bool) {
	words := strings.FieldsFunc(Fold(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for _, w := range words {
		if len(w) < 4 {
			continue
		}
		if c, ok := e.byLabel[w]; ok {
			return c, true
		}
	}
	return "", false
}

// ParseSet maps every token of a free-text list. Unrecognized tokens are
// returned separately so callers can drop or note them. Codes are unique and
// keep first-seen order.
func (e *Enum) ParseSet(text string) (codes []string, unknown []string) {
	seen := make(map[string]bool)
	for _, tok := range SplitList(text) {
		c, ok := e.Code(tok)
		if !ok {
			unknown = append(unknown, tok)
			continue
		}
		if !seen[c] {
			seen[c] = true
			codes = append(codes, c)
		}
	}
	return codes, unknown
}
