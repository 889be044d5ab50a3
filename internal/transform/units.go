package transform

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	feetPerMeter   = 3.28084
	poundsPerKilo  = 2.20462
	distanceStep   = 5
	defaultUnitsFt = "ft"
)

// maxFeet caps converted distances so the result always fits an int.
const maxFeet = 1_000_000_000

// MetersToFeet converts and rounds to the nearest multiple of five feet.
// Negative input clamps to zero, huge input to maxFeet.
func MetersToFeet(m float64) int {
	if m <= 0 || math.IsNaN(m) {
		return 0
	}
	return RoundFeet(m * feetPerMeter)
}

// RoundFeet rounds an imperial distance to the nearest multiple of five.
func RoundFeet(ft float64) int {
	if ft <= 0 || math.IsNaN(ft) {
		return 0
	}
	steps := math.Round(ft / distanceStep)
	if steps >= maxFeet/distanceStep {
		return maxFeet
	}
	return int(steps) * distanceStep
}

var distanceRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)*)\s*(meters?|metres?|metros?|m\b|mts?\.?|ft\.?|feet|foot|pies?|')?`)

// ParseDistance reads the first distance in text and returns it in feet.
// Bare numbers are meters: the source content is authored in metric.
func ParseDistance(text string) (int, bool) {
	m := distanceRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, ok := ParseNumber(m[1])
	if !ok {
		return 0, false
	}
	return toFeet(v, m[2]), true
}

func toFeet(v float64, unit string) int {
	if isImperial(unit) {
		return RoundFeet(v)
	}
	return MetersToFeet(v)
}

func isImperial(unit string) bool {
	u := strings.ToLower(strings.TrimSuffix(unit, "."))
	switch u {
	case "ft", "feet", "foot", "pie", "pies", "'":
		return true
	}
	return false
}

// ParseNumber accepts "1.5", "1,5", "1,500", "1.500.000", "1,234.56" and
// "1.234,56". With both separators present the last one is the decimal point.
// A single separator is a thousands separator when exactly three digits
// follow it and the integer part is not zero.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	commas, dots := strings.Count(s, ","), strings.Count(s, ".")
	switch {
	case commas > 0 && dots > 0:
		i := strings.LastIndexAny(s, ".,")
		intPart := strings.NewReplacer(",", "", ".", "").Replace(s[:i])
		s = intPart + "." + s[i+1:]
	case commas+dots == 1:
		i := strings.IndexAny(s, ".,")
		if len(s)-i-1 == 3 && strings.Trim(s[:i], "0") != "" {
			s = s[:i] + s[i+1:]
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	default:
		s = strings.NewReplacer(",", "", ".", "").Replace(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Movement holds speeds in feet per movement type.
type Movement struct {
	Walk   int    `json:"walk"`
	Burrow int    `json:"burrow"`
	Climb  int    `json:"climb"`
	Fly    int    `json:"fly"`
	Swim   int    `json:"swim"`
	Units  string `json:"units"`
	Hover  bool   `json:"hover"`
}

var movementKeys = NewEnum("movement", "walk",
	Entry{"walk", "Walk", []string{"caminar", "andar", "a pie", "speed", "velocidad"}},
	Entry{"burrow", "Burrow", []string{"excavar", "excavando"}},
	Entry{"climb", "Climb", []string{"trepar", "escalar", "trepando"}},
	Entry{"fly", "Fly", []string{"volar", "vuelo", "volando"}},
	Entry{"swim", "Swim", []string{"nadar", "nado", "nadando"}},
)

// SetSpeed stores a parsed speed under a (possibly localized) movement name.
func (mv *Movement) SetSpeed(kind string, text string) bool {
	ft, ok := ParseDistance(text)
	if !ok {
		return false
	}
	switch movementKeys.CodeOr(kind) {
	case "walk":
		mv.Walk = ft
	case "burrow":
		mv.Burrow = ft
	case "climb":
		mv.Climb = ft
	case "fly":
		mv.Fly = ft
	case "swim":
		mv.Swim = ft
	}
	if hovers(text) {
		mv.Hover = true
	}
	return true
}

// ParseMovement reads a one-line speed list such as
// "9 m, climb 6 m, fly 18 m (hover)". The first unlabeled entry is walking.
func ParseMovement(text string) Movement {
	mv := Movement{Units: defaultUnitsFt}
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind := firstWord(part)
		mv.SetSpeed(kind, part)
	}
	return mv
}

func hovers(text string) bool {
	f := Fold(text)
	return strings.Contains(f, "hover") || strings.Contains(f, "levitar") || strings.Contains(f, "flotar")
}

var weightRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(kg|kilos?|kilogramos?|kilograms?|lb\.?|lbs\.?|libras?|pounds?)?`)

// ParseWeight returns a weight in pounds. Bare numbers are kilograms.
func ParseWeight(text string) (float64, bool) {
	m := weightRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, ok := ParseNumber(m[1])
	if !ok {
		return 0, false
	}
	u := strings.ToLower(m[2])
	if strings.HasPrefix(u, "lb") || strings.HasPrefix(u, "libra") || strings.HasPrefix(u, "pound") {
		return round2(v), true
	}
	return round2(v * poundsPerKilo), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
