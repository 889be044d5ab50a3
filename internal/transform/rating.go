package transform

import (
	"math"
	"regexp"
	"strconv"
)

var ratingRe = regexp.MustCompile(`(\d+)\s*/\s*(\d+)|(\d+(?:[.,]\d+)?)`)

// ParseRating reads a challenge rating or level: "1/4", "½", "3", "10 (5,900 XP)".
func ParseRating(text string) (float64, bool) {
	switch text {
	case "½":
		return 0.5, true
	case "¼":
		return 0.25, true
	case "⅛":
		return 0.125, true
	}
	m := ratingRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	if m[1] != "" {
		num, _ := strconv.Atoi(m[1])
		den, _ := strconv.Atoi(m[2])
		if den == 0 {
			return 0, false
		}
		return float64(num) / float64(den), true
	}
	v, ok := ParseNumber(m[3])
	return v, ok
}

var xpByCR = map[float64]int{
	0: 10, 0.125: 25, 0.25: 50, 0.5: 100,
	1: 200, 2: 450, 3: 700, 4: 1100, 5: 1800, 6: 2300, 7: 2900, 8: 3900, 9: 5000,
	10: 5900, 11: 7200, 12: 8400, 13: 10000, 14: 11500, 15: 13000, 16: 15000,
	17: 18000, 18: 20000, 19: 22000, 20: 25000, 21: 33000, 22: 41000, 23: 50000,
	24: 62000, 25: 75000, 26: 90000, 27: 105000, 28: 120000, 29: 135000, 30: 155000,
}

// XPForCR returns the experience award for a challenge rating.
func XPForCR(cr float64) int {
	return xpByCR[cr]
}

// ProficiencyForCR returns the proficiency bonus implied by a challenge rating.
func ProficiencyForCR(cr float64) int {
	if cr < 1 {
		return 2
	}
	return int(math.Floor((cr-1)/4)) + 2
}

// AbilityModifier is floor((score - 10) / 2).
func AbilityModifier(score int) int {
	return int(math.Floor(float64(score-10) / 2))
}
