package transform

import (
	"regexp"
	"strconv"
)

// Uses is a limited-use or recharge annotation on an ability.
type Uses struct {
	Value    int    `json:"value"`
	Max      string `json:"max"`
	Per      string `json:"per"`
	Recharge int    `json:"recharge,omitempty"`
}

// Empty reports whether no limit was found.
func (u Uses) Empty() bool {
	return u.Max == "" && u.Recharge == 0
}

var (
	rechargeRe = regexp.MustCompile(`(?i)(?:recharge|recarga)\s*(\d)(?:\s*[-–]\s*\d)?`)
	perRe      = regexp.MustCompile(`(?i)(\d+)\s*/\s*(day|d[ií]a|short rest|descanso corto|long rest|descanso largo|turn|turno|round|asalto)`)
	costRe     = regexp.MustCompile(`(?i)\((?:costs|cuesta)\s+(\d+)\s+(?:actions|acciones)\)`)
)

var usePeriods = NewEnum("use period", "",
	Entry{"day", "Day", []string{"dia"}},
	Entry{"sr", "Short Rest", []string{"short rest", "descanso corto"}},
	Entry{"lr", "Long Rest", []string{"long rest", "descanso largo"}},
	Entry{"turn", "Turn", []string{"turno"}},
	Entry{"round", "Round", []string{"asalto"}},
)

// ParseUses reads "(Recharge 5–6)", "(Recarga 6)", "(3/Day)" or "1/día".
func ParseUses(text string) Uses {
	var u Uses
	if m := rechargeRe.FindStringSubmatch(text); m != nil {
		u.Recharge, _ = strconv.Atoi(m[1])
		return u
	}
	if m := perRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		u.Value, u.Max, u.Per = n, m[1], usePeriods.CodeOr(m[2])
	}
	return u
}

// ParseActionCost reads a legendary action's "(Costs 2 Actions)". The default
// cost is one.
func ParseActionCost(text string) int {
	if m := costRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	return 1
}
