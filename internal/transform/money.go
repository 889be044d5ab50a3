package transform

import (
	"regexp"
)

// Exchange rates to gold pieces.
var goldPer = map[string]float64{
	"pp": 10,
	"gp": 1,
	"ep": 0.5,
	"sp": 0.1,
	"cp": 0.01,
}

var priceRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)*)\s*(\p{L}+)?`)

// Price is an amount in a single denomination.
type Price struct {
	Value        float64 `json:"value"`
	Denomination string  `json:"denomination"`
}

// ParsePrice reads "15 gp", "1,500 po" or "5 piezas de plata" in the stated
// denomination. A missing denomination means gold.
func ParsePrice(text string) (Price, bool) {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return Price{}, false
	}
	v, ok := ParseNumber(m[1])
	if !ok {
		return Price{}, false
	}
	denom := Currencies.Fallback()
	if c, ok := Currencies.Code(m[2]); ok {
		denom = c
	} else if c, ok := Currencies.Find(text); ok {
		denom = c
	}
	return Price{Value: v, Denomination: denom}, true
}

// NormalizePrice converts a price text to gold pieces.
func NormalizePrice(text string) (Price, bool) {
	p, ok := ParsePrice(text)
	if !ok {
		return Price{}, false
	}
	return Price{Value: round2(p.Value * goldPer[p.Denomination]), Denomination: "gp"}, true
}
