package convert

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/record"
	"github.com/agentic-research/grimoire/internal/transform"
)

var (
	entryKeys     = []string{"entries", "results", "resultados", "entradas", "rows", "filas"}
	rollRangeKeys = []string{"range", "rango", "roll", "tirada", "d", "level", "nivel"}
	resultKeys    = []string{"result", "resultado", "text", "texto", "name", "nombre", "description", "descripcion", "descripción"}
	rollRangeRe   = regexp.MustCompile(`^\s*(\d+)\s*(?:[-–—]\s*(\d+))?\s*$`)
	inlineRangeRe = regexp.MustCompile(`^\s*(\d+)\s*(?:[-–—]\s*(\d+))?\s*[:.)]\s+(.*)$`)
)

type tableRow struct {
	text     string
	lo, hi   int
	hasRange bool
	weight   int
}

// Table converts a random table. Entries without a stated range take the
// next free roll values; the formula defaults to 1d{highest roll}.
func Table(rec *record.Record, target Target) (*api.Document, error) {
	b, err := newBuilder(rec, target)
	if err != nil {
		return nil, err
	}
	rows, err := tableRows(rec.Get(entryKeys...))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("table has no entries")
	}

	var (
		results []api.Document
		next    = 1
		highest int
	)
	for i, r := range rows {
		if !r.hasRange {
			r.lo, r.hi = next, next+r.weight-1
		}
		if r.hi < r.lo {
			return nil, fmt.Errorf("entry %d: range %d-%d is inverted", i+1, r.lo, r.hi)
		}
		next = r.hi + 1
		highest = max(highest, r.hi)
		results = append(results, b.embed("result", i, r.text, "text", ResultSystem{
			Text:   r.text,
			Range:  [2]int{r.lo, r.hi},
			Weight: r.hi - r.lo + 1,
		}))
	}

	formula := transform.FirstFormula(rec.String("formula", "roll", "dice", "dado", "tirada"))
	if formula == "" {
		formula = "1d" + strconv.Itoa(highest)
	}
	b.doc.System = TableSystem{
		Description: b.description().Value,
		Formula:     formula,
		Replacement: !rec.Bool("without_replacement", "sin_reemplazo"),
		DisplayRoll: true,
	}
	b.doc.Results = results
	return b.doc, nil
}

func tableRows(v any) ([]tableRow, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		rows := make([]tableRow, 0, len(t))
		for i, e := range t {
			row, err := tableRowOf(e)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i+1, err)
			}
			rows = append(rows, row)
		}
		return rows, nil
	case map[string]any:
		// Keys are visited in text order so rows sharing a low roll ("1"
		// and "01") keep a stable order.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([]tableRow, 0, len(t))
		for _, k := range keys {
			lo, hi, err := parseRollRange(k)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", k, err)
			}
			rows = append(rows, tableRow{text: record.Text(t[k]), lo: lo, hi: hi, hasRange: true, weight: 1})
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].lo < rows[j].lo })
		return rows, nil
	}
	return nil, fmt.Errorf("entries are a %T, want a list or mapping", v)
}

func tableRowOf(e any) (tableRow, error) {
	row := tableRow{weight: 1}
	switch t := e.(type) {
	case map[string]any:
		sub := record.New("", t)
		row.text = sub.String(resultKeys...)
		if row.text == "" {
			row.text = describeRow(t)
		}
		row.weight = max(1, sub.Int(1, "weight", "peso"))
		if rv := sub.Get(rollRangeKeys...); rv != nil {
			lo, hi, err := parseRollRange(rv)
			if err != nil {
				return row, err
			}
			row.lo, row.hi, row.hasRange = lo, hi, true
		}
	default:
		text := record.Text(e)
		if m := inlineRangeRe.FindStringSubmatch(text); m != nil {
			lo, hi, err := parseRollRange(strings.TrimSpace(m[1] + "-" + orDefault(m[2], m[1])))
			if err != nil {
				return row, err
			}
			row.lo, row.hi, row.hasRange = lo, hi, true
			text = m[3]
		}
		row.text = strings.TrimSpace(text)
	}
	return row, nil
}

// parseRollRange reads 3, "3", "1-2", "01–10", "00" (100) or [1, 2].
func parseRollRange(v any) (int, int, error) {
	switch t := v.(type) {
	case []any:
		if len(t) != 2 {
			return 0, 0, fmt.Errorf("range %v: want two bounds", t)
		}
		lo, ok1 := record.Number(t[0])
		hi, ok2 := record.Number(t[1])
		if !ok1 || !ok2 {
			return 0, 0, fmt.Errorf("range %v: bounds are not numbers", t)
		}
		return int(lo), int(hi), nil
	case string:
		m := rollRangeRe.FindStringSubmatch(t)
		if m == nil {
			return 0, 0, fmt.Errorf("unreadable range %q", t)
		}
		lo := rollValue(m[1])
		hi := lo
		if m[2] != "" {
			hi = rollValue(m[2])
		}
		return lo, hi, nil
	}
	n, ok := record.Number(v)
	if !ok {
		return 0, 0, fmt.Errorf("unreadable range %v", v)
	}
	return int(n), int(n), nil
}

// rollValue reads a percentile face; "00" is 100.
func rollValue(s string) int {
	if s == "00" {
		return 100
	}
	n, _ := strconv.Atoi(s)
	return n
}

// describeRow renders a row without a text column as "key: value" pairs.
func describeRow(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		switch k {
		case "range", "rango", "roll", "tirada", "d", "level", "nivel", "weight", "peso":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+record.Text(m[k]))
	}
	return strings.Join(parts, "; ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
