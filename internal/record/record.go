// Package record decodes source records and gives converters loose, alias
// tolerant access to their fields.
package record

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/agentic-research/grimoire/internal/transform"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions treated as records.
var Extensions = []string{".yaml", ".yml", ".json"}

// IsRecordFile reports whether name has a record extension.
func IsRecordFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

var ErrEmpty = errors.New("empty record")

// Record is one decoded source file.
type Record struct {
	// Path is the slash-separated path relative to the source root.
	Path string
	data map[string]any
}

// Parse decodes YAML or JSON content. The top level must be a mapping.
func Parse(path string, content []byte) (*Record, error) {
	var v any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		parsed, err := oj.Parse(content)
		if err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		v = parsed
	} else if err := yaml.Unmarshal(content, &v); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if v == nil {
		return nil, ErrEmpty
	}
	m, ok := normalize(v).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("record is a %T, want a mapping", v)
	}
	return &Record{Path: path, data: m}, nil
}

// New wraps already-decoded data, e.g. an entry of a trait list.
func New(path string, data map[string]any) *Record {
	if data == nil {
		data = map[string]any{}
	}
	return &Record{Path: path, data: data}
}

// Data exposes the decoded mapping.
func (r *Record) Data() map[string]any {
	return r.data
}

// normalize turns map[any]any (non-string YAML keys) into map[string]any so
// that JSONPath and converters see one shape.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	}
	return v
}

var exprCache sync.Map // string -> jp.Expr

// compile turns "speed.walk" into $.speed.walk. Full JSONPath ("$..name") is
// passed to the ojg parser.
func compile(path string) (jp.Expr, error) {
	if x, ok := exprCache.Load(path); ok {
		return x.(jp.Expr), nil
	}
	var x jp.Expr
	if strings.HasPrefix(path, "$") {
		parsed, err := jp.ParseString(path)
		if err != nil {
			return nil, fmt.Errorf("invalid jsonpath '%s': %w", path, err)
		}
		x = parsed
	} else {
		x = jp.R()
		for _, seg := range strings.Split(path, ".") {
			x = x.C(seg)
		}
	}
	exprCache.Store(path, x)
	return x, nil
}

// Get returns the first non-empty value among the alias paths.
func (r *Record) Get(paths ...string) any {
	for _, p := range paths {
		x, err := compile(p)
		if err != nil {
			continue
		}
		if v := x.First(r.data); !isEmpty(v) {
			return v
		}
	}
	return nil
}

// Has reports whether any alias path holds a non-empty value.
func (r *Record) Has(paths ...string) bool {
	return r.Get(paths...) != nil
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// String renders the value as text. Lists are joined with ", ".
func (r *Record) String(paths ...string) string {
	return Text(r.Get(paths...))
}

// Text renders any decoded value as text.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := Text(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

var leadingNumberRe = regexp.MustCompile(`([+\-−]?)(\d+(?:[.,]\d+)*)`)

// Number returns the first number in the value: 15, "15", "15 (leather armor)",
// "5,900 XP".
func (r *Record) Number(paths ...string) (float64, bool) {
	return Number(r.Get(paths...))
}

// Number converts a decoded value to a number.
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		m := leadingNumberRe.FindStringSubmatch(t)
		if m == nil {
			return 0, false
		}
		f, ok := transform.ParseNumber(m[2])
		if !ok {
			return 0, false
		}
		if m[1] != "" && m[1] != "+" {
			f = -f
		}
		return f, true
	}
	return 0, false
}

// Int is Number truncated to an int, or def when absent.
func (r *Record) Int(def int, paths ...string) int {
	if f, ok := r.Number(paths...); ok {
		return int(f)
	}
	return def
}

// Bool reads true/false or yes/no/sí.
func (r *Record) Bool(paths ...string) bool {
	switch t := r.Get(paths...).(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "y", "true", "si", "sí", "1", "x":
			return true
		}
	case int:
		return t != 0
	case int64:
		return t != 0
	}
	return false
}

// Map returns a nested mapping or nil.
func (r *Record) Map(paths ...string) map[string]any {
	m, _ := r.Get(paths...).(map[string]any)
	return m
}

// Strings returns a list value as strings. A scalar becomes a one-element list.
func (r *Record) Strings(paths ...string) []string {
	switch t := r.Get(paths...).(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := Text(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := Text(t); s != "" {
			return []string{s}
		}
	}
	return nil
}

// Records returns list entries as records. Mapping entries are used as-is;
// a "Name. Description" string becomes {name, description}; a mapping of
// name -> description becomes one record per key, sorted by key.
func (r *Record) Records(paths ...string) []*Record {
	var out []*Record
	switch t := r.Get(paths...).(type) {
	case []any:
		for _, e := range t {
			switch et := e.(type) {
			case map[string]any:
				out = append(out, New(r.Path, et))
			case string:
				out = append(out, New(r.Path, splitNamed(et)))
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch vt := t[k].(type) {
			case map[string]any:
				entry := make(map[string]any, len(vt)+1)
				for ek, ev := range vt {
					entry[ek] = ev
				}
				if _, ok := entry["name"]; !ok {
					entry["name"] = k
				}
				out = append(out, New(r.Path, entry))
			default:
				out = append(out, New(r.Path, map[string]any{"name": k, "description": Text(vt)}))
			}
		}
	}
	return out
}

func splitNamed(s string) map[string]any {
	name, desc, ok := strings.Cut(s, ". ")
	if !ok || len(name) > 80 {
		return map[string]any{"name": strings.TrimSpace(s), "description": ""}
	}
	return map[string]any{"name": strings.TrimSpace(name), "description": strings.TrimSpace(desc)}
}
