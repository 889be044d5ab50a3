// Package classify routes a record's category path to a target collection,
// document type and converter kind.
package classify

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/agentic-research/grimoire/api"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule is one routing entry.
type Rule struct {
	Name       string `yaml:"name"`
	Pattern    string `yaml:"pattern"`
	Collection string `yaml:"collection,omitempty"`
	Type       string `yaml:"type,omitempty"`
	Converter  string `yaml:"converter,omitempty"`
	Skip       bool   `yaml:"skip,omitempty"`

	segments []string
}

// Matches reports whether the slash-separated path matches the rule.
func (r *Rule) Matches(relPath string) bool {
	return matchSegments(r.segments, splitPath(relPath))
}

// RuleSet is an ordered, first-match-wins rule table.
type RuleSet struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Default returns the embedded rule table.
func Default() (*RuleSet, error) {
	return Parse(defaultRules)
}

// LoadFile reads a rule table from disk.
func LoadFile(p string) (*RuleSet, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", p, err)
	}
	return Parse(data)
}

// Parse decodes and validates a rule table.
func Parse(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	applyDefaults(&rs)
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

func applyDefaults(rs *RuleSet) {
	if rs.Version == "" {
		rs.Version = "1"
	}
	for i := range rs.Rules {
		r := &rs.Rules[i]
		if r.Name == "" {
			r.Name = r.Pattern
		}
		if !r.Skip && r.Collection == "" {
			r.Collection = api.CollectionFor(r.Type)
		}
		r.segments = splitPath(r.Pattern)
	}
}

// Validate checks that every routing rule is complete, that its collection
// agrees with its type, and that no rule is unreachable.
func (rs *RuleSet) Validate() error {
	for i, r := range rs.Rules {
		if strings.TrimSpace(r.Pattern) == "" {
			return fmt.Errorf("rule %d (%s): pattern is required", i, r.Name)
		}
		for _, seg := range r.segments {
			if seg == "**" {
				continue
			}
			if _, err := path.Match(seg, ""); err != nil {
				return fmt.Errorf("rule %s: bad pattern %q: %w", r.Name, r.Pattern, err)
			}
		}
		if !r.Skip {
			if r.Type == "" || r.Converter == "" {
				return fmt.Errorf("rule %s: type and converter are required", r.Name)
			}
			if want := api.CollectionFor(r.Type); r.Collection != want {
				return fmt.Errorf("rule %s: type %s belongs to collection %s, not %s", r.Name, r.Type, want, r.Collection)
			}
		}
	}
	if shadowed := rs.Shadowed(); len(shadowed) > 0 {
		return fmt.Errorf("unreachable rules: %s", strings.Join(shadowed, "; "))
	}
	return nil
}

// Shadowed lists rules whose pattern, read as a literal path, is matched by
// an earlier rule. Such a rule can never win under first-match semantics.
func (rs *RuleSet) Shadowed() []string {
	var out []string
	for j := range rs.Rules {
		for i := 0; i < j; i++ {
			if matchSegments(rs.Rules[i].segments, rs.Rules[j].segments) {
				out = append(out, fmt.Sprintf("%s is shadowed by %s", rs.Rules[j].Name, rs.Rules[i].Name))
				break
			}
		}
	}
	return out
}

// Classify returns the first rule matching relPath.
func (rs *RuleSet) Classify(relPath string) (Rule, bool) {
	segs := splitPath(relPath)
	for _, r := range rs.Rules {
		if matchSegments(r.segments, segs) {
			return r, true
		}
	}
	return Rule{}, false
}

// Converters lists the converter kinds referenced by routing rules.
func (rs *RuleSet) Converters() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rs.Rules {
		if r.Skip || seen[r.Converter] {
			continue
		}
		seen[r.Converter] = true
		out = append(out, r.Converter)
	}
	return out
}

func splitPath(p string) []string {
	p = strings.Trim(strings.ReplaceAll(p, "\\", "/"), "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// matchSegments matches path segments against pattern segments. Each pattern
// segment uses path.Match syntax; "**" matches zero or more whole segments.
func matchSegments(pattern, segs []string) bool {
	if len(pattern) == 0 {
		return len(segs) == 0
	}
	if pattern[0] == "**" {
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pattern[1:], segs[i:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	ok, err := path.Match(pattern[0], segs[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pattern[1:], segs[1:])
}
