// Package convert turns decoded source records into target documents. Each
// document family has a Converter; the Registry dispatches by the converter
// kind named in the classification rule.
package convert

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/record"
)

// ErrSkip marks a record that intentionally produces no document, such as a
// spell that only points into an external catalogue.
var ErrSkip = errors.New("intentional skip")

// ErrMissingName is returned for records without a usable name.
var ErrMissingName = errors.New("record has no name")

// Target is what the classifier resolved for a record.
type Target struct {
	Rule       string
	Collection string
	Type       string
}

// Converter builds one document from one record.
type Converter interface {
	Convert(rec *record.Record, target Target) (*api.Document, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(rec *record.Record, target Target) (*api.Document, error)

func (f ConverterFunc) Convert(rec *record.Record, target Target) (*api.Document, error) {
	return f(rec, target)
}

// Registry maps converter kinds to converters.
type Registry struct {
	converters map[string]Converter
}

func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]Converter)}
}

// DefaultRegistry has every built-in converter registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("creature", ConverterFunc(Creature))
	r.Register("weapon", ConverterFunc(Weapon))
	r.Register("armor", ConverterFunc(Armor))
	r.Register("spell", ConverterFunc(Spell))
	r.Register("item", ConverterFunc(Item))
	r.Register("journal", ConverterFunc(Journal))
	r.Register("table", ConverterFunc(Table))
	return r
}

// Register adds or replaces the converter for kind.
func (r *Registry) Register(kind string, c Converter) {
	r.converters[kind] = c
}

// Lookup returns the converter registered for kind.
func (r *Registry) Lookup(kind string) (Converter, bool) {
	c, ok := r.converters[kind]
	return c, ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.converters))
	for k := range r.converters {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Missing lists the kinds in want that have no converter.
func (r *Registry) Missing(want []string) []string {
	var out []string
	for _, k := range want {
		if _, ok := r.Lookup(k); !ok {
			out = append(out, k)
		}
	}
	return out
}

// Convert dispatches to the converter registered for kind.
func (r *Registry) Convert(kind string, rec *record.Record, target Target) (*api.Document, error) {
	c, ok := r.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("no converter registered for kind %q", kind)
	}
	return c.Convert(rec, target)
}
