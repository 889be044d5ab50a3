// Package report aggregates the outcome of a conversion run. Each worker
// fills its own Report; the orchestrator merges them in worker order.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agentic-research/grimoire/internal/identity"
)

// Error kinds.
const (
	KindParse   = "parse"
	KindConvert = "convert"
	KindWrite   = "write"
)

// SkipReason says why a file produced no document.
type SkipReason int

const (
	// SkipRule: a classification rule marks the path as skipped.
	SkipRule SkipReason = iota
	// SkipUnmatched: no rule matched the path.
	SkipUnmatched
	// SkipNoop: the converter chose not to emit a document.
	SkipNoop
)

func (s SkipReason) String() string {
	switch s {
	case SkipRule:
		return "rule"
	case SkipUnmatched:
		return "unmatched"
	case SkipNoop:
		return "noop"
	}
	return fmt.Sprintf("SkipReason(%d)", int(s))
}

// FileError is one failed file.
type FileError struct {
	File    string `json:"file"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e FileError) String() string {
	return e.File + ": " + e.Message
}

// Report counts processed files. Processed always equals
// Converted + Skipped + len(Errors).
type Report struct {
	Processed     int            `json:"processed"`
	Converted     int            `json:"converted"`
	Skipped       int            `json:"skipped"`
	SkippedByRule int            `json:"skippedByRule"`
	Unmatched     int            `json:"unmatched"`
	Noop          int            `json:"noop"`
	ByCollection  map[string]int `json:"byCollection"`
	Errors        []FileError    `json:"errors"`

	ids *identity.Tracker
}

func New() *Report {
	return &Report{
		ByCollection: make(map[string]int),
		Errors:       []FileError{},
		ids:          identity.NewTracker(),
	}
}

// AddConverted records a produced document.
func (r *Report) AddConverted(collection, id string) {
	r.Processed++
	r.Converted++
	r.ByCollection[collection]++
	r.ids.Add(id)
}

// AddSkip records a file that produced no document.
func (r *Report) AddSkip(reason SkipReason) {
	r.Processed++
	r.Skipped++
	switch reason {
	case SkipRule:
		r.SkippedByRule++
	case SkipUnmatched:
		r.Unmatched++
	case SkipNoop:
		r.Noop++
	}
}

// AddError records a failed file.
func (r *Report) AddError(file, kind string, err error) {
	r.Processed++
	r.Errors = append(r.Errors, FileError{File: file, Kind: kind, Message: err.Error()})
}

// Collisions is the number of converted documents whose id was already taken.
func (r *Report) Collisions() int {
	return r.ids.Collisions()
}

// Merge adds other's counts into r.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Processed += other.Processed
	r.Converted += other.Converted
	r.Skipped += other.Skipped
	r.SkippedByRule += other.SkippedByRule
	r.Unmatched += other.Unmatched
	r.Noop += other.Noop
	for c, n := range other.ByCollection {
		r.ByCollection[c] += n
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.ids.Merge(other.ids)
}

// Sort orders errors by file so the report does not depend on scheduling.
func (r *Report) Sort() {
	sort.SliceStable(r.Errors, func(i, j int) bool {
		if r.Errors[i].File != r.Errors[j].File {
			return r.Errors[i].File < r.Errors[j].File
		}
		return r.Errors[i].Kind < r.Errors[j].Kind
	})
}

// Print writes the summary and the first maxErrors errors. A negative
// maxErrors prints all of them.
func (r *Report) Print(w io.Writer, maxErrors int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Processed: %d\n", r.Processed)
	fmt.Fprintf(&b, "Converted: %d", r.Converted)
	if len(r.ByCollection) > 0 {
		cols := make([]string, 0, len(r.ByCollection))
		for c := range r.ByCollection {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		parts := make([]string, 0, len(cols))
		for _, c := range cols {
			parts = append(parts, fmt.Sprintf("%s %d", c, r.ByCollection[c]))
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Skipped:   %d (rule %d, unmatched %d, noop %d)\n", r.Skipped, r.SkippedByRule, r.Unmatched, r.Noop)
	fmt.Fprintf(&b, "Errors:    %d\n", len(r.Errors))
	if n := r.Collisions(); n > 0 {
		fmt.Fprintf(&b, "Identity collisions: %d\n", n)
	}

	shown := r.Errors
	if maxErrors >= 0 && len(shown) > maxErrors {
		shown = shown[:maxErrors]
	}
	for _, e := range shown {
		b.WriteString("  " + e.String() + "\n")
	}
	if rest := len(r.Errors) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "  ... and %d more\n", rest)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
