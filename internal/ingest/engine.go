// Package ingest drives a conversion run: it walks the source tree, routes
// every record through the classifier, the converters and the validator, and
// hands the result to the configured sinks.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/classify"
	"github.com/agentic-research/grimoire/internal/convert"
	"github.com/agentic-research/grimoire/internal/logger"
	"github.com/agentic-research/grimoire/internal/record"
	"github.com/agentic-research/grimoire/internal/report"
	"github.com/agentic-research/grimoire/internal/validate"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"
)

// Status is the outcome of one file.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusError     Status = "error"
)

// Outcome describes what happened to one source file.
type Outcome struct {
	File   string
	Status Status
	// Detail is the output key, the skip reason or the error message.
	Detail string
}

func (o Outcome) String() string {
	return fmt.Sprintf("%-9s %s (%s)", o.Status, o.File, o.Detail)
}

// Engine drives the conversion process.
type Engine struct {
	Source    billy.Filesystem
	Rules     *classify.RuleSet
	Registry  *convert.Registry
	Validator *validate.Validator
	// Sinks receive every validated document. A dry run has none.
	Sinks []Sink
	// Workers bounds the number of files converted concurrently.
	Workers int
	// OnFile, when set, is called once per processed file. Calls are
	// serialized but arrive in completion order.
	OnFile func(Outcome)

	mu sync.Mutex
}

// NewEngine wires an engine with the built-in converters.
func NewEngine(source billy.Filesystem, rules *classify.RuleSet, v *validate.Validator) *Engine {
	return &Engine{
		Source:    source,
		Rules:     rules,
		Registry:  convert.DefaultRegistry(),
		Validator: v,
		Workers:   runtime.NumCPU(),
	}
}

// Run converts every record file under the source root. Only a missing or
// unusable root (FatalError), an unroutable rule table or cancellation of
// ctx return an error; per-file failures, unreadable subdirectories and
// files whose output path is taken are recorded in the report.
func (e *Engine) Run(ctx context.Context) (*report.Report, error) {
	if missing := e.Registry.Missing(e.Rules.Converters()); len(missing) > 0 {
		return nil, fmt.Errorf("rules reference unregistered converters: %s (registered: %s)",
			strings.Join(missing, ", "), strings.Join(e.Registry.Kinds(), ", "))
	}

	if err := e.CheckSource(); err != nil {
		return nil, err
	}
	root := e.Source.Root()

	files, unreadable, err := Files(e.Source)
	if err != nil {
		return nil, &FatalError{Root: root, Err: err}
	}
	shadowed := shadowedOutputs(files)
	logger.Info("Starting conversion", map[string]interface{}{
		"root":    root,
		"files":   len(files),
		"workers": e.workers(),
		"sinks":   len(e.Sinks),
	})

	workers := e.workers()
	partial := make([]*report.Report, workers)
	for i := range partial {
		partial[i] = report.New()
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan string)
	g.Go(func() error {
		defer close(jobs)
		for _, f := range files {
			select {
			case jobs <- f:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		rep := partial[w]
		g.Go(func() error {
			for f := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				e.notify(e.process(f, rep, shadowed))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := report.New()
	for _, u := range unreadable {
		total.AddError(u.Path, report.KindParse, fmt.Errorf("read directory: %w", u.Err))
		logger.Warn("Unreadable entry", map[string]interface{}{"path": u.Path, "error": u.Err.Error()})
	}
	for _, rep := range partial {
		total.Merge(rep)
	}
	total.Sort()
	logger.Info("Conversion finished", map[string]interface{}{
		"processed": total.Processed,
		"converted": total.Converted,
		"skipped":   total.Skipped,
		"errors":    len(total.Errors),
	})
	return total, nil
}

// CheckSource returns a FatalError unless the source root is a readable
// directory.
func (e *Engine) CheckSource() error {
	info, err := e.Source.Stat("/")
	if err != nil {
		return &FatalError{Root: e.Source.Root(), Err: err}
	}
	if !info.IsDir() {
		return &FatalError{Root: e.Source.Root(), Err: errors.New("not a directory")}
	}
	return nil
}

func (e *Engine) workers() int {
	if e.Workers < 1 {
		return 1
	}
	return e.Workers
}

func (e *Engine) notify(o Outcome) {
	if e.OnFile == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.OnFile(o)
}

// process converts one file and records the outcome in rep. A file listed in
// shadowed fails at the write stage because an earlier file owns its output.
func (e *Engine) process(rel string, rep *report.Report, shadowed map[string]string) Outcome {
	fail := func(kind string, err error) Outcome {
		rep.AddError(rel, kind, err)
		logger.Warn("Conversion failed", map[string]interface{}{"file": rel, "kind": kind, "error": err.Error()})
		return Outcome{File: rel, Status: StatusError, Detail: err.Error()}
	}
	skip := func(reason report.SkipReason, detail string) Outcome {
		rep.AddSkip(reason)
		return Outcome{File: rel, Status: StatusSkipped, Detail: reason.String() + ": " + detail}
	}

	content, err := util.ReadFile(e.Source, rel)
	if err != nil {
		return fail(report.KindParse, fmt.Errorf("read: %w", err))
	}
	rec, err := record.Parse(rel, content)
	if err != nil {
		return fail(report.KindParse, err)
	}

	rule, ok := e.Rules.Classify(rel)
	if !ok {
		logger.Debug("No rule matches", map[string]interface{}{"file": rel})
		return skip(report.SkipUnmatched, "no rule")
	}
	if rule.Skip {
		return skip(report.SkipRule, rule.Name)
	}

	target := convert.Target{Rule: rule.Name, Collection: rule.Collection, Type: rule.Type}
	doc, err := e.Registry.Convert(rule.Converter, rec, target)
	if errors.Is(err, convert.ErrSkip) {
		return skip(report.SkipNoop, err.Error())
	}
	if err != nil {
		return fail(report.KindConvert, err)
	}
	data, err := e.Validator.Document(doc)
	if err != nil {
		return fail(report.KindConvert, err)
	}

	if first, ok := shadowed[rel]; ok {
		out := OutputPath(collectionOf(doc, rule), rel)
		return fail(report.KindWrite, fmt.Errorf("output %s is already produced by %s", out, first))
	}
	if err := e.write(rel, doc, data); err != nil {
		return fail(report.KindWrite, err)
	}
	rep.AddConverted(collectionOf(doc, rule), doc.ID)
	return Outcome{File: rel, Status: StatusConverted, Detail: doc.Key}
}

// write hands the document to every sink and returns the first failure.
func (e *Engine) write(rel string, doc *api.Document, data []byte) error {
	var first error
	for _, s := range e.Sinks {
		if err := s.Write(rel, doc, data); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close closes every sink.
func (e *Engine) Close() error {
	var errs []error
	for _, s := range e.Sinks {
		if err := s.Close(); err != nil {
			logger.Error("Closing sink failed", err, map[string]interface{}{"sink": fmt.Sprintf("%T", s)})
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func collectionOf(doc *api.Document, rule classify.Rule) string {
	if rule.Collection != "" {
		return rule.Collection
	}
	return api.CollectionFor(doc.Type)
}
