package ingest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/classify"
	"github.com/agentic-research/grimoire/internal/identity"
	"github.com/agentic-research/grimoire/internal/report"
	"github.com/agentic-research/grimoire/internal/validate"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sourceTree is a small library touching every outcome: four conversions,
// two rule skips, one unmatched file, one reference spell and one record
// without a name.
var sourceTree = map[string]string{
	"creatures/giants/ogre.yaml":          "name: Ogre\nsize: Large\ntype: Giant\nspeed:\n  walk: 9 meters\n",
	"creatures/broken.yaml":               "size: Large\ntype: Giant\n",
	"creatures/_template.yaml":            "name: Template\n",
	"equipment/weapons/simple/club.yaml":  "name: Club\ndamage: 1d4 bludgeoning\nprice: 1 sp\n",
	"spells/0/light.yaml":                 "name: Light\nlevel: Cantrip\ndescription: You touch one object that glows.\n",
	"spells/reference/magic-missile.yaml": "name: Magic Missile\nreference: srd/magic-missile\n",
	"references/srd.yaml":                 "name: SRD\n",
	"rules/combat.yaml":                   "name: Combat\ncontent: Roll initiative.\n",
	"misc/notes.yaml":                     "name: Notes\n",
	".git/config.yaml":                    "name: ignored\n",
	"spells/.draft.yaml":                  "name: Draft\n",
	"README.md":                           "# not a record\n",
}

func newSource(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for p, body := range files {
		require.NoError(t, util.WriteFile(fs, p, []byte(body), 0o644))
	}
	return fs
}

func newEngine(t *testing.T, source billy.Filesystem) *Engine {
	t.Helper()
	rules, err := classify.Default()
	require.NoError(t, err)
	v, err := validate.New()
	require.NoError(t, err)
	e := NewEngine(source, rules, v)
	e.Workers = 4
	return e
}

func printed(t *testing.T, rep *report.Report) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, rep.Print(&buf, -1))
	return buf.String()
}

func TestFiles(t *testing.T) {
	files, unreadable, err := Files(newSource(t, sourceTree))
	require.NoError(t, err)
	assert.Empty(t, unreadable)

	assert.True(t, sort.StringsAreSorted(files))
	assert.Len(t, files, 9)
	assert.NotContains(t, files, ".git/config.yaml")
	assert.NotContains(t, files, "spells/.draft.yaml")
	assert.NotContains(t, files, "README.md")
	assert.Contains(t, files, "creatures/_template.yaml")
}

func TestEngine_Run(t *testing.T) {
	out := memfs.New()
	e := newEngine(t, newSource(t, sourceTree))
	e.Sinks = []Sink{NewTreeWriter(out)}

	rep, err := e.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, e.Close())

	assert.Equal(t, 9, rep.Processed)
	assert.Equal(t, 4, rep.Converted)
	assert.Equal(t, 4, rep.Skipped)
	assert.Equal(t, 2, rep.SkippedByRule)
	assert.Equal(t, 1, rep.Unmatched)
	assert.Equal(t, 1, rep.Noop)
	assert.Equal(t, rep.Processed, rep.Converted+rep.Skipped+len(rep.Errors))
	assert.Equal(t, map[string]int{"actors": 1, "items": 2, "journal": 1}, rep.ByCollection)
	assert.Zero(t, rep.Collisions())

	// Exactly one error entry for the record without a name; its siblings
	// still convert.
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, "creatures/broken.yaml", rep.Errors[0].File)
	assert.Equal(t, report.KindConvert, rep.Errors[0].Kind)

	for _, p := range []string{
		"actors/creatures/giants/ogre.json",
		"items/equipment/weapons/simple/club.json",
		"items/spells/0/light.json",
		"journal/rules/combat.json",
	} {
		_, err := out.Stat(p)
		assert.NoError(t, err, p)
	}
	_, err = out.Stat("items/spells/reference/magic-missile.json")
	assert.True(t, os.IsNotExist(err))

	data, err := util.ReadFile(out, "actors/creatures/giants/ogre.json")
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(data, []byte("}\n")))
	assert.Contains(t, string(data), `"_key": "`+identity.Key("actors", identity.ID("creatures/giants/ogre.yaml"))+`"`)
	assert.Contains(t, string(data), `"size": "lg"`)
	assert.Contains(t, string(data), `"walk": 30`)
}

func TestEngine_ParseErrorIsRecorded(t *testing.T) {
	files := map[string]string{
		"creatures/bad.yaml":  "name: [unclosed\n",
		"creatures/list.yaml": "- a\n- b\n",
		"creatures/good.yaml": "name: Wolf\nsize: Medium\n",
	}
	rep, err := newEngine(t, newSource(t, files)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Converted)
	require.Len(t, rep.Errors, 2)
	assert.Equal(t, "creatures/bad.yaml", rep.Errors[0].File)
	assert.Equal(t, "creatures/list.yaml", rep.Errors[1].File)
	for _, fe := range rep.Errors {
		assert.Equal(t, report.KindParse, fe.Kind)
	}
}

func TestEngine_DryRunMatchesRealRun(t *testing.T) {
	source := newSource(t, sourceTree)

	dry, err := newEngine(t, source).Run(context.Background())
	require.NoError(t, err)

	out := memfs.New()
	e := newEngine(t, source)
	e.Sinks = []Sink{NewTreeWriter(out)}
	full, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, printed(t, full), printed(t, dry))
}

func TestEngine_IndependentOfWorkerCount(t *testing.T) {
	source := newSource(t, sourceTree)
	var want string
	for _, workers := range []int{1, 2, 8, 0} {
		e := newEngine(t, source)
		e.Workers = workers
		rep, err := e.Run(context.Background())
		require.NoError(t, err)
		got := printed(t, rep)
		if want == "" {
			want = got
			continue
		}
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	source := newSource(t, sourceTree)
	out := memfs.New()

	snapshot := func() map[string]string {
		files := map[string]string{}
		require.NoError(t, util.Walk(out, "/", func(p string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			data, err := util.ReadFile(out, p)
			files[p] = string(data)
			return err
		}))
		return files
	}

	for i := 0; i < 2; i++ {
		e := newEngine(t, source)
		e.Sinks = []Sink{NewTreeWriter(out)}
		_, err := e.Run(context.Background())
		require.NoError(t, err)
	}
	first := snapshot()
	assert.Len(t, first, 4)

	e := newEngine(t, source)
	e.Sinks = []Sink{NewTreeWriter(out)}
	_, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, snapshot())
	for p := range first {
		assert.False(t, strings.Contains(p, ".tmp-"), p)
	}

	// Editing one record changes only its own document.
	require.NoError(t, util.WriteFile(source, "rules/combat.yaml", []byte("name: Combat\ncontent: Roll initiative, then act.\n"), 0o644))
	e = newEngine(t, source)
	e.Sinks = []Sink{NewTreeWriter(out)}
	_, err = e.Run(context.Background())
	require.NoError(t, err)
	edited := snapshot()
	for p, body := range first {
		if p == "/journal/rules/combat.json" {
			assert.NotEqual(t, body, edited[p])
			continue
		}
		assert.Equal(t, body, edited[p], p)
	}
}

func TestEngine_OnFile(t *testing.T) {
	e := newEngine(t, newSource(t, sourceTree))
	var (
		mu       sync.Mutex
		outcomes []Outcome
	)
	e.OnFile = func(o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		outcomes = append(outcomes, o)
	}
	_, err := e.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, outcomes, 9)
	byFile := map[string]Outcome{}
	for _, o := range outcomes {
		byFile[o.File] = o
	}
	assert.Equal(t, StatusConverted, byFile["rules/combat.yaml"].Status)
	assert.Equal(t, StatusSkipped, byFile["misc/notes.yaml"].Status)
	assert.Contains(t, byFile["misc/notes.yaml"].Detail, "unmatched")
	assert.Equal(t, StatusSkipped, byFile["spells/reference/magic-missile.yaml"].Status)
	assert.Equal(t, StatusError, byFile["creatures/broken.yaml"].Status)
	assert.Contains(t, byFile["rules/combat.yaml"].String(), "rules/combat.yaml")
}

type failingSink struct {
	file string
}

func (s failingSink) Write(relPath string, doc *api.Document, data []byte) error {
	if relPath == s.file {
		return errors.New("disk full")
	}
	return nil
}

func (s failingSink) Close() error { return nil }

func TestEngine_SinkFailureIsWriteError(t *testing.T) {
	e := newEngine(t, newSource(t, sourceTree))
	e.Sinks = []Sink{failingSink{file: "rules/combat.yaml"}}

	rep, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, rep.Converted)
	require.Len(t, rep.Errors, 2)
	assert.Equal(t, "rules/combat.yaml", rep.Errors[1].File)
	assert.Equal(t, report.KindWrite, rep.Errors[1].Kind)
	assert.Contains(t, rep.Errors[1].Message, "disk full")
}

func TestEngine_FatalRoot(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		e := newEngine(t, osfs.New(filepath.Join(t.TempDir(), "missing")))
		_, err := e.Run(context.Background())
		var fatal *FatalError
		require.ErrorAs(t, err, &fatal)
		assert.True(t, os.IsNotExist(errors.Unwrap(err)))
	})

	t.Run("not a directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "library.yaml")
		require.NoError(t, os.WriteFile(file, []byte("name: x\n"), 0o644))
		_, err := newEngine(t, osfs.New(file)).Run(context.Background())
		var fatal *FatalError
		require.ErrorAs(t, err, &fatal)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

// unreadableDir fails ReadDir for one directory.
type unreadableDir struct {
	billy.Filesystem
	dir string
}

func (fs unreadableDir) ReadDir(p string) ([]os.FileInfo, error) {
	if strings.Trim(filepath.ToSlash(p), "/") == fs.dir {
		return nil, &os.PathError{Op: "readdir", Path: p, Err: os.ErrPermission}
	}
	return fs.Filesystem.ReadDir(p)
}

func TestFiles_UnreadableDirectory(t *testing.T) {
	files, unreadable, err := Files(unreadableDir{Filesystem: newSource(t, sourceTree), dir: "spells"})
	require.NoError(t, err)

	require.Len(t, unreadable, 1)
	assert.Equal(t, "spells", unreadable[0].Path)
	assert.ErrorIs(t, unreadable[0].Err, os.ErrPermission)
	for _, f := range files {
		assert.False(t, strings.HasPrefix(f, "spells/"), f)
	}
	assert.Contains(t, files, "creatures/giants/ogre.yaml")
	assert.Contains(t, files, "rules/combat.yaml")

	// A hidden directory is never entered, readable or not.
	_, unreadable, err = Files(unreadableDir{Filesystem: newSource(t, sourceTree), dir: ".git"})
	require.NoError(t, err)
	assert.Empty(t, unreadable)

	_, _, err = Files(unreadableDir{Filesystem: newSource(t, sourceTree), dir: ""})
	assert.Error(t, err)
}

func TestEngine_UnreadableDirectoryIsNotFatal(t *testing.T) {
	e := newEngine(t, unreadableDir{Filesystem: newSource(t, sourceTree), dir: "spells"})
	rep, err := e.Run(context.Background())
	require.NoError(t, err)

	// light.yaml and the reference spell are not reached.
	assert.Equal(t, 3, rep.Converted)
	assert.Equal(t, rep.Processed, rep.Converted+rep.Skipped+len(rep.Errors))
	require.Len(t, rep.Errors, 2)
	assert.Equal(t, "creatures/broken.yaml", rep.Errors[0].File)
	assert.Equal(t, "spells", rep.Errors[1].File)
	assert.Equal(t, report.KindParse, rep.Errors[1].Kind)
	assert.Contains(t, rep.Errors[1].Message, "read directory")
}

func TestEngine_SameOutputPath(t *testing.T) {
	files := map[string]string{
		"creatures/goblin.json": `{"name": "Goblin", "size": "Small"}`,
		"creatures/goblin.yaml": "name: Goblin Boss\nsize: Small\n",
		"creatures/wolf.yaml":   "name: Wolf\nsize: Medium\n",
	}
	source := newSource(t, files)

	var want string
	for _, workers := range []int{1, 4, 8} {
		out := memfs.New()
		e := newEngine(t, source)
		e.Workers = workers
		e.Sinks = []Sink{NewTreeWriter(out)}
		rep, err := e.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, rep.Converted)
		require.Len(t, rep.Errors, 1)
		assert.Equal(t, "creatures/goblin.yaml", rep.Errors[0].File)
		assert.Equal(t, report.KindWrite, rep.Errors[0].Kind)
		assert.Contains(t, rep.Errors[0].Message, "actors/creatures/goblin.json")
		assert.Contains(t, rep.Errors[0].Message, "creatures/goblin.json")

		entries, err := out.ReadDir("actors/creatures")
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		data, err := util.ReadFile(out, "actors/creatures/goblin.json")
		require.NoError(t, err)
		assert.Contains(t, string(data), `"name": "Goblin"`)

		got := printed(t, rep)
		if want == "" {
			want = got
		}
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestShadowedOutputs(t *testing.T) {
	got := shadowedOutputs([]string{
		"a/goblin.json",
		"a/goblin.yaml",
		"a/goblin.yml",
		"b/goblin.yaml",
		"b/wolf.yaml",
	})
	assert.Equal(t, map[string]string{
		"a/goblin.yaml": "a/goblin.json",
		"a/goblin.yml":  "a/goblin.json",
	}, got)
}

func TestEngine_OnDisk(t *testing.T) {
	src := t.TempDir()
	for p, body := range sourceTree {
		full := filepath.Join(src, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
	dst := t.TempDir()

	e := newEngine(t, osfs.New(src))
	e.Sinks = []Sink{NewTreeWriter(osfs.New(dst))}
	rep, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Converted)

	_, err = os.Stat(filepath.Join(dst, "items", "spells", "0", "light.json"))
	assert.NoError(t, err)
}

func TestEngine_UnregisteredConverter(t *testing.T) {
	rules, err := classify.Parse([]byte("rules:\n  - pattern: \"**\"\n    type: npc\n    converter: mystery\n"))
	require.NoError(t, err)
	v, err := validate.New()
	require.NoError(t, err)

	_, err = NewEngine(newSource(t, sourceTree), rules, v).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
	assert.Contains(t, err.Error(), "registered: armor, creature")
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine(t, newSource(t, sourceTree)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
