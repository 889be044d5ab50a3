package ingest

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentic-research/grimoire/internal/record"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Unreadable is an entry below the root that could not be listed.
type Unreadable struct {
	Path string
	Err  error
}

// Files lists the record files under the filesystem root as sorted,
// slash-separated relative paths. Hidden entries are not part of the input:
// hidden directories are not entered and hidden files are not listed.
//
// Only a root that cannot be read fails the walk. Entries below it that
// cannot be read are returned as unreadable and the walk goes on.
func Files(fs billy.Filesystem) ([]string, []Unreadable, error) {
	var (
		out        []string
		unreadable []Unreadable
	)
	err := util.Walk(fs, "/", func(p string, info os.FileInfo, err error) error {
		rel := strings.TrimPrefix(filepath.ToSlash(p), "/")
		hidden := rel != "" && strings.HasPrefix(path.Base(rel), ".")
		if err != nil {
			if rel == "" {
				return err
			}
			if !hidden {
				unreadable = append(unreadable, Unreadable{Path: rel, Err: err})
			}
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if !hidden && record.IsRecordFile(info.Name()) {
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(out)
	sort.Slice(unreadable, func(i, j int) bool { return unreadable[i].Path < unreadable[j].Path })
	return out, unreadable, nil
}

// shadowedOutputs maps every file whose output path is already claimed by an
// earlier file in sorted order ("goblin.json" before "goblin.yaml") to that
// earlier file. Outputs drop the source extension, so such files would
// overwrite each other.
func shadowedOutputs(files []string) map[string]string {
	shadowed := make(map[string]string)
	claimed := make(map[string]string, len(files))
	for _, f := range files {
		stem := strings.TrimSuffix(f, path.Ext(f))
		if first, ok := claimed[stem]; ok {
			shadowed[f] = first
			continue
		}
		claimed[stem] = f
	}
	return shadowed
}
