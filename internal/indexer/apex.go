// Package indexer runs the four-stage workspace indexing pipeline spec.md
// §4.6 describes: collect candidate source files, drop the ones whose
// persisted record is already current, (re)index the rest concurrently,
// then purge persisted records whose source no longer exists.
package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/apexlang/apex-lsp/internal/apexmirror"
	"github.com/apexlang/apex-lsp/internal/apexparse"
	"github.com/apexlang/apex-lsp/internal/declaration"
	"github.com/apexlang/apex-lsp/internal/fsys"
	"github.com/apexlang/apex-lsp/internal/workspace"
)

// SchemaVersion is bumped whenever the persisted record shape changes, so
// a repository reload can tell a stale-format file from a stale-content one.
const SchemaVersion = 1

// apexSource identifies where a persisted Apex record came from.
type apexSource struct {
	URI          string `json:"uri"`
	RelativePath string `json:"relativePath"`
}

// ApexRecord is the JSON document persisted per .cls file.
type ApexRecord struct {
	SchemaVersion int                  `json:"schemaVersion"`
	ClassName     string               `json:"className"`
	Source        apexSource           `json:"source"`
	TypeMirror    apexmirror.TypeMirror `json:"typeMirror"`
}

// IndexDir is where a root's persisted records live, under its own
// directory so a workspace's package directories never see index output
// mixed in with source.
func IndexDir(root workspace.Root) string {
	return filepath.Join(root.Path, ".apex-lsp", "index")
}

func apexIndexDir(root workspace.Root) string {
	return filepath.Join(IndexDir(root), "apex")
}

func sobjectIndexDir(root workspace.Root) string {
	return filepath.Join(IndexDir(root), "sobject")
}

func recordPath(dir, name string) string {
	safe := strings.ReplaceAll(name, "/", "_")
	return filepath.Join(dir, safe+".json")
}

// ApexIndexer indexes every .cls file reachable from a root's package
// directories.
type ApexIndexer struct {
	FS      fsys.FS
	Parser  *apexparse.Manager
	Logger  *zap.Logger
}

// RunRoot executes the full pipeline for one root: collect, filter stale,
// index in parallel, purge orphans.
func (ix *ApexIndexer) RunRoot(ctx context.Context, root workspace.Root) error {
	dir := apexIndexDir(root)
	if err := ix.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("indexer: create %s: %w", dir, err)
	}

	sources, err := ix.collect(root)
	if err != nil {
		return fmt.Errorf("indexer: collect apex sources: %w", err)
	}

	stale := ix.filterStale(dir, sources)

	err = runBatched(ctx, stale, func(ctx context.Context, src sourceFile) error {
		if indexErr := ix.indexOne(ctx, dir, src); indexErr != nil {
			ix.logger().Warn("apex index failed",
				zap.String("path", src.Path), zap.Error(indexErr))
		}
		return nil
	})
	if err != nil {
		return err
	}

	ix.purgeOrphans(dir, sources)
	return nil
}

func (ix *ApexIndexer) logger() *zap.Logger {
	if ix.Logger != nil {
		return ix.Logger
	}
	return zap.NewNop()
}

type sourceFile struct {
	Path         string // absolute fs path
	RelativePath string // relative to the root
	ModTime      time.Time
}

func (ix *ApexIndexer) collect(root workspace.Root) ([]sourceFile, error) {
	var out []sourceFile
	dirs := root.PackageDirPaths
	if len(dirs) == 0 {
		dirs = []string{root.Path}
	}
	for _, dir := range dirs {
		err := fsys.WalkFiles(ix.FS, dir, func(e fsys.Entry) error {
			if !strings.HasSuffix(e.Name, ".cls") {
				return nil
			}
			rel, relErr := filepath.Rel(root.Path, e.Path)
			if relErr != nil {
				rel = e.Path
			}
			out = append(out, sourceFile{Path: e.Path, RelativePath: filepath.ToSlash(rel), ModTime: e.ModTime})
			return nil
		})
		if err != nil && !fsys.Exists(ix.FS, dir) {
			continue
		} else if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// filterStale drops sources whose persisted record already reflects the
// current mtime, returning only the ones that need (re)indexing.
func (ix *ApexIndexer) filterStale(dir string, sources []sourceFile) []sourceFile {
	var stale []sourceFile
	for _, src := range sources {
		rp := recordPath(dir, strings.TrimSuffix(filepath.Base(src.Path), ".cls"))
		recordedMod := fsys.ModTimeOrZero(ix.FS, rp)
		if recordedMod.IsZero() || src.ModTime.After(recordedMod) {
			stale = append(stale, src)
		}
	}
	return stale
}

func (ix *ApexIndexer) indexOne(ctx context.Context, dir string, src sourceFile) error {
	if ix.Parser == nil {
		return fmt.Errorf("indexer: no Apex parser loaded")
	}
	content, err := afero.ReadFile(ix.FS, src.Path)
	if err != nil {
		return err
	}
	tree, err := ix.Parser.Parse(ctx, nil, content)
	if err != nil {
		return err
	}
	defer tree.Close()

	mirror, err := apexmirror.ParseTypeMirror(tree, content)
	if err != nil {
		return err
	}

	className := mirror.Name()
	if className == "" {
		className = strings.TrimSuffix(filepath.Base(src.Path), ".cls")
	}

	record := ApexRecord{
		SchemaVersion: SchemaVersion,
		ClassName:     className,
		Source: apexSource{
			URI:          workspace.URIFromFilename(src.Path),
			RelativePath: src.RelativePath,
		},
		TypeMirror: mirror,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	rp := recordPath(dir, strings.TrimSuffix(filepath.Base(src.Path), ".cls"))
	if err := afero.WriteFile(ix.FS, rp, data, 0o644); err != nil {
		return err
	}
	return ix.FS.Chtimes(rp, src.ModTime, src.ModTime)
}

// purgeOrphans removes persisted records whose .cls source no longer
// exists among sources. The comparison is case-insensitive (spec.md §4.6
// stage 4: a record's stem must not match any collected item's logical name
// case-insensitively), matching Apex's own case-insensitive identifiers.
func (ix *ApexIndexer) purgeOrphans(dir string, sources []sourceFile) {
	want := make(map[string]bool, len(sources))
	for _, src := range sources {
		stem := strings.TrimSuffix(filepath.Base(src.Path), ".cls")
		want[declaration.NewName(stem).Key()] = true
	}
	entries, err := afero.ReadDir(ix.FS, dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		if !want[declaration.NewName(name).Key()] {
			_ = ix.FS.Remove(filepath.Join(dir, entry.Name()))
		}
	}
}
