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

	"github.com/apexlang/apex-lsp/internal/declaration"
	"github.com/apexlang/apex-lsp/internal/fsys"
	"github.com/apexlang/apex-lsp/internal/sobject"
	"github.com/apexlang/apex-lsp/internal/workspace"
)

type sobjectSource struct {
	ObjectMetaURI string `json:"objectMetaUri"`
	RelativePath  string `json:"relativePath"`
}

// SObjectRecord is the JSON document persisted per SObject directory.
type SObjectRecord struct {
	SchemaVersion  int                    `json:"schemaVersion"`
	ObjectAPIName  string                 `json:"objectApiName"`
	Source         sobjectSource          `json:"source"`
	ObjectMetadata sobject.ObjectMetadata `json:"objectMetadata"`
}

// SObjectIndexer indexes every `objects/<Name>/<Name>.object-meta.xml`
// directory reachable from a root's package directories.
type SObjectIndexer struct {
	FS     fsys.FS
	Logger *zap.Logger
}

type sobjectDir struct {
	APIName        string
	ObjectMetaPath string
	FieldsDir      string
	RelativePath   string
}

func (ix *SObjectIndexer) logger() *zap.Logger {
	if ix.Logger != nil {
		return ix.Logger
	}
	return zap.NewNop()
}

// RunRoot executes the full pipeline for one root.
func (ix *SObjectIndexer) RunRoot(ctx context.Context, root workspace.Root) error {
	dir := sobjectIndexDir(root)
	if err := ix.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("indexer: create %s: %w", dir, err)
	}

	objects, err := ix.collect(root)
	if err != nil {
		return fmt.Errorf("indexer: collect sobjects: %w", err)
	}

	stale := ix.filterStale(dir, objects)

	err = runBatched(ctx, stale, func(ctx context.Context, obj sobjectDir) error {
		if indexErr := ix.indexOne(dir, root, obj); indexErr != nil {
			ix.logger().Warn("sobject index failed",
				zap.String("object", obj.APIName), zap.Error(indexErr))
		}
		return nil
	})
	if err != nil {
		return err
	}

	ix.purgeOrphans(dir, objects)
	return nil
}

// collect finds every `objects/<Name>/<Name>.object-meta.xml` manifest
// under a root's package directories, recording the manifest and fields/
// paths; filterStale computes their newest mtime for staleness checks.
func (ix *SObjectIndexer) collect(root workspace.Root) ([]sobjectDir, error) {
	var out []sobjectDir
	dirs := root.PackageDirPaths
	if len(dirs) == 0 {
		dirs = []string{root.Path}
	}
	for _, base := range dirs {
		objectsRoot := filepath.Join(base, "objects")
		if !fsys.Exists(ix.FS, objectsRoot) {
			continue
		}
		entries, err := afero.ReadDir(ix.FS, objectsRoot)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name := entry.Name()
			objDir := filepath.Join(objectsRoot, name)
			manifest := filepath.Join(objDir, name+".object-meta.xml")
			if !fsys.Exists(ix.FS, manifest) {
				continue
			}
			rel, relErr := filepath.Rel(root.Path, manifest)
			if relErr != nil {
				rel = manifest
			}
			out = append(out, sobjectDir{
				APIName:        name,
				ObjectMetaPath: manifest,
				FieldsDir:      filepath.Join(objDir, "fields"),
				RelativePath:   filepath.ToSlash(rel),
			})
		}
	}
	return out, nil
}

func (ix *SObjectIndexer) filterStale(dir string, objects []sobjectDir) []sobjectDir {
	var stale []sobjectDir
	for _, obj := range objects {
		rp := recordPath(dir, obj.APIName)
		recordedMod := fsys.ModTimeOrZero(ix.FS, rp)
		newest := ix.newestModTime(obj)
		if recordedMod.IsZero() || newest.After(recordedMod) {
			stale = append(stale, obj)
		}
	}
	return stale
}

// newestModTime is the most recent mtime among the object's manifest and
// its field-meta.xml files, so editing a single field invalidates the
// whole SObject record.
func (ix *SObjectIndexer) newestModTime(obj sobjectDir) time.Time {
	newest := fsys.ModTimeOrZero(ix.FS, obj.ObjectMetaPath)
	entries, err := afero.ReadDir(ix.FS, obj.FieldsDir)
	if err != nil {
		return newest
	}
	for _, entry := range entries {
		if entry.ModTime().After(newest) {
			newest = entry.ModTime()
		}
	}
	return newest
}

func (ix *SObjectIndexer) indexOne(dir string, root workspace.Root, obj sobjectDir) error {
	metadata, err := sobject.BuildObjectMetadata(ix.FS, obj.APIName, obj.ObjectMetaPath, obj.FieldsDir)
	if err != nil {
		return err
	}

	record := SObjectRecord{
		SchemaVersion: SchemaVersion,
		ObjectAPIName: obj.APIName,
		Source: sobjectSource{
			ObjectMetaURI: workspace.URIFromFilename(obj.ObjectMetaPath),
			RelativePath:  obj.RelativePath,
		},
		ObjectMetadata: metadata,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	rp := recordPath(dir, obj.APIName)
	if err := afero.WriteFile(ix.FS, rp, data, 0o644); err != nil {
		return err
	}
	modTime := ix.newestModTime(obj)
	return ix.FS.Chtimes(rp, modTime, modTime)
}

// purgeOrphans removes persisted records whose SObject directory no longer
// exists among objects. The comparison is case-insensitive (spec.md §4.6
// stage 4), matching the apex indexer's purge rule.
func (ix *SObjectIndexer) purgeOrphans(dir string, objects []sobjectDir) {
	want := make(map[string]bool, len(objects))
	for _, obj := range objects {
		want[declaration.NewName(obj.APIName).Key()] = true
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
