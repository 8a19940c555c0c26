// Package index is the in-memory read side of the workspace index
// (spec.md §4.6): a Repository lazily loads persisted Apex and SObject
// records for each workspace root the first time they're needed, then
// serves every later lookup from memory for the repository's lifetime.
package index

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/apexlang/apex-lsp/internal/declaration"
	"github.com/apexlang/apex-lsp/internal/fsys"
	"github.com/apexlang/apex-lsp/internal/indexer"
	"github.com/apexlang/apex-lsp/internal/workspace"
)

// rootIndex holds one root's loaded declarations for one kind (apex or
// sobject): a map for case-insensitive point lookup, plus a parallel
// ordered list of keys that fixes iteration order regardless of Go's
// randomized map ordering (spec.md §4.10 step 5 needs a stable source order
// to rank completion candidates consistently across calls).
type rootIndex struct {
	decls map[string]declaration.Declaration
	order []string
}

// Repository serves indexed declarations and SObjects across every
// workspace root, loading persisted records on first access.
type Repository struct {
	fs     fsys.FS
	logger *zap.Logger
	roots  []workspace.Root

	sf singleflight.Group

	mu         sync.RWMutex
	apexByRoot map[string]rootIndex // root URI -> loaded apex records
	apexLoaded map[string]bool
	sobjByRoot map[string]rootIndex
	sobjLoaded map[string]bool
}

// New creates a Repository over roots. No disk access happens until a
// lookup method is called.
func New(fs fsys.FS, roots []workspace.Root, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		fs:         fs,
		logger:     logger,
		roots:      roots,
		apexByRoot: make(map[string]rootIndex),
		apexLoaded: make(map[string]bool),
		sobjByRoot: make(map[string]rootIndex),
		sobjLoaded: make(map[string]bool),
	}
}

// ensureLoaded loads root's records for kind exactly once, even under
// concurrent callers: singleflight.Group collapses duplicate in-flight
// loads for the same (root, kind) key to a single disk read.
func (r *Repository) ensureLoaded(root workspace.Root, kind string) {
	key := root.URI + "\x00" + kind
	r.mu.RLock()
	loaded := r.loadedMap(kind)[root.URI]
	r.mu.RUnlock()
	if loaded {
		return
	}

	_, _, _ = r.sf.Do(key, func() (any, error) {
		r.mu.RLock()
		already := r.loadedMap(kind)[root.URI]
		r.mu.RUnlock()
		if already {
			return nil, nil
		}

		var idx rootIndex
		switch kind {
		case "apex":
			idx = r.loadApex(root)
		case "sobject":
			idx = r.loadSObject(root)
		}

		r.mu.Lock()
		switch kind {
		case "apex":
			r.apexByRoot[root.URI] = idx
			r.apexLoaded[root.URI] = true
		case "sobject":
			r.sobjByRoot[root.URI] = idx
			r.sobjLoaded[root.URI] = true
		}
		r.mu.Unlock()
		return nil, nil
	})
}

func (r *Repository) loadedMap(kind string) map[string]bool {
	if kind == "apex" {
		return r.apexLoaded
	}
	return r.sobjLoaded
}

// sortedEntries returns dir's directory entries sorted by name, so the
// resulting rootIndex.order is deterministic regardless of what order the
// underlying fsys.FS implementation happens to return them in.
func sortedEntries(fs fsys.FS, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (r *Repository) loadApex(root workspace.Root) rootIndex {
	dir := filepath.Join(indexer.IndexDir(root), "apex")
	idx := rootIndex{decls: make(map[string]declaration.Declaration)}
	names, err := sortedEntries(r.fs, dir)
	if err != nil {
		return idx
	}
	for _, name := range names {
		data, err := afero.ReadFile(r.fs, filepath.Join(dir, name))
		if err != nil {
			continue
		}
		var record indexer.ApexRecord
		if err := json.Unmarshal(data, &record); err != nil {
			r.logger.Warn("index: malformed apex record", zap.String("file", name), zap.Error(err))
			continue
		}
		decl, ok := mapTypeMirror(record.TypeMirror)
		if !ok {
			continue
		}
		key := declaration.NewName(decl.DeclName().String()).Key()
		if _, dup := idx.decls[key]; dup {
			r.logger.Warn("index: duplicate apex type name, keeping most recent", zap.String("name", record.ClassName))
		} else {
			idx.order = append(idx.order, key)
		}
		idx.decls[key] = decl
	}
	return idx
}

func (r *Repository) loadSObject(root workspace.Root) rootIndex {
	dir := filepath.Join(indexer.IndexDir(root), "sobject")
	idx := rootIndex{decls: make(map[string]declaration.Declaration)}
	names, err := sortedEntries(r.fs, dir)
	if err != nil {
		return idx
	}
	for _, name := range names {
		data, err := afero.ReadFile(r.fs, filepath.Join(dir, name))
		if err != nil {
			continue
		}
		var record indexer.SObjectRecord
		if err := json.Unmarshal(data, &record); err != nil {
			r.logger.Warn("index: malformed sobject record", zap.String("file", name), zap.Error(err))
			continue
		}
		decl := mapSObject(record)
		key := declaration.NewName(decl.DeclName().String()).Key()
		if _, dup := idx.decls[key]; dup {
			r.logger.Warn("index: duplicate sobject name, keeping most recent", zap.String("name", record.ObjectAPIName))
		} else {
			idx.order = append(idx.order, key)
		}
		idx.decls[key] = decl
	}
	return idx
}

// GetDeclarations returns every indexed Apex declaration across all roots,
// followed by every indexed SObject, in a stable order: roots in
// registration order, and within a root the order its persisted records
// were loaded in (alphabetical by file name).
func (r *Repository) GetDeclarations() []declaration.Declaration {
	var out []declaration.Declaration
	for _, root := range r.roots {
		r.ensureLoaded(root, "apex")
		r.ensureLoaded(root, "sobject")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, byRoot := range []map[string]rootIndex{r.apexByRoot, r.sobjByRoot} {
		for _, root := range r.roots {
			idx := byRoot[root.URI]
			for _, key := range idx.order {
				out = append(out, idx.decls[key])
			}
		}
	}
	return out
}

// GetIndexedType looks up a top-level type by name, case-insensitively,
// searching Apex declarations before SObjects and roots in registration
// order (spec.md §4.6's "Apex-first-then-SObject" rule).
func (r *Repository) GetIndexedType(name string) (declaration.Declaration, bool) {
	key := declaration.NewName(name).Key()

	for _, root := range r.roots {
		r.ensureLoaded(root, "apex")
	}
	r.mu.RLock()
	for _, root := range r.roots {
		if decl, ok := r.apexByRoot[root.URI].decls[key]; ok {
			r.mu.RUnlock()
			return decl, true
		}
	}
	r.mu.RUnlock()

	for _, root := range r.roots {
		r.ensureLoaded(root, "sobject")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, root := range r.roots {
		if decl, ok := r.sobjByRoot[root.URI].decls[key]; ok {
			return decl, true
		}
	}
	return nil, false
}
