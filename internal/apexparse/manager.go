// Package apexparse is the narrow binding onto the tree-sitter Apex grammar
// (spec.md §1, §6): the grammar itself is treated as an opaque shared
// library, located via the TS_SFAPEX_LIB environment variable or a path
// sibling to the running executable, and consumed only through
// github.com/smacker/go-tree-sitter's generic Language/Parser types.
package apexparse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// languageSymbol is the C entry point every tree-sitter grammar shared
// library exposes by convention: `const TSLanguage *tree_sitter_apex(void)`.
const languageSymbol = "tree_sitter_apex"

// Manager owns the loaded Apex grammar and the tree-sitter parser that
// consumes it. One Manager is shared by the dispatch loop and every indexer
// worker goroutine; Parse and Close serialize on mu, so concurrent callers
// take turns on the single underlying parser.
type Manager struct {
	mu       sync.Mutex
	parser   *sitter.Parser
	language *sitter.Language
}

// ResolveLibraryPath implements spec.md §6's configuration rule: prefer
// TS_SFAPEX_LIB if set, otherwise fall back to a path sibling to the
// running binary.
func ResolveLibraryPath() string {
	if p := os.Getenv("TS_SFAPEX_LIB"); p != "" {
		return p
	}
	exe, err := os.Executable()
	if err != nil {
		return defaultLibraryName()
	}
	return filepath.Join(filepath.Dir(exe), "..", "lib", defaultLibraryName())
}

func defaultLibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "tree-sitter-apex.dll"
	case "darwin":
		return "libtree-sitter-apex.dylib"
	default:
		return "libtree-sitter-apex.so"
	}
}

// NewManager loads the Apex grammar from libraryPath and returns a Manager
// ready to parse. An empty libraryPath resolves via ResolveLibraryPath.
func NewManager(libraryPath string) (*Manager, error) {
	if libraryPath == "" {
		libraryPath = ResolveLibraryPath()
	}
	lang, err := loadLanguageFromSharedLibrary(libraryPath)
	if err != nil {
		return nil, fmt.Errorf("apexparse: %w", err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	return &Manager{parser: parser, language: lang}, nil
}

// Parse parses content, using oldTree as an incremental-parse hint if
// provided (it may be nil). The returned tree is owned by the caller.
func (m *Manager) Parse(ctx context.Context, oldTree *sitter.Tree, content []byte) (*sitter.Tree, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tree, err := m.parser.ParseCtx(ctx, oldTree, content)
	if err != nil {
		return nil, fmt.Errorf("apexparse: parse failed: %w", err)
	}
	return tree, nil
}

// Close releases the underlying parser.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.parser != nil {
		m.parser.Close()
	}
}
