// Package server drives the LSP dispatch loop: the Starting/Running/
// ShuttingDown/Exited state machine (spec.md §4.2), request/notification
// routing, and the handlers backing every method spec.md §6 lists.
package server

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/apexlang/apex-lsp/internal/apexparse"
	"github.com/apexlang/apex-lsp/internal/cancel"
	"github.com/apexlang/apex-lsp/internal/codec"
	"github.com/apexlang/apex-lsp/internal/declaration"
	"github.com/apexlang/apex-lsp/internal/documents"
	"github.com/apexlang/apex-lsp/internal/index"
	"github.com/apexlang/apex-lsp/internal/indexer"
	"github.com/apexlang/apex-lsp/internal/workspace"
)

// State is one phase of the server's lifecycle state machine.
type State int

const (
	StateStarting State = iota
	StateRunning
	StateShuttingDown
	StateExited
)

// localDoc is the cached analysis for one open document.
type localDoc struct {
	tree  *sitter.Tree
	decls []declaration.Declaration
}

// Server holds every piece of state the dispatch loop and handlers share.
type Server struct {
	reader *codec.Reader
	writer *codec.Writer
	logger *zap.Logger

	mu    sync.RWMutex
	state State

	docs     *documents.Store
	cancel   *cancel.Tracker
	parser   *apexparse.Manager
	roots    []workspace.Root
	repo     *index.Repository
	orch     *indexer.Orchestrator

	localMu sync.RWMutex
	local   map[string]*localDoc // uri -> cached parse/analysis
}

// New creates a Server ready to Run. parser may be nil if the tree-sitter
// grammar failed to load: parsing-dependent handlers then degrade to
// "no information available" responses rather than failing the whole
// server (spec.md §7 error posture).
func New(reader *codec.Reader, writer *codec.Writer, logger *zap.Logger, parser *apexparse.Manager) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		reader: reader,
		writer: writer,
		logger: logger,
		docs:   documents.New(),
		cancel: cancel.New(cancel.DefaultCapacity),
		parser: parser,
		local:  make(map[string]*localDoc),
	}
}

func (s *Server) getState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Server) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
