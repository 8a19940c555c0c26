package server

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/apexlang/apex-lsp/internal/completion"
	"github.com/apexlang/apex-lsp/internal/declaration"
	"github.com/apexlang/apex-lsp/internal/fsys"
	"github.com/apexlang/apex-lsp/internal/hoverfmt"
	"github.com/apexlang/apex-lsp/internal/index"
	"github.com/apexlang/apex-lsp/internal/indexer"
	"github.com/apexlang/apex-lsp/internal/localindex"
	"github.com/apexlang/apex-lsp/internal/lsp"
	"github.com/apexlang/apex-lsp/internal/progress"
	"github.com/apexlang/apex-lsp/internal/resolver"
	"github.com/apexlang/apex-lsp/internal/rpc"
	"github.com/apexlang/apex-lsp/internal/workspace"
)

// handleInitialize locates workspace roots and wires up the repository and
// orchestrator that 'initialized' will later use to index them. Indexing
// itself never runs here: spec.md §4.2 keeps 'initialize' cheap and defers
// the expensive pass to the 'initialized' notification.
func (s *Server) handleInitialize(params json.RawMessage) (any, error) {
	p, err := decodeParams[lsp.InitializeParams](params)
	if err != nil {
		return nil, rpc.NewError(rpc.CodeInvalidParams, err.Error())
	}

	var rootURIs []string
	if len(p.WorkspaceFolders) > 0 {
		for _, f := range p.WorkspaceFolders {
			rootURIs = append(rootURIs, f.URI)
		}
	} else if p.RootURI != nil {
		rootURIs = append(rootURIs, string(*p.RootURI))
	}

	fs := fsys.NewOS()
	roots := workspace.Locate(fs, rootURIs)

	s.mu.Lock()
	s.roots = roots
	s.repo = index.New(fs, roots, s.logger)
	s.orch = &indexer.Orchestrator{FS: fs, Parser: s.parser, Logger: s.logger}
	s.mu.Unlock()

	return lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync:   lsp.SyncFull,
			CompletionProvider: &lsp.CompletionOptions{TriggerCharacters: []string{"."}},
			HoverProvider:      true,
		},
		ServerInfo: &lsp.ServerInfo{Name: "apex-lsp"},
	}, nil
}

// handleInitialized transitions the server to Running and kicks off
// workspace indexing in the background, reporting progress through
// window/workDoneProgress/create and $/progress (spec.md §4.6, §6).
func (s *Server) handleInitialized(ctx context.Context, _ json.RawMessage) {
	s.setState(StateRunning)

	s.mu.RLock()
	orch, roots := s.orch, s.roots
	s.mu.RUnlock()
	if orch == nil || len(roots) == 0 {
		return
	}

	token := progress.NewToken()
	if err := s.writer.WriteRequest(token, "window/workDoneProgress/create", lsp.WorkDoneProgressCreateParams{Token: token}); err != nil {
		s.logger.Error("failed to write request", zap.String("method", "window/workDoneProgress/create"), zap.Error(err))
	}
	s.notify("$/progress", lsp.ProgressParams{Token: token, Value: progress.Begin("Indexing Apex workspace", "")})

	orch.Progress = func(done, total int) {
		pct := uint32(0)
		if total > 0 {
			pct = uint32(done * 100 / total)
		}
		s.notify("$/progress", lsp.ProgressParams{
			Token: token,
			Value: progress.Update(fmt.Sprintf("%d/%d workspace roots indexed", done, total), pct),
		})
	}
	orch.OnRootError = func(root workspace.Root, err error) {
		s.logToClient(lsp.TypeError, fmt.Sprintf("indexing failed for %s: %v", root.URI, err))
	}

	go func() {
		orch.RunAll(ctx, roots)
		s.notify("$/progress", lsp.ProgressParams{Token: token, Value: progress.End("Indexing complete")})
	}()
}

// handleShutdown moves the server to ShuttingDown without touching the
// stream; 'exit' is what actually ends the dispatch loop.
func (s *Server) handleShutdown() (any, error) {
	s.setState(StateShuttingDown)
	return nil, nil
}

// handleExit moves the server to Exited; dispatch's caller observes this and
// stops Run's loop.
func (s *Server) handleExit() {
	s.setState(StateExited)
}

func (s *Server) handleCancel(params json.RawMessage) {
	p, err := decodeParams[lsp.CancelParams](params)
	if err != nil {
		return
	}
	s.cancel.Cancel(p.ID)
}

func (s *Server) handleDidOpen(params json.RawMessage) {
	p, err := decodeParams[lsp.DidOpenTextDocumentParams](params)
	if err != nil {
		s.logger.Warn("didOpen: invalid params", zap.Error(err))
		return
	}
	uri := string(p.TextDocument.URI)
	s.docs.Open(uri, p.TextDocument.Text)
	s.reanalyze(uri, p.TextDocument.Text)
}

func (s *Server) handleDidChange(params json.RawMessage) {
	p, err := decodeParams[lsp.DidChangeTextDocumentParams](params)
	if err != nil {
		s.logger.Warn("didChange: invalid params", zap.Error(err))
		return
	}
	if len(p.ContentChanges) == 0 {
		return
	}
	uri := string(p.TextDocument.URI)
	text := p.ContentChanges[len(p.ContentChanges)-1].Text
	s.docs.Change(uri, text)
	s.reanalyze(uri, text)
}

func (s *Server) handleDidClose(params json.RawMessage) {
	p, err := decodeParams[lsp.DidCloseTextDocumentParams](params)
	if err != nil {
		s.logger.Warn("didClose: invalid params", zap.Error(err))
		return
	}
	uri := string(p.TextDocument.URI)
	s.docs.Close(uri)

	s.localMu.Lock()
	if doc, ok := s.local[uri]; ok {
		if doc.tree != nil {
			doc.tree.Close()
		}
		delete(s.local, uri)
	}
	s.localMu.Unlock()
}

// reanalyze reparses text with the shared tree-sitter manager (if one loaded
// successfully) and rebuilds the cached local declarations. A nil parser, or
// a parse failure, simply leaves the document without local analysis —
// completion and hover then fall back to whatever the workspace index knows
// (spec.md §7).
func (s *Server) reanalyze(uri, text string) {
	s.localMu.Lock()
	if prev, ok := s.local[uri]; ok && prev.tree != nil {
		prev.tree.Close()
	}
	delete(s.local, uri)
	s.localMu.Unlock()

	if s.parser == nil {
		return
	}
	tree, err := s.parser.Parse(context.Background(), nil, []byte(text))
	if err != nil {
		s.logger.Debug("reanalyze: parse failed", zap.String("uri", uri), zap.Error(err))
		s.logToClient(lsp.TypeWarning, fmt.Sprintf("failed to parse %s", uri))
		return
	}
	decls := localindex.Build(tree, []byte(text))

	s.localMu.Lock()
	s.local[uri] = &localDoc{tree: tree, decls: decls}
	s.localMu.Unlock()
}

func (s *Server) localDecls(uri string) []declaration.Declaration {
	s.localMu.RLock()
	defer s.localMu.RUnlock()
	if doc, ok := s.local[uri]; ok {
		return doc.decls
	}
	return nil
}

func (s *Server) indexedLookup() func(string) (declaration.Declaration, bool) {
	s.mu.RLock()
	repo := s.repo
	s.mu.RUnlock()
	if repo == nil {
		return func(string) (declaration.Declaration, bool) { return nil, false }
	}
	return repo.GetIndexedType
}

// typeResolver looks up a bare type name (as carried by a variable, field,
// or property's declared-type string) against the open file's own top-level
// types first, then the workspace index — the "resolve its declared type to
// a type in the index" step of spec.md §4.10 step 2.
func (s *Server) typeResolver(locals []declaration.Declaration) func(string) (declaration.Declaration, bool) {
	indexed := s.indexedLookup()
	return func(name string) (declaration.Declaration, bool) {
		for _, d := range locals {
			switch d.(type) {
			case declaration.IndexedClass, declaration.IndexedEnum, declaration.IndexedInterface:
				if d.DeclName().EqualString(name) {
					return d, true
				}
			}
		}
		return indexed(name)
	}
}

func (s *Server) handleCompletion(params json.RawMessage) (any, error) {
	p, err := decodeParams[lsp.CompletionParams](params)
	if err != nil {
		return nil, rpc.NewError(rpc.CodeInvalidParams, err.Error())
	}
	uri := string(p.TextDocument.URI)
	text, ok := s.docs.Get(uri)
	if !ok {
		return lsp.CompletionList{}, nil
	}

	offset := completion.OffsetFromPosition(text, p.Position.Line, p.Position.Character)
	ctx := completion.ClassifyContext([]byte(text), offset)
	locals := s.localDecls(uri)

	var candidates []declaration.Declaration
	if ctx.ReceiverRaw != "" {
		receiver, found := resolver.ResolveForCompletion(locals, s.indexedLookup(), ctx.ReceiverRaw, offset)
		if !found {
			return lsp.CompletionList{}, nil
		}
		candidates = completion.MemberCandidates(receiver, s.typeResolver(locals))
	} else {
		candidates = s.bareCandidates(locals, offset)
	}

	result := completion.Complete(candidates, ctx, offset)
	items := make([]lsp.CompletionItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, lsp.CompletionItem{Label: item.Label, Kind: completionItemKind(item.Kind)})
	}
	return lsp.CompletionList{IsIncomplete: result.IsIncomplete, Items: items}, nil
}

// bareCandidates assembles the candidate pool for unqualified completion:
// every workspace type, the open file's own top-level types, every member
// reachable without qualification from those top-level classes, and every
// local variable or parameter currently in scope at offset.
func (s *Server) bareCandidates(locals []declaration.Declaration, offset int) []declaration.Declaration {
	var out []declaration.Declaration

	s.mu.RLock()
	repo := s.repo
	s.mu.RUnlock()
	if repo != nil {
		out = append(out, repo.GetDeclarations()...)
	}

	out = append(out, locals...)

	for _, d := range locals {
		cls, ok := d.(declaration.IndexedClass)
		if !ok {
			continue
		}
		out = append(out, cls.Members...)
		collectVisibleVariables(cls.Members, offset, &out)
	}

	return out
}

func collectVisibleVariables(members []declaration.Declaration, offset int, out *[]declaration.Declaration) {
	for _, m := range members {
		switch mm := m.(type) {
		case declaration.MethodDeclaration:
			appendVisibleBlockVars(mm.Body, offset, out)
		case declaration.ConstructorDeclaration:
			appendVisibleBlockVars(mm.Body, offset, out)
		case declaration.PropertyDeclaration:
			if mm.Getter != nil {
				appendVisibleBlockVars(*mm.Getter, offset, out)
			}
			if mm.Setter != nil {
				appendVisibleBlockVars(*mm.Setter, offset, out)
			}
		case declaration.IndexedClass:
			collectVisibleVariables(mm.Members, offset, out)
		}
	}
}

func appendVisibleBlockVars(b declaration.Block, offset int, out *[]declaration.Declaration) {
	for _, d := range b.Declarations {
		v, ok := d.(declaration.IndexedVariable)
		if ok && v.Visibility.Admits(offset) {
			*out = append(*out, v)
		}
	}
}

func completionItemKind(k completion.Kind) lsp.CompletionItemKind {
	switch k {
	case completion.KindType:
		return lsp.CompletionItemKindClass
	case completion.KindVariable:
		return lsp.CompletionItemKindVariable
	case completion.KindMethod:
		return lsp.CompletionItemKindMethod
	case completion.KindEnumValue:
		return lsp.CompletionItemKindEnumMember
	}
	return lsp.CompletionItemKindText
}

func (s *Server) handleHover(params json.RawMessage) (any, error) {
	p, err := decodeParams[lsp.HoverParams](params)
	if err != nil {
		return nil, rpc.NewError(rpc.CodeInvalidParams, err.Error())
	}
	uri := string(p.TextDocument.URI)
	text, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	offset := completion.OffsetFromPosition(text, p.Position.Line, p.Position.Character)
	identifier, _, _, found := resolver.IdentifierAt([]byte(text), offset)
	if !found {
		return nil, nil
	}

	locals := s.localDecls(uri)
	decl, found := resolver.Resolve(locals, s.indexedLookup(), identifier, offset)
	if !found {
		return nil, nil
	}

	parent := enclosingTypeName(locals, decl)
	markdown := hoverfmt.Format(decl, parent)
	if markdown == "" {
		return nil, nil
	}
	return &lsp.Hover{Contents: lsp.MarkupContent{Kind: "markdown", Value: markdown}}, nil
}

// enclosingTypeName finds the local class (top-level or nested, searched
// depth-first) that directly owns decl, for
// hoverfmt's "// in ParentType" line. It returns the zero Name if decl is a
// top-level declaration itself or its owner can't be determined — member
// identity is compared by name since the member types here carry no stable
// pointer identity across the slice copies the declaration model uses.
func enclosingTypeName(locals []declaration.Declaration, decl declaration.Declaration) declaration.Name {
	name := decl.DeclName()
	if name.String() == "" {
		return declaration.Name{}
	}
	for _, d := range locals {
		cls, ok := d.(declaration.IndexedClass)
		if !ok {
			continue
		}
		if owner, ok := findOwner(cls, decl, name); ok {
			return owner
		}
	}
	return declaration.Name{}
}

func findOwner(cls declaration.IndexedClass, target declaration.Declaration, name declaration.Name) (declaration.Name, bool) {
	for _, m := range cls.Members {
		if sameMember(m, target, name) {
			return cls.Name, true
		}
		if nested, ok := m.(declaration.IndexedClass); ok {
			if owner, ok := findOwner(nested, target, name); ok {
				return owner, true
			}
		}
	}
	return declaration.Name{}, false
}

// sameMember reports whether m is the member resolver.Resolve returned.
// Declarations here aren't comparable with == (slice fields), so identity is
// by declared name plus concrete kind, which is unambiguous within one
// class's member list.
func sameMember(m, target declaration.Declaration, name declaration.Name) bool {
	if !m.DeclName().EqualString(name.String()) {
		return false
	}
	switch m.(type) {
	case declaration.MethodDeclaration:
		_, ok := target.(declaration.MethodDeclaration)
		return ok
	case declaration.FieldMember:
		_, ok := target.(declaration.FieldMember)
		return ok
	case declaration.PropertyDeclaration:
		_, ok := target.(declaration.PropertyDeclaration)
		return ok
	case declaration.IndexedClass:
		_, ok := target.(declaration.IndexedClass)
		return ok
	case declaration.IndexedEnum:
		_, ok := target.(declaration.IndexedEnum)
		return ok
	case declaration.IndexedInterface:
		_, ok := target.(declaration.IndexedInterface)
		return ok
	}
	return false
}
