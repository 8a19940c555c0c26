// Package lsp holds the JSON-RPC payload shapes for the subset of the
// Language Server Protocol this server implements (spec.md §6).
package lsp

// DocumentURI is a file:// URI identifying a text document or workspace
// root.
type DocumentURI string

// Position is a zero-based line/character position.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open [Start, End) span within a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// TextDocumentIdentifier names a document by URI.
type TextDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

// VersionedTextDocumentIdentifier additionally carries the version the
// identified content change produces.
type VersionedTextDocumentIdentifier struct {
	URI     DocumentURI `json:"uri"`
	Version int         `json:"version"`
}

// TextDocumentItem is the full content of a document as sent by didOpen.
type TextDocumentItem struct {
	URI        DocumentURI `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int         `json:"version"`
	Text       string      `json:"text"`
}

// TextDocumentPositionParams identifies a document and a position in it.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// ClientInfo is the client's self-reported name/version.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// WorkspaceFolder is one folder of a multi-root workspace.
type WorkspaceFolder struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// InitializeParams corresponds to the 'initialize' request.
type InitializeParams struct {
	ProcessID        *int              `json:"processId,omitempty"`
	RootURI          *DocumentURI      `json:"rootUri,omitempty"`
	WorkspaceFolders []WorkspaceFolder `json:"workspaceFolders,omitempty"`
	ClientInfo       *ClientInfo       `json:"clientInfo,omitempty"`
}

// InitializeResult corresponds to the 'initialize' response.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// ServerInfo is the server's self-reported name/version.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// TextDocumentSyncKind selects how document content changes are sent.
type TextDocumentSyncKind int

const (
	SyncNone TextDocumentSyncKind = 0
	SyncFull TextDocumentSyncKind = 1
)

// CompletionOptions advertises completion support.
type CompletionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

// ServerCapabilities is the capability set advertised in InitializeResult.
type ServerCapabilities struct {
	TextDocumentSync   TextDocumentSyncKind `json:"textDocumentSync"`
	CompletionProvider *CompletionOptions   `json:"completionProvider,omitempty"`
	HoverProvider      bool                 `json:"hoverProvider,omitempty"`
}

// DidOpenTextDocumentParams corresponds to 'textDocument/didOpen'.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// TextDocumentContentChangeEvent is one entry of didChange's
// contentChanges; this server advertises SyncFull, so Text always carries
// the whole document and Range is always nil.
type TextDocumentContentChangeEvent struct {
	Range *Range `json:"range,omitempty"`
	Text  string `json:"text"`
}

// DidChangeTextDocumentParams corresponds to 'textDocument/didChange'.
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// DidCloseTextDocumentParams corresponds to 'textDocument/didClose'.
type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// CompletionParams corresponds to 'textDocument/completion'.
type CompletionParams struct {
	TextDocumentPositionParams
}

// CompletionItemKind is the icon/category an editor shows for an item.
type CompletionItemKind int

const (
	CompletionItemKindText      CompletionItemKind = 1
	CompletionItemKindMethod    CompletionItemKind = 2
	CompletionItemKindField     CompletionItemKind = 5
	CompletionItemKindVariable  CompletionItemKind = 6
	CompletionItemKindClass     CompletionItemKind = 7
	CompletionItemKindInterface CompletionItemKind = 8
	CompletionItemKindProperty  CompletionItemKind = 10
	CompletionItemKindEnum      CompletionItemKind = 13
	CompletionItemKindEnumMember CompletionItemKind = 20
)

// CompletionItem is a single completion candidate.
type CompletionItem struct {
	Label string             `json:"label"`
	Kind  CompletionItemKind `json:"kind,omitempty"`
}

// CompletionList is the response to 'textDocument/completion'.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

// HoverParams corresponds to 'textDocument/hover'.
type HoverParams struct {
	TextDocumentPositionParams
}

// MarkupContent is markdown-formatted hover content.
type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Hover is the response to 'textDocument/hover'; a nil *Hover result means
// "no hover information at this position".
type Hover struct {
	Contents MarkupContent `json:"contents"`
}

// MessageType is window/logMessage and window/showMessage's severity.
type MessageType int

const (
	TypeError   MessageType = 1
	TypeWarning MessageType = 2
	TypeInfo    MessageType = 3
	TypeLog     MessageType = 4
)

// LogMessageParams corresponds to 'window/logMessage'.
type LogMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// ShowMessageParams corresponds to 'window/showMessage'.
type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// WorkDoneProgressCreateParams corresponds to
// 'window/workDoneProgress/create'.
type WorkDoneProgressCreateParams struct {
	Token string `json:"token"`
}

// ProgressParams corresponds to '$/progress'.
type ProgressParams struct {
	Token string      `json:"token"`
	Value interface{} `json:"value"`
}

// CancelParams corresponds to '$/cancelRequest'.
type CancelParams struct {
	ID interface{} `json:"id"`
}
