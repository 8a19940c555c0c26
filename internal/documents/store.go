// Package documents holds the authoritative in-memory text for open
// document URIs (spec.md §4.4). It is single-threaded with respect to the
// server dispatch loop: all mutations happen on the dispatch goroutine, so
// no internal locking is needed beyond what callers already provide by
// serializing dispatch.
package documents

// Store maps an open document URI to its current full text.
type Store struct {
	texts map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{texts: make(map[string]string)}
}

// Open stores or overwrites the text for uri (textDocument/didOpen).
func (s *Store) Open(uri, text string) {
	s.texts[uri] = text
}

// Change overwrites the text for uri with the full new content
// (textDocument/didChange, full-sync only per spec.md §4.4).
func (s *Store) Change(uri, text string) {
	s.texts[uri] = text
}

// Close drops uri from the store (textDocument/didClose).
func (s *Store) Close(uri string) {
	delete(s.texts, uri)
}

// Get returns the current text for uri and whether it is open.
func (s *Store) Get(uri string) (string, bool) {
	text, ok := s.texts[uri]
	return text, ok
}
