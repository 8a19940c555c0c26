// Package completion implements the completion engine (spec.md §4.10):
// converting an LSP position to a byte offset, classifying the text
// immediately before the cursor, filtering candidates by visibility and
// case-insensitive prefix, and ranking and capping the result list.
package completion

import (
	"strings"

	"github.com/apexlang/apex-lsp/internal/declaration"
)

// MaxItems is the completion list's hard cap (spec.md §4.10).
const MaxItems = 25

// Kind classifies what a completion candidate names, used only for
// ranking: types first, then variables/fields, then methods, then enum
// values, each bucket preserving source/discovery order internally.
type Kind int

const (
	KindType Kind = iota
	KindVariable
	KindMethod
	KindEnumValue
)

// Item is one completion candidate.
type Item struct {
	Label string
	Kind  Kind
}

// Result is the completion engine's output.
type Result struct {
	Items        []Item
	IsIncomplete bool
}

// OffsetFromPosition converts a zero-based line/character LSP position to
// a byte offset into text, per spec.md §4.10's literal rule: the offset is
// the sum of every prior line's length (including its line terminator)
// plus the character index, clamped to the line's actual length. This is
// deliberately simpler than a UTF-16-aware conversion — completion never
// needs to resolve a position past the end of the prefix it is completing.
func OffsetFromPosition(text string, line, character int) int {
	lines := strings.SplitAfter(text, "\n")
	if line < 0 {
		line = 0
	}
	if line >= len(lines) {
		return len(text)
	}
	offset := 0
	for i := 0; i < line; i++ {
		offset += len(lines[i])
	}
	lineText := strings.TrimSuffix(strings.TrimSuffix(lines[line], "\n"), "\r")
	if character < 0 {
		character = 0
	}
	if character > len(lineText) {
		character = len(lineText)
	}
	return offset + character
}

// Context classifies the text immediately before the cursor.
type Context struct {
	Prefix      string // the identifier prefix typed so far
	ReceiverRaw string // text of the expression before a `.`, empty for bare prefix
}

// ClassifyContext inspects text immediately before offset, per spec.md
// §4.10: a `.` immediately before the prefix means member-access
// completion on the expression preceding the `.`; only one level of
// chaining is recognized, so `a.b.` is classified the same as a bare
// prefix (there is no "receiver of a receiver" resolution).
func ClassifyContext(source []byte, offset int) Context {
	prefixStart := offset
	for prefixStart > 0 && isIdentifierByte(source[prefixStart-1]) {
		prefixStart--
	}
	prefix := string(source[prefixStart:offset])

	if prefixStart == 0 || source[prefixStart-1] != '.' {
		return Context{Prefix: prefix}
	}

	recvEnd := prefixStart - 1
	recvStart := recvEnd
	for recvStart > 0 && isIdentifierByte(source[recvStart-1]) {
		recvStart--
	}
	if recvStart == recvEnd {
		return Context{Prefix: prefix}
	}
	// If another `.` immediately precedes the receiver identifier, this is
	// a chain deeper than one level (`a.b.`) — treat as an unresolvable
	// receiver, same as a bare prefix, rather than attempting to resolve it.
	if recvStart > 0 && source[recvStart-1] == '.' {
		return Context{Prefix: prefix}
	}

	return Context{Prefix: prefix, ReceiverRaw: string(source[recvStart:recvEnd])}
}

func isIdentifierByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// candidate pairs a declaration with the Kind bucket it ranks into.
type candidate struct {
	decl declaration.Declaration
	kind Kind
}

func kindOf(d declaration.Declaration) (Kind, bool) {
	switch d.(type) {
	case declaration.IndexedClass, declaration.IndexedEnum, declaration.IndexedInterface, declaration.IndexedSObject:
		return KindType, true
	case declaration.IndexedVariable, declaration.FieldMember, declaration.PropertyDeclaration:
		return KindVariable, true
	case declaration.MethodDeclaration:
		return KindMethod, true
	case declaration.EnumValue:
		return KindEnumValue, true
	}
	return 0, false
}

// Complete builds the ranked, capped completion list for candidates visible
// at offset whose label matches ctx.Prefix case-insensitively.
func Complete(candidates []declaration.Declaration, ctx Context, offset int) Result {
	buckets := [4][]Item{}
	matched := 0

	for _, d := range candidates {
		if vis, ok := visibilityOf(d); ok && !vis.Admits(offset) {
			continue
		}
		label := d.DeclName().String()
		if label == "" {
			continue
		}
		if ctx.Prefix != "" && !declaration.HasPrefixIgnoreCase(label, ctx.Prefix) {
			continue
		}
		kind, ok := kindOf(d)
		if !ok {
			continue
		}
		matched++
		buckets[kind] = append(buckets[kind], Item{Label: label, Kind: kind})
	}

	var items []Item
	for k := 0; k < len(buckets); k++ {
		items = append(items, buckets[k]...)
	}

	isIncomplete := false
	if len(items) > MaxItems {
		items = items[:MaxItems]
		isIncomplete = true
	} else if ctx.Prefix == "" && matched > MaxItems {
		// Even when everything matched (empty prefix), exceeding the cap
		// still signals an incomplete list (spec.md §8).
		isIncomplete = true
	}

	return Result{Items: items, IsIncomplete: isIncomplete}
}

func visibilityOf(d declaration.Declaration) (declaration.Visibility, bool) {
	switch v := d.(type) {
	case declaration.IndexedVariable:
		return v.Visibility, true
	case declaration.IndexedClass:
		return v.Visibility, true
	case declaration.IndexedEnum:
		return v.Visibility, true
	case declaration.IndexedInterface:
		return v.Visibility, true
	case declaration.MethodDeclaration:
		return v.Visibility, true
	case declaration.FieldMember:
		return v.Visibility, true
	case declaration.PropertyDeclaration:
		return v.Visibility, true
	case declaration.IndexedSObject:
		return declaration.AlwaysVisible(), true
	case declaration.EnumValue:
		return declaration.AlwaysVisible(), true
	}
	return declaration.Visibility{}, false
}

// MemberCandidates returns a receiver's own members as completion
// candidates for the member-access case of Complete (spec.md §4.10: one
// level of `.` chaining only, super-class/interface members are never
// included). If receiver is a variable, field, or property, its declared
// type is resolved via resolveType (the type in the index it names) and
// that type's instance members are returned instead — spec.md §4.10 step 2:
// "If X is a variable, resolve its declared type to a type in the index;
// candidates = its instance members." resolveType may be nil, in which case
// a variable/field/property receiver yields no candidates.
func MemberCandidates(receiver declaration.Declaration, resolveType func(name string) (declaration.Declaration, bool)) []declaration.Declaration {
	switch r := receiver.(type) {
	case declaration.IndexedClass:
		return r.Members
	case declaration.IndexedEnum:
		out := make([]declaration.Declaration, 0, len(r.Values))
		for _, v := range r.Values {
			out = append(out, v)
		}
		return out
	case declaration.IndexedInterface:
		return r.Methods
	case declaration.IndexedSObject:
		out := make([]declaration.Declaration, 0, len(r.Fields))
		for _, f := range r.Fields {
			out = append(out, declaration.IndexedVariable{Name: f.Name, Type: f.Type, Visibility: declaration.AlwaysVisible()})
		}
		return out
	case declaration.IndexedVariable:
		return resolveInstanceMembers(r.Type, resolveType)
	case declaration.FieldMember:
		return resolveInstanceMembers(r.Type, resolveType)
	case declaration.PropertyDeclaration:
		return resolveInstanceMembers(r.Type, resolveType)
	}
	return nil
}

func resolveInstanceMembers(typeName string, resolveType func(name string) (declaration.Declaration, bool)) []declaration.Declaration {
	if resolveType == nil || typeName == "" {
		return nil
	}
	typ, ok := resolveType(typeName)
	if !ok {
		return nil
	}
	if cls, isClass := typ.(declaration.IndexedClass); isClass {
		var out []declaration.Declaration
		for _, m := range cls.Members {
			f, isField := m.(declaration.FieldMember)
			p, isProp := m.(declaration.PropertyDeclaration)
			md, isMethod := m.(declaration.MethodDeclaration)
			if (isField && !f.Static) || (isProp && !p.Static) || (isMethod && !md.Static) {
				out = append(out, m)
			}
		}
		return out
	}
	return MemberCandidates(typ, resolveType)
}
