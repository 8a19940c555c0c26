package declaration

// Visibility decides, for a given cursor byte offset, whether a declaration
// is in scope. It is carried as data on every declaration rather than
// expressed through control flow or type hierarchy, so the resolver and the
// completion engine can consult it uniformly regardless of declaration kind.
type Visibility struct {
	kind     visibilityKind
	begin    int
	scopeEnd int // only meaningful for kindBetween
}

type visibilityKind int

const (
	kindAlways visibilityKind = iota
	kindNever
	kindAfterDeclaration
	kindBetween
)

// AlwaysVisible is visible everywhere: types, top-level declarations, and
// class members that carry no narrower rule.
func AlwaysVisible() Visibility { return Visibility{kind: kindAlways} }

// NeverVisible excludes a declaration from every visible set, e.g.
// non-public members read from the workspace index.
func NeverVisible() Visibility { return Visibility{kind: kindNever} }

// VisibleAfterDeclaration is visible for any cursor offset at or after begin.
func VisibleAfterDeclaration(begin int) Visibility {
	return Visibility{kind: kindAfterDeclaration, begin: begin}
}

// VisibleBetweenDeclarationAndScopeEnd is visible for cursor offsets in
// [begin, scopeEnd] inclusive on both ends.
func VisibleBetweenDeclarationAndScopeEnd(begin, scopeEnd int) Visibility {
	return Visibility{kind: kindBetween, begin: begin, scopeEnd: scopeEnd}
}

// Admits reports whether cursor offset c is in scope under this rule.
func (v Visibility) Admits(c int) bool {
	switch v.kind {
	case kindAlways:
		return true
	case kindNever:
		return false
	case kindAfterDeclaration:
		return c >= v.begin
	case kindBetween:
		return c >= v.begin && c <= v.scopeEnd
	default:
		return false
	}
}

// IsAlwaysVisible reports whether this rule is the AlwaysVisible variant.
func (v Visibility) IsAlwaysVisible() bool { return v.kind == kindAlways }

// IsNeverVisible reports whether this rule is the NeverVisible variant.
func (v Visibility) IsNeverVisible() bool { return v.kind == kindNever }
