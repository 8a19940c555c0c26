// Package apexmirror is the structural parse result the workspace Apex
// indexer persists: a typeMirror derived from the tree-sitter parse of a
// single .cls file (spec.md §4.6). It captures declaration shape — names,
// modifiers, signatures, byte ranges — but not statement bodies, since
// cross-file completion only ever needs a type's members, never another
// file's local variables.
package apexmirror

// Visibility is the raw Apex modifier keyword governing member access, as
// written in source. The index repository (internal/index) is what turns
// this into a declaration.Visibility rule; the mirror stays a faithful,
// un-interpreted parse result.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityGlobal    Visibility = "global"
)

// Range is a byte-range within the source file.
type Range struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Parameter is one formal parameter.
type Parameter struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Method is a class or interface method header.
type Method struct {
	Name       string      `json:"name"`
	Static     bool        `json:"static"`
	ReturnType string      `json:"returnType,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
	Visibility Visibility  `json:"visibility,omitempty"`
	Range      *Range      `json:"range,omitempty"`
}

// Field is a class field (not a property).
type Field struct {
	Name       string     `json:"name"`
	Static     bool       `json:"static"`
	Type       string     `json:"type,omitempty"`
	Visibility Visibility `json:"visibility,omitempty"`
}

// Property is a class property; HasGetter/HasSetter record whether
// `get`/`set` accessor bodies were present.
type Property struct {
	Name       string     `json:"name"`
	Static     bool       `json:"static"`
	Type       string     `json:"type,omitempty"`
	Visibility Visibility `json:"visibility,omitempty"`
	HasGetter  bool       `json:"hasGetter"`
	HasSetter  bool       `json:"hasSetter"`
}

// Constructor carries no user-visible name.
type Constructor struct {
	Range *Range `json:"range,omitempty"`
}

// EnumValue is one member of an enum.
type EnumValue struct {
	Name string `json:"name"`
}

// MemberKind discriminates the Member tagged union.
type MemberKind string

const (
	MemberClass       MemberKind = "class"
	MemberEnum        MemberKind = "enum"
	MemberInterface   MemberKind = "interface"
	MemberField       MemberKind = "field"
	MemberProperty    MemberKind = "property"
	MemberMethod      MemberKind = "method"
	MemberConstructor MemberKind = "constructor"
)

// Member is one entry of a Class's ordered member list. Exactly one of the
// pointer fields matching Kind is non-nil.
type Member struct {
	Kind        MemberKind   `json:"kind"`
	Class       *Class       `json:"class,omitempty"`
	Enum        *Enum        `json:"enum,omitempty"`
	Interface   *Interface   `json:"interface,omitempty"`
	Field       *Field       `json:"field,omitempty"`
	Property    *Property    `json:"property,omitempty"`
	Method      *Method      `json:"method,omitempty"`
	Constructor *Constructor `json:"constructor,omitempty"`
}

// Class is a top-level or nested Apex class.
type Class struct {
	Name       string     `json:"name"`
	Visibility Visibility `json:"visibility,omitempty"`
	SuperClass string     `json:"superClass,omitempty"`
	Members    []Member   `json:"members,omitempty"`
}

// Enum is a top-level or nested Apex enum.
type Enum struct {
	Name       string      `json:"name"`
	Visibility Visibility  `json:"visibility,omitempty"`
	Values     []EnumValue `json:"values,omitempty"`
}

// Interface is a top-level or nested Apex interface.
type Interface struct {
	Name           string     `json:"name"`
	Visibility     Visibility `json:"visibility,omitempty"`
	SuperInterface string     `json:"superInterface,omitempty"`
	Methods        []Method   `json:"methods,omitempty"`
}

// Kind discriminates the TypeMirror tagged union's top-level shape.
type Kind string

const (
	KindClass     Kind = "class"
	KindEnum      Kind = "enum"
	KindInterface Kind = "interface"
)

// TypeMirror is the top-level parse result for one .cls file.
type TypeMirror struct {
	Kind      Kind       `json:"kind"`
	Class     *Class     `json:"class,omitempty"`
	Interface *Interface `json:"interface,omitempty"`
	Enum      *Enum      `json:"enum,omitempty"`
}

// Name returns the top-level type's name, used to derive the persisted
// JSON's filename and the className field (spec.md §4.6).
func (t TypeMirror) Name() string {
	switch t.Kind {
	case KindClass:
		if t.Class != nil {
			return t.Class.Name
		}
	case KindInterface:
		if t.Interface != nil {
			return t.Interface.Name
		}
	case KindEnum:
		if t.Enum != nil {
			return t.Enum.Name
		}
	}
	return ""
}
