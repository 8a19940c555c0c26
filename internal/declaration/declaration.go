package declaration

// ByteRange is a half-open-by-convention [Begin, End] span of source bytes.
// Begin <= End always holds for well-formed declarations (§3 invariant).
type ByteRange struct {
	Begin int
	End   int
}

// Declaration is the tagged-variant element the local and workspace indexers
// produce. Every concrete kind below implements it; callers type-switch on
// the concrete type rather than calling methods, matching the "visibility as
// data, not control flow" design note — the interface exists only to let
// collections hold any declaration kind.
type Declaration interface {
	DeclName() Name
	declMarker()
}

// IndexedVariable is a local variable or method parameter.
type IndexedVariable struct {
	Name       Name
	Type       string
	Range      ByteRange
	Visibility Visibility
}

func (d IndexedVariable) DeclName() Name { return d.Name }
func (IndexedVariable) declMarker()      {}

// IndexedClass is a top-level or nested Apex class.
type IndexedClass struct {
	Name       Name
	Visibility Visibility
	SuperClass string // name-only reference, resolved lazily at query time; empty if none
	Members    []Declaration
}

func (d IndexedClass) DeclName() Name { return d.Name }
func (IndexedClass) declMarker()      {}

// EnumValue is a single member of an IndexedEnum. It implements Declaration
// in its own right so the completion engine and resolver can treat an enum
// value exactly like any other member candidate.
type EnumValue struct {
	Name Name
}

func (d EnumValue) DeclName() Name { return d.Name }
func (EnumValue) declMarker()      {}

// IndexedEnum is a top-level or nested Apex enum.
type IndexedEnum struct {
	Name       Name
	Visibility Visibility
	Values     []EnumValue
}

func (d IndexedEnum) DeclName() Name { return d.Name }
func (IndexedEnum) declMarker()      {}

// IndexedInterface is a top-level or nested Apex interface.
type IndexedInterface struct {
	Name           Name
	Visibility     Visibility
	SuperInterface string // name-only reference; empty if none
	Methods        []Declaration
}

func (d IndexedInterface) DeclName() Name { return d.Name }
func (IndexedInterface) declMarker()      {}

// SObjectField is one field of an SObject, as described by its
// field-meta.xml; Type is empty when the field-meta.xml omits it.
type SObjectField struct {
	Name Name
	Type string
}

// IndexedSObject describes a Salesforce data object from its
// object-meta.xml plus fields/*.field-meta.xml. SObjects are always
// AlwaysVisible (§3).
type IndexedSObject struct {
	Name   Name
	Fields []SObjectField
}

func (d IndexedSObject) DeclName() Name { return d.Name }
func (IndexedSObject) declMarker()      {}

// Parameter is one formal parameter of a method or constructor.
type Parameter struct {
	Type string
	Name string
}

// MethodDeclaration is a class or interface method.
type MethodDeclaration struct {
	Name       Name
	Static     bool
	ReturnType string // empty means void / unspecified
	Parameters []Parameter
	Body       Block
	Visibility Visibility
	Range      *ByteRange // nil when no byte-range is tracked (e.g. interface methods)
}

func (d MethodDeclaration) DeclName() Name { return d.Name }
func (MethodDeclaration) declMarker()      {}

// FieldMember is a class field (as opposed to a property with accessors).
type FieldMember struct {
	Name       Name
	Static     bool
	Type       string
	Visibility Visibility
}

func (d FieldMember) DeclName() Name { return d.Name }
func (FieldMember) declMarker()      {}

// PropertyDeclaration is a class property, optionally carrying getter/setter
// bodies.
type PropertyDeclaration struct {
	Name       Name
	Static     bool
	Type       string
	Visibility Visibility
	Getter     *Block
	Setter     *Block
}

func (d PropertyDeclaration) DeclName() Name { return d.Name }
func (PropertyDeclaration) declMarker()      {}

// ConstructorDeclaration carries no user-visible name and is never
// hoverable: the resolver's member scan skips it and goes on to later
// declarations.
type ConstructorDeclaration struct {
	Body Block
}

func (ConstructorDeclaration) DeclName() Name { return Name{} }
func (ConstructorDeclaration) declMarker()    {}

// Block is an ordered, possibly-empty list of nested declarations — a
// method body, constructor body, property accessor body, or lexical block
// introduced by if/for/while.
type Block struct {
	Declarations []Declaration
}
