package resolver

import (
	"testing"

	"github.com/apexlang/apex-lsp/internal/declaration"
)

func TestIdentifierAtExpandsFromCursor(t *testing.T) {
	src := []byte("Integer total = 0;")
	text, begin, end, ok := IdentifierAt(src, 10) // inside "total"
	if !ok || text != "total" {
		t.Fatalf("got %q, %v", text, ok)
	}
	if src[begin] != 't' || src[end-1] != 'l' {
		t.Fatalf("unexpected range [%d,%d)", begin, end)
	}
}

func TestIdentifierAtProbesOneByteLeft(t *testing.T) {
	src := []byte("total ")
	// offset sitting on the space right after the identifier
	text, _, _, ok := IdentifierAt(src, 5)
	if !ok || text != "total" {
		t.Fatalf("got %q, %v", text, ok)
	}
}

func TestIdentifierAtOnNonIdentifierReturnsFalse(t *testing.T) {
	src := []byte("  ")
	if _, _, _, ok := IdentifierAt(src, 1); ok {
		t.Fatal("expected no identifier found in whitespace")
	}
}

func sampleClass() declaration.IndexedClass {
	return declaration.IndexedClass{
		Name:       declaration.NewName("AccountHelper"),
		Visibility: declaration.AlwaysVisible(),
		Members: []declaration.Declaration{
			declaration.FieldMember{
				Name:       declaration.NewName("DEFAULT_LIMIT"),
				Type:       "Integer",
				Visibility: declaration.AlwaysVisible(),
			},
			declaration.MethodDeclaration{
				Name:       declaration.NewName("process"),
				ReturnType: "void",
				Visibility: declaration.AlwaysVisible(),
				Body: declaration.Block{
					Declarations: []declaration.Declaration{
						declaration.IndexedVariable{
							Name:       declaration.NewName("count"),
							Type:       "Integer",
							Visibility: declaration.VisibleBetweenDeclarationAndScopeEnd(50, 100),
						},
					},
				},
			},
			declaration.ConstructorDeclaration{},
		},
	}
}

func TestResolveTopLevelType(t *testing.T) {
	cls := sampleClass()
	locals := []declaration.Declaration{cls}
	d, ok := Resolve(locals, nil, "AccountHelper", 0)
	if !ok {
		t.Fatal("expected to resolve the top-level class")
	}
	if _, isClass := d.(declaration.IndexedClass); !isClass {
		t.Fatalf("expected IndexedClass, got %T", d)
	}
}

func TestResolveClassMember(t *testing.T) {
	cls := sampleClass()
	locals := []declaration.Declaration{cls}
	d, ok := Resolve(locals, nil, "process", 0)
	if !ok {
		t.Fatal("expected to resolve the method")
	}
	if _, isMethod := d.(declaration.MethodDeclaration); !isMethod {
		t.Fatalf("expected MethodDeclaration, got %T", d)
	}
}

func TestResolveLocalVariableRespectsVisibility(t *testing.T) {
	cls := sampleClass()
	locals := []declaration.Declaration{cls}

	if _, ok := Resolve(locals, nil, "count", 10); ok {
		t.Fatal("expected 'count' to be invisible before its declaration")
	}
	if _, ok := Resolve(locals, nil, "count", 75); !ok {
		t.Fatal("expected 'count' to be visible within its scope")
	}
	if _, ok := Resolve(locals, nil, "count", 150); ok {
		t.Fatal("expected 'count' to be invisible past its scope end")
	}
}

func TestResolveFallsBackToWorkspaceIndex(t *testing.T) {
	locals := []declaration.Declaration{sampleClass()}
	indexed := func(name string) (declaration.Declaration, bool) {
		if name == "Opportunity" {
			return declaration.IndexedSObject{Name: declaration.NewName("Opportunity")}, true
		}
		return nil, false
	}
	d, ok := Resolve(locals, indexed, "Opportunity", 0)
	if !ok {
		t.Fatal("expected workspace index fallback to resolve Opportunity")
	}
	if _, isSObject := d.(declaration.IndexedSObject); !isSObject {
		t.Fatalf("expected IndexedSObject, got %T", d)
	}
}

func TestResolveEnumValue(t *testing.T) {
	enum := declaration.IndexedEnum{
		Name:       declaration.NewName("Status"),
		Visibility: declaration.AlwaysVisible(),
		Values: []declaration.EnumValue{
			{Name: declaration.NewName("Active")},
			{Name: declaration.NewName("Inactive")},
		},
	}
	locals := []declaration.Declaration{enum}
	d, ok := Resolve(locals, nil, "Active", 0)
	if !ok {
		t.Fatal("expected to resolve the enum value")
	}
	if v, isValue := d.(declaration.EnumValue); !isValue || v.Name.String() != "Active" {
		t.Fatalf("expected EnumValue Active, got %#v", d)
	}
}

func TestResolveUnknownIdentifierFails(t *testing.T) {
	locals := []declaration.Declaration{sampleClass()}
	if _, ok := Resolve(locals, nil, "doesNotExist", 0); ok {
		t.Fatal("expected resolution to fail for an unknown identifier")
	}
}

// TestResolveShadowsLocalVariableBehindSameNamedType pins hover's shadowing
// rule: a reference to a name that is both a top-level type and (separately)
// a local variable resolves to the type. ResolveForCompletion must resolve
// the exact same ambiguous name to the variable instead (see the test below).
func TestResolveShadowsLocalVariableBehindSameNamedType(t *testing.T) {
	shadowed := declaration.IndexedClass{
		Name:       declaration.NewName("acct"),
		Visibility: declaration.AlwaysVisible(),
		Members: []declaration.Declaration{
			declaration.MethodDeclaration{
				Name:       declaration.NewName("run"),
				Visibility: declaration.AlwaysVisible(),
				Body: declaration.Block{
					Declarations: []declaration.Declaration{
						declaration.IndexedVariable{
							Name:       declaration.NewName("acct"),
							Type:       "Account",
							Visibility: declaration.AlwaysVisible(),
						},
					},
				},
			},
		},
	}
	locals := []declaration.Declaration{shadowed}

	d, ok := Resolve(locals, nil, "acct", 0)
	if !ok {
		t.Fatal("expected Resolve to find the type")
	}
	if _, isClass := d.(declaration.IndexedClass); !isClass {
		t.Fatalf("expected Resolve to prefer the type over the variable, got %T", d)
	}
}

func TestResolveForCompletionShadowsTypeBehindLocalVariable(t *testing.T) {
	shadowed := declaration.IndexedClass{
		Name:       declaration.NewName("acct"),
		Visibility: declaration.AlwaysVisible(),
		Members: []declaration.Declaration{
			declaration.MethodDeclaration{
				Name:       declaration.NewName("run"),
				Visibility: declaration.AlwaysVisible(),
				Body: declaration.Block{
					Declarations: []declaration.Declaration{
						declaration.IndexedVariable{
							Name:       declaration.NewName("acct"),
							Type:       "Account",
							Visibility: declaration.AlwaysVisible(),
						},
					},
				},
			},
		},
	}
	locals := []declaration.Declaration{shadowed}

	d, ok := ResolveForCompletion(locals, nil, "acct", 0)
	if !ok {
		t.Fatal("expected ResolveForCompletion to find the variable")
	}
	v, isVar := d.(declaration.IndexedVariable)
	if !isVar || v.Type != "Account" {
		t.Fatalf("expected ResolveForCompletion to prefer the local variable over the type, got %#v", d)
	}
}

func TestResolveForCompletionFallsBackToTypeWhenNoLocalShadows(t *testing.T) {
	cls := sampleClass()
	locals := []declaration.Declaration{cls}
	d, ok := ResolveForCompletion(locals, nil, "AccountHelper", 0)
	if !ok {
		t.Fatal("expected to resolve the top-level class")
	}
	if _, isClass := d.(declaration.IndexedClass); !isClass {
		t.Fatalf("expected IndexedClass, got %T", d)
	}
}
