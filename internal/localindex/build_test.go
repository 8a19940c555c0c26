package localindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apexlang/apex-lsp/internal/apexparse"
	"github.com/apexlang/apex-lsp/internal/declaration"
)

// parseForTest mirrors apexmirror's grammar-dependent test helper: the
// tree-sitter Apex grammar is an external shared library, so tests that
// need a real parse tree skip when it isn't available.
func parseForTest(t *testing.T, source string) []declaration.Declaration {
	t.Helper()
	mgr, err := apexparse.NewManager("")
	if err != nil {
		t.Skipf("tree-sitter apex grammar unavailable: %v", err)
	}
	defer mgr.Close()

	tree, err := mgr.Parse(context.Background(), nil, []byte(source))
	require.NoError(t, err)
	defer tree.Close()

	return Build(tree, []byte(source))
}

func TestBuildNilTreeReturnsNil(t *testing.T) {
	require.Nil(t, Build(nil, nil))
}

func TestBuildClassWithFieldAndMethod(t *testing.T) {
	decls := parseForTest(t, `
public class AccountHelper {
    private String name;
    public Integer count() {
        return 1;
    }
}`)
	require.Len(t, decls, 1)
	cls, ok := decls[0].(declaration.IndexedClass)
	require.True(t, ok)
	require.Equal(t, "AccountHelper", cls.Name.String())

	var sawField, sawMethod bool
	for _, m := range cls.Members {
		switch d := m.(type) {
		case declaration.FieldMember:
			sawField = true
			require.Equal(t, "name", d.Name.String())
		case declaration.MethodDeclaration:
			sawMethod = true
			require.Equal(t, "count", d.Name.String())
		}
	}
	require.True(t, sawField)
	require.True(t, sawMethod)
}

func TestBuildPropertyDiscriminatesGetterAndSetter(t *testing.T) {
	decls := parseForTest(t, `
public class Box {
    public Integer Value {
        get { return inner; }
        set { inner = value; }
    }
}`)
	require.Len(t, decls, 1)
	cls := decls[0].(declaration.IndexedClass)
	require.Len(t, cls.Members, 1)

	prop, ok := cls.Members[0].(declaration.PropertyDeclaration)
	require.True(t, ok)
	require.NotNil(t, prop.Getter, "getter block must be captured")
	require.NotNil(t, prop.Setter, "setter block must be captured")
	require.NotSame(t, prop.Getter, prop.Setter)
}

func TestBuildPropertyWithOnlyGetter(t *testing.T) {
	decls := parseForTest(t, `
public class Box {
    public Integer Value {
        get { return inner; }
    }
}`)
	cls := decls[0].(declaration.IndexedClass)
	prop := cls.Members[0].(declaration.PropertyDeclaration)
	require.NotNil(t, prop.Getter)
	require.Nil(t, prop.Setter)
}
