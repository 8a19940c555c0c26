package apexmirror

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apexlang/apex-lsp/internal/apexparse"
)

// parseForTest parses source with the real tree-sitter Apex grammar. The
// grammar is an external shared library (TS_SFAPEX_LIB, see
// apexparse.ResolveLibraryPath); tests that depend on it skip rather than
// fail when it isn't present in the environment running them.
func parseForTest(t *testing.T, source string) (TypeMirror, error) {
	t.Helper()
	mgr, err := apexparse.NewManager("")
	if err != nil {
		t.Skipf("tree-sitter apex grammar unavailable: %v", err)
	}
	defer mgr.Close()

	tree, err := mgr.Parse(context.Background(), nil, []byte(source))
	require.NoError(t, err)
	defer tree.Close()

	return ParseTypeMirror(tree, []byte(source))
}

func TestParseTypeMirrorClassWithFieldAndMethod(t *testing.T) {
	mirror, err := parseForTest(t, `
public class AccountHelper {
    public String name;
    public static Integer count(Account a) {
        return 1;
    }
}`)
	require.NoError(t, err)
	require.Equal(t, KindClass, mirror.Kind)
	require.Equal(t, "AccountHelper", mirror.Class.Name)
	require.Equal(t, VisibilityPublic, mirror.Class.Visibility)

	var sawField, sawMethod bool
	for _, m := range mirror.Class.Members {
		switch m.Kind {
		case MemberField:
			sawField = true
			require.Equal(t, "name", m.Field.Name)
			require.Equal(t, "String", m.Field.Type)
		case MemberMethod:
			sawMethod = true
			require.Equal(t, "count", m.Method.Name)
			require.True(t, m.Method.Static)
			require.Len(t, m.Method.Parameters, 1)
			require.Equal(t, "Account", m.Method.Parameters[0].Type)
		}
	}
	require.True(t, sawField, "expected to find the field member")
	require.True(t, sawMethod, "expected to find the method member")
}

func TestParseTypeMirrorPropertyRecordsGetterAndSetter(t *testing.T) {
	mirror, err := parseForTest(t, `
public class Box {
    public Integer Value {
        get { return 0; }
        set { value = 0; }
    }
}`)
	require.NoError(t, err)
	require.Len(t, mirror.Class.Members, 1)
	prop := mirror.Class.Members[0].Property
	require.NotNil(t, prop)
	require.True(t, prop.HasGetter)
	require.True(t, prop.HasSetter)
}

func TestParseTypeMirrorInterface(t *testing.T) {
	mirror, err := parseForTest(t, `
public interface Greeter {
    String greet(String name);
}`)
	require.NoError(t, err)
	require.Equal(t, KindInterface, mirror.Kind)
	require.Equal(t, "Greeter", mirror.Interface.Name)
	require.Len(t, mirror.Interface.Methods, 1)
	require.Equal(t, "greet", mirror.Interface.Methods[0].Name)
}

func TestParseTypeMirrorEnum(t *testing.T) {
	mirror, err := parseForTest(t, `
public enum Season { WINTER, SPRING, SUMMER, FALL }`)
	require.NoError(t, err)
	require.Equal(t, KindEnum, mirror.Kind)
	require.Equal(t, "Season", mirror.Enum.Name)
	require.Len(t, mirror.Enum.Values, 4)
}

func TestParseTypeMirrorNilTreeFails(t *testing.T) {
	_, err := ParseTypeMirror(nil, nil)
	require.Error(t, err)
}
