package completion

import (
	"testing"

	"github.com/apexlang/apex-lsp/internal/declaration"
)

func TestOffsetFromPositionBasic(t *testing.T) {
	text := "line one\nline two\nline three"
	// "line one\n" is 9 bytes; offset at line 1, char 5 -> 9 + 5 = 14
	if got := OffsetFromPosition(text, 1, 5); got != 14 {
		t.Fatalf("got %d, want 14", got)
	}
}

func TestOffsetFromPositionClampsPastLineEnd(t *testing.T) {
	text := "abc\ndef"
	if got := OffsetFromPosition(text, 0, 100); got != 3 {
		t.Fatalf("got %d, want 3 (clamped to line length)", got)
	}
}

func TestOffsetFromPositionPastLastLine(t *testing.T) {
	text := "abc\ndef"
	if got := OffsetFromPosition(text, 5, 0); got != len(text) {
		t.Fatalf("got %d, want %d", got, len(text))
	}
}

func TestClassifyContextBarePrefix(t *testing.T) {
	src := []byte("Integer cou")
	ctx := ClassifyContext(src, len(src))
	if ctx.Prefix != "cou" || ctx.ReceiverRaw != "" {
		t.Fatalf("got %#v", ctx)
	}
}

func TestClassifyContextMemberAccess(t *testing.T) {
	src := []byte("account.Na")
	ctx := ClassifyContext(src, len(src))
	if ctx.Prefix != "Na" || ctx.ReceiverRaw != "account" {
		t.Fatalf("got %#v", ctx)
	}
}

func TestClassifyContextDeeperChainFallsBackToBarePrefix(t *testing.T) {
	src := []byte("a.b.Na")
	ctx := ClassifyContext(src, len(src))
	if ctx.Prefix != "Na" || ctx.ReceiverRaw != "" {
		t.Fatalf("expected chained access to degrade to bare prefix, got %#v", ctx)
	}
}

func TestCompleteFiltersByPrefixCaseInsensitively(t *testing.T) {
	candidates := []declaration.Declaration{
		declaration.FieldMember{Name: declaration.NewName("accountName"), Visibility: declaration.AlwaysVisible()},
		declaration.FieldMember{Name: declaration.NewName("Balance"), Visibility: declaration.AlwaysVisible()},
	}
	result := Complete(candidates, Context{Prefix: "acc"}, 0)
	if len(result.Items) != 1 || result.Items[0].Label != "accountName" {
		t.Fatalf("got %#v", result.Items)
	}
}

func TestCompleteExcludesInvisibleDeclarations(t *testing.T) {
	candidates := []declaration.Declaration{
		declaration.FieldMember{Name: declaration.NewName("secret"), Visibility: declaration.NeverVisible()},
	}
	result := Complete(candidates, Context{}, 0)
	if len(result.Items) != 0 {
		t.Fatalf("expected no items, got %#v", result.Items)
	}
}

func TestCompleteCapsAtMaxItemsAndMarksIncomplete(t *testing.T) {
	var candidates []declaration.Declaration
	for i := 0; i < MaxItems+5; i++ {
		candidates = append(candidates, declaration.FieldMember{
			Name:       declaration.NewName("field" + string(rune('A'+i))),
			Visibility: declaration.AlwaysVisible(),
		})
	}
	result := Complete(candidates, Context{}, 0)
	if len(result.Items) != MaxItems {
		t.Fatalf("got %d items, want %d", len(result.Items), MaxItems)
	}
	if !result.IsIncomplete {
		t.Fatal("expected IsIncomplete to be true when the match count exceeds the cap")
	}
}

func TestCompleteRanksTypesBeforeVariablesBeforeMethodsBeforeEnumValues(t *testing.T) {
	candidates := []declaration.Declaration{
		declaration.MethodDeclaration{Name: declaration.NewName("mMethod"), Visibility: declaration.AlwaysVisible()},
		declaration.EnumValue{Name: declaration.NewName("mEnum")},
		declaration.IndexedClass{Name: declaration.NewName("mType"), Visibility: declaration.AlwaysVisible()},
		declaration.FieldMember{Name: declaration.NewName("mVar"), Visibility: declaration.AlwaysVisible()},
	}
	result := Complete(candidates, Context{Prefix: "m"}, 0)
	if len(result.Items) != 4 {
		t.Fatalf("got %d items", len(result.Items))
	}
	want := []string{"mType", "mVar", "mMethod", "mEnum"}
	for i, w := range want {
		if result.Items[i].Label != w {
			t.Fatalf("item %d: got %q, want %q (full: %#v)", i, result.Items[i].Label, w, result.Items)
		}
	}
}

func TestMemberCandidatesForEnum(t *testing.T) {
	enum := declaration.IndexedEnum{
		Name: declaration.NewName("Status"),
		Values: []declaration.EnumValue{
			{Name: declaration.NewName("Active")},
			{Name: declaration.NewName("Inactive")},
		},
	}
	out := MemberCandidates(enum, nil)
	if len(out) != 2 {
		t.Fatalf("got %d candidates", len(out))
	}
	if _, ok := out[0].(declaration.EnumValue); !ok {
		t.Fatalf("expected EnumValue, got %T", out[0])
	}
}

func TestMemberCandidatesForSObjectField(t *testing.T) {
	obj := declaration.IndexedSObject{
		Name: declaration.NewName("Account"),
		Fields: []declaration.SObjectField{
			{Name: declaration.NewName("Name"), Type: "String"},
		},
	}
	out := MemberCandidates(obj, nil)
	if len(out) != 1 {
		t.Fatalf("got %d candidates", len(out))
	}
	v, ok := out[0].(declaration.IndexedVariable)
	if !ok || v.Type != "String" {
		t.Fatalf("got %#v", out[0])
	}
}

func TestMemberCandidatesForVariableResolvesDeclaredType(t *testing.T) {
	account := declaration.IndexedClass{
		Name:       declaration.NewName("Account"),
		Visibility: declaration.AlwaysVisible(),
		Members: []declaration.Declaration{
			declaration.FieldMember{Name: declaration.NewName("Name"), Type: "String", Visibility: declaration.AlwaysVisible()},
		},
	}
	resolveType := func(name string) (declaration.Declaration, bool) {
		if declaration.NewName(name).EqualString("Account") {
			return account, true
		}
		return nil, false
	}

	myAccount := declaration.IndexedVariable{
		Name:       declaration.NewName("myAccount"),
		Type:       "Account",
		Visibility: declaration.AlwaysVisible(),
	}

	out := MemberCandidates(myAccount, resolveType)
	if len(out) != 1 {
		t.Fatalf("got %d candidates, want 1 (Account's Name field): %#v", len(out), out)
	}
	field, ok := out[0].(declaration.FieldMember)
	if !ok || field.Name.String() != "Name" {
		t.Fatalf("got %#v", out[0])
	}
}

func TestMemberCandidatesForVariableWithUnresolvableTypeReturnsNil(t *testing.T) {
	v := declaration.IndexedVariable{Name: declaration.NewName("x"), Type: "Unknown", Visibility: declaration.AlwaysVisible()}
	if out := MemberCandidates(v, func(string) (declaration.Declaration, bool) { return nil, false }); out != nil {
		t.Fatalf("expected nil candidates for an unresolvable type, got %#v", out)
	}
	if out := MemberCandidates(v, nil); out != nil {
		t.Fatalf("expected nil candidates with a nil resolveType, got %#v", out)
	}
}
