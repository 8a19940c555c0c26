package declaration

import "testing"

func TestAlwaysVisibleAdmitsEveryOffset(t *testing.T) {
	v := AlwaysVisible()
	for _, offset := range []int{-1, 0, 1, 1000} {
		if !v.Admits(offset) {
			t.Fatalf("AlwaysVisible should admit %d", offset)
		}
	}
}

func TestNeverVisibleAdmitsNothing(t *testing.T) {
	v := NeverVisible()
	for _, offset := range []int{-1, 0, 1, 1000} {
		if v.Admits(offset) {
			t.Fatalf("NeverVisible should not admit %d", offset)
		}
	}
}

func TestVisibleAfterDeclarationBoundary(t *testing.T) {
	v := VisibleAfterDeclaration(10)
	if v.Admits(9) {
		t.Fatal("should not admit offset before begin")
	}
	if !v.Admits(10) {
		t.Fatal("should admit offset exactly at begin")
	}
	if !v.Admits(11) {
		t.Fatal("should admit offset after begin")
	}
}

func TestVisibleBetweenDeclarationAndScopeEndBoundaries(t *testing.T) {
	v := VisibleBetweenDeclarationAndScopeEnd(10, 20)
	if v.Admits(9) {
		t.Fatal("should not admit offset before begin")
	}
	if !v.Admits(10) {
		t.Fatal("should admit offset exactly at begin")
	}
	if !v.Admits(20) {
		t.Fatal("should admit offset exactly at scopeEnd (inclusive)")
	}
	if v.Admits(21) {
		t.Fatal("should not admit offset after scopeEnd")
	}
}

func TestIsAlwaysVisibleAndIsNeverVisible(t *testing.T) {
	if !AlwaysVisible().IsAlwaysVisible() {
		t.Fatal("expected IsAlwaysVisible true")
	}
	if AlwaysVisible().IsNeverVisible() {
		t.Fatal("expected IsNeverVisible false")
	}
	if !NeverVisible().IsNeverVisible() {
		t.Fatal("expected IsNeverVisible true")
	}
}
