// Package resolver implements hover symbol resolution (spec.md §4.9):
// given a cursor byte offset, extract the identifier at that position and
// search, in a fixed order, for the declaration it names.
package resolver

import (
	"github.com/apexlang/apex-lsp/internal/declaration"
)

func isIdentifierByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// IdentifierAt expands left and right from offset across identifier-class
// bytes and returns the enclosing word. If offset sits on a non-identifier
// byte, the position one byte to the left is tried instead — so a cursor
// placed immediately after a symbol still resolves it (spec.md §4.9).
func IdentifierAt(source []byte, offset int) (text string, begin, end int, ok bool) {
	if offset < 0 || offset > len(source) {
		return "", 0, 0, false
	}
	probe := offset
	if probe >= len(source) || !isIdentifierByte(source[probe]) {
		probe--
	}
	if probe < 0 || probe >= len(source) || !isIdentifierByte(source[probe]) {
		return "", 0, 0, false
	}

	begin, end = probe, probe+1
	for begin > 0 && isIdentifierByte(source[begin-1]) {
		begin--
	}
	for end < len(source) && isIdentifierByte(source[end]) {
		end++
	}
	return string(source[begin:end]), begin, end, true
}

// Resolve searches, in spec.md §4.9's fixed order, for the declaration
// named by identifier that is visible at offset:
//  1. top-level types (classes, enums, interfaces) in the local file, then
//     the workspace index, then SObjects
//  2. enum values of any locally-declared enum
//  3. class members, depth-first, in declaration order — the first name
//     match wins; constructors carry no name and are never matched
//  4. interface methods
//  5. local variables and parameters visible at offset
func Resolve(locals []declaration.Declaration, indexed func(name string) (declaration.Declaration, bool), identifier string, offset int) (declaration.Declaration, bool) {
	for _, d := range locals {
		if top, ok := matchTopLevel(d, identifier); ok {
			return top, true
		}
	}
	if indexed != nil {
		if d, ok := indexed(identifier); ok {
			return d, true
		}
	}

	for _, d := range locals {
		if d, ok := matchEnumValue(d, identifier); ok {
			return d, true
		}
	}

	for _, d := range locals {
		if member, ok := matchMember(d, identifier); ok {
			return member, true
		}
	}

	for _, d := range locals {
		if m, ok := matchInterfaceMethod(d, identifier); ok {
			return m, true
		}
	}

	if v, ok := matchVisibleVariable(locals, identifier, offset); ok {
		return v, true
	}

	return nil, false
}

// ResolveForCompletion searches for identifier's declaration using
// completion's receiver-resolution order. This is the *inverse* of Resolve's
// shadowing rule: local variables and parameters shadow top-level types,
// because completion resolves the reference context rather than a qualified
// name (spec.md §4.9's note, §4.10 step 2). Collapsing this into Resolve
// would make `myAccount.` resolve `myAccount` against a same-named type
// before ever considering the local variable.
func ResolveForCompletion(locals []declaration.Declaration, indexed func(name string) (declaration.Declaration, bool), identifier string, offset int) (declaration.Declaration, bool) {
	if v, ok := matchVisibleVariable(locals, identifier, offset); ok {
		return v, true
	}

	for _, d := range locals {
		if top, ok := matchTopLevel(d, identifier); ok {
			return top, true
		}
	}
	if indexed != nil {
		if d, ok := indexed(identifier); ok {
			return d, true
		}
	}

	for _, d := range locals {
		if d, ok := matchEnumValue(d, identifier); ok {
			return d, true
		}
	}

	for _, d := range locals {
		if member, ok := matchMember(d, identifier); ok {
			return member, true
		}
	}

	for _, d := range locals {
		if m, ok := matchInterfaceMethod(d, identifier); ok {
			return m, true
		}
	}

	return nil, false
}

func matchTopLevel(d declaration.Declaration, name string) (declaration.Declaration, bool) {
	if d.DeclName().EqualString(name) {
		switch d.(type) {
		case declaration.IndexedClass, declaration.IndexedEnum, declaration.IndexedInterface, declaration.IndexedSObject:
			return d, true
		}
	}
	return nil, false
}

func matchEnumValue(d declaration.Declaration, name string) (declaration.Declaration, bool) {
	e, ok := d.(declaration.IndexedEnum)
	if !ok {
		return nil, false
	}
	for _, v := range e.Values {
		if v.Name.EqualString(name) {
			return v, true
		}
	}
	return nil, false
}

// matchMember walks a class's members depth-first in declaration order,
// returning the first member whose name equals name. Constructors are
// skipped: they carry no name (spec.md §4.9) and so can never be the
// result of a name-based lookup.
func matchMember(d declaration.Declaration, name string) (declaration.Declaration, bool) {
	cls, isClass := d.(declaration.IndexedClass)
	if !isClass {
		return nil, false
	}
	for _, m := range cls.Members {
		switch mm := m.(type) {
		case declaration.MethodDeclaration:
			if mm.Name.EqualString(name) {
				return mm, true
			}
		case declaration.FieldMember:
			if mm.Name.EqualString(name) {
				return mm, true
			}
		case declaration.PropertyDeclaration:
			if mm.Name.EqualString(name) {
				return mm, true
			}
		case declaration.IndexedClass:
			if mm.Name.EqualString(name) {
				return mm, true
			}
			if nested, ok := matchMember(mm, name); ok {
				return nested, true
			}
		case declaration.IndexedEnum:
			if mm.Name.EqualString(name) {
				return mm, true
			}
		case declaration.IndexedInterface:
			if mm.Name.EqualString(name) {
				return mm, true
			}
		}
	}
	return nil, false
}

func matchInterfaceMethod(d declaration.Declaration, name string) (declaration.Declaration, bool) {
	iface, ok := d.(declaration.IndexedInterface)
	if !ok {
		return nil, false
	}
	for _, m := range iface.Methods {
		method, isMethod := m.(declaration.MethodDeclaration)
		if isMethod && method.Name.EqualString(name) {
			return method, true
		}
	}
	return nil, false
}

// matchVisibleVariable searches local variables and parameters across
// every top-level declaration's method/constructor bodies for one named
// identifier whose Visibility admits offset.
func matchVisibleVariable(locals []declaration.Declaration, name string, offset int) (declaration.Declaration, bool) {
	for _, d := range locals {
		if v, ok := searchBlocks(d, name, offset); ok {
			return v, true
		}
	}
	return nil, false
}

func searchBlocks(d declaration.Declaration, name string, offset int) (declaration.Declaration, bool) {
	cls, ok := d.(declaration.IndexedClass)
	if !ok {
		return nil, false
	}
	for _, m := range cls.Members {
		switch mm := m.(type) {
		case declaration.MethodDeclaration:
			if v, ok := searchBlock(mm.Body, name, offset); ok {
				return v, true
			}
		case declaration.ConstructorDeclaration:
			if v, ok := searchBlock(mm.Body, name, offset); ok {
				return v, true
			}
		case declaration.PropertyDeclaration:
			if mm.Getter != nil {
				if v, ok := searchBlock(*mm.Getter, name, offset); ok {
					return v, true
				}
			}
			if mm.Setter != nil {
				if v, ok := searchBlock(*mm.Setter, name, offset); ok {
					return v, true
				}
			}
		case declaration.IndexedClass:
			if v, ok := searchBlocks(mm, name, offset); ok {
				return v, true
			}
		}
	}
	return nil, false
}

func searchBlock(b declaration.Block, name string, offset int) (declaration.Declaration, bool) {
	for _, d := range b.Declarations {
		v, isVar := d.(declaration.IndexedVariable)
		if isVar && v.Name.EqualString(name) && v.Visibility.Admits(offset) {
			return v, true
		}
	}
	return nil, false
}
