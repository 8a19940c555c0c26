// Package hoverfmt renders a resolved declaration.Declaration as LSP hover
// markdown (spec.md §4.11): a fenced ```apex code block, with Method, Field
// and Property members additionally carrying a `// in ParentType` comment
// line.
package hoverfmt

import (
	"fmt"
	"strings"

	"github.com/apexlang/apex-lsp/internal/declaration"
)

// Format renders decl as markdown. parent is the enclosing type's name,
// used for Method/Field/Property's "in ParentType" prefix line and as the
// type name shown before an EnumValue; pass the zero
// Name when decl was resolved without an enclosing type (top-level types,
// local variables).
func Format(decl declaration.Declaration, parent declaration.Name) string {
	switch d := decl.(type) {
	case declaration.IndexedVariable:
		return codeBlock(fmt.Sprintf("%s %s", typeOrVar(d.Type), d.Name.String()))
	case declaration.IndexedClass:
		return codeBlock(fmt.Sprintf("class %s", d.Name.String()))
	case declaration.IndexedEnum:
		return codeBlock(fmt.Sprintf("enum %s", d.Name.String()))
	case declaration.IndexedInterface:
		return codeBlock(fmt.Sprintf("interface %s", d.Name.String()))
	case declaration.IndexedSObject:
		return codeBlock(fmt.Sprintf("sobject %s", d.Name.String()))
	case declaration.EnumValue:
		return codeBlock(fmt.Sprintf("%s %s", parentOrEmpty(parent), d.Name.String()))
	case declaration.MethodDeclaration:
		return withParentComment(formatMethod(d), parent)
	case declaration.FieldMember:
		return withParentComment(formatField(d), parent)
	case declaration.PropertyDeclaration:
		return withParentComment(formatProperty(d), parent)
	}
	return ""
}

func typeOrVar(t string) string {
	if t == "" {
		return "var"
	}
	return t
}

func parentOrEmpty(parent declaration.Name) string {
	if parent.String() == "" {
		return ""
	}
	return parent.String()
}

func formatMethod(m declaration.MethodDeclaration) string {
	ret := m.ReturnType
	if ret == "" {
		ret = "void"
	}
	var params []string
	for _, p := range m.Parameters {
		params = append(params, fmt.Sprintf("%s %s", p.Type, p.Name))
	}
	static := ""
	if m.Static {
		static = "static "
	}
	return fmt.Sprintf("%s%s %s(%s)", static, ret, m.Name.String(), strings.Join(params, ", "))
}

func formatField(f declaration.FieldMember) string {
	static := ""
	if f.Static {
		static = "static "
	}
	return fmt.Sprintf("%s%s %s", static, typeOrVar(f.Type), f.Name.String())
}

func formatProperty(p declaration.PropertyDeclaration) string {
	static := ""
	if p.Static {
		static = "static "
	}
	accessors := accessorSuffix(p)
	return fmt.Sprintf("%s%s %s%s", static, typeOrVar(p.Type), p.Name.String(), accessors)
}

func accessorSuffix(p declaration.PropertyDeclaration) string {
	if p.Getter == nil && p.Setter == nil {
		return ""
	}
	var parts []string
	if p.Getter != nil {
		parts = append(parts, "get")
	}
	if p.Setter != nil {
		parts = append(parts, "set")
	}
	return " { " + strings.Join(parts, "; ") + "; }"
}

func codeBlock(body string) string {
	return "```apex\n" + body + "\n```"
}

func withParentComment(body string, parent declaration.Name) string {
	if parent.String() == "" {
		return codeBlock(body)
	}
	return codeBlock(fmt.Sprintf("// in %s\n%s", parent.String(), body))
}
