package apexmirror

import (
	"fmt"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
)

// ParseTypeMirror walks the root of a parsed .cls file and derives its
// TypeMirror. Apex source files declare exactly one top-level type.
func ParseTypeMirror(tree *sitter.Tree, source []byte) (TypeMirror, error) {
	if tree == nil {
		return TypeMirror{}, fmt.Errorf("apexmirror: nil parse tree")
	}
	root := tree.RootNode()
	for _, child := range children(root) {
		switch child.Type() {
		case nodeClassDeclaration:
			return TypeMirror{Kind: KindClass, Class: parseClass(child, source)}, nil
		case nodeInterfaceDeclaration:
			return TypeMirror{Kind: KindInterface, Interface: parseInterface(child, source)}, nil
		case nodeEnumDeclaration:
			return TypeMirror{Kind: KindEnum, Enum: parseEnum(child, source)}, nil
		}
	}
	return TypeMirror{}, fmt.Errorf("apexmirror: no top-level type declaration found")
}

// --- generic tree helpers -------------------------------------------------

func children(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	var out []*sitter.Node
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()
	if cursor.GoToFirstChild() {
		for {
			out = append(out, cursor.CurrentNode())
			if !cursor.GoToNextSibling() {
				break
			}
		}
	}
	return out
}

func textOf(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}

func rangeOf(node *sitter.Node) *Range {
	if node == nil {
		return nil
	}
	return &Range{Begin: int(node.StartByte()), End: int(node.EndByte())}
}

var typeLikeNodes = map[string]bool{
	nodeTypeIdentifier: true,
	nodeGenericType:     true,
	nodeVoidType:        true,
	"integral_type":     true,
	"floating_point_type": true,
	"boolean_type":       true,
	"array_type":         true,
	"scoped_type_identifier": true,
}

func isTypeLike(t string) bool { return typeLikeNodes[t] }

// modifiersOf scans a `modifiers` node's children for a visibility keyword
// and a `static` keyword. Apex's default (package-private-like) visibility
// when no keyword is present is the empty Visibility.
func modifiersOf(node *sitter.Node, source []byte) (vis Visibility, static bool) {
	if node == nil {
		return "", false
	}
	for _, c := range children(node) {
		text := textOf(c, source)
		if v, ok := visibilityTokens[text]; ok {
			vis = v
		}
		if text == staticModifier {
			static = true
		}
	}
	return vis, static
}

// --- class / interface / enum --------------------------------------------

func parseClass(node *sitter.Node, source []byte) *Class {
	cls := &Class{}
	kids := children(node)
	var sawExtends bool
	for i, c := range kids {
		switch c.Type() {
		case nodeModifiers:
			cls.Visibility, _ = modifiersOf(c, source)
		case nodeIdentifier:
			if cls.Name == "" {
				cls.Name = textOf(c, source)
			}
		case "extends":
			sawExtends = true
		case nodeTypeIdentifier, nodeGenericType:
			if sawExtends && cls.SuperClass == "" {
				cls.SuperClass = textOf(c, source)
			}
		case nodeClassBody:
			cls.Members = parseClassBody(c, source)
		}
		_ = i
	}
	return cls
}

func parseInterface(node *sitter.Node, source []byte) *Interface {
	iface := &Interface{}
	var sawExtends bool
	for _, c := range children(node) {
		switch c.Type() {
		case nodeModifiers:
			iface.Visibility, _ = modifiersOf(c, source)
		case nodeIdentifier:
			if iface.Name == "" {
				iface.Name = textOf(c, source)
			}
		case "extends":
			sawExtends = true
		case nodeTypeIdentifier, nodeGenericType:
			if sawExtends && iface.SuperInterface == "" {
				iface.SuperInterface = textOf(c, source)
			}
		case nodeInterfaceBody:
			for _, m := range children(c) {
				if m.Type() == nodeMethodDeclaration {
					iface.Methods = append(iface.Methods, *parseMethod(m, source))
				}
			}
		}
	}
	return iface
}

func parseEnum(node *sitter.Node, source []byte) *Enum {
	e := &Enum{}
	for _, c := range children(node) {
		switch c.Type() {
		case nodeModifiers:
			e.Visibility, _ = modifiersOf(c, source)
		case nodeIdentifier:
			if e.Name == "" {
				e.Name = textOf(c, source)
			}
		case nodeEnumBody:
			for _, v := range children(c) {
				if v.Type() != nodeEnumConstant {
					continue
				}
				name := v
				for _, id := range children(v) {
					if id.Type() == nodeIdentifier {
						name = id
						break
					}
				}
				e.Values = append(e.Values, EnumValue{Name: textOf(name, source)})
			}
		}
	}
	return e
}

func parseClassBody(node *sitter.Node, source []byte) []Member {
	var members []Member
	for _, c := range children(node) {
		switch c.Type() {
		case nodeClassDeclaration:
			members = append(members, Member{Kind: MemberClass, Class: parseClass(c, source)})
		case nodeInterfaceDeclaration:
			members = append(members, Member{Kind: MemberInterface, Interface: parseInterface(c, source)})
		case nodeEnumDeclaration:
			members = append(members, Member{Kind: MemberEnum, Enum: parseEnum(c, source)})
		case nodeFieldDeclaration:
			for _, f := range parseFields(c, source) {
				members = append(members, Member{Kind: MemberField, Field: f})
			}
		case nodePropertyDeclaration:
			members = append(members, Member{Kind: MemberProperty, Property: parseProperty(c, source)})
		case nodeMethodDeclaration:
			members = append(members, Member{Kind: MemberMethod, Method: parseMethod(c, source)})
		case nodeConstructorDecl:
			members = append(members, Member{Kind: MemberConstructor, Constructor: &Constructor{Range: rangeOf(c)}})
		}
	}
	return members
}

// parseFields splits a field_declaration into one Field per declarator: Apex
// allows `public Integer a, b;` declaring multiple names under one type and
// one modifier set.
func parseFields(node *sitter.Node, source []byte) []*Field {
	var vis Visibility
	var static bool
	var typeText string
	var fields []*Field
	for _, c := range children(node) {
		switch {
		case c.Type() == nodeModifiers:
			vis, static = modifiersOf(c, source)
		case isTypeLike(c.Type()) && typeText == "":
			typeText = textOf(c, source)
		case c.Type() == nodeVariableDeclarator:
			name := declaratorName(c, source)
			fields = append(fields, &Field{Name: name, Static: static, Type: typeText, Visibility: vis})
		}
	}
	return fields
}

func declaratorName(node *sitter.Node, source []byte) string {
	for _, c := range children(node) {
		if c.Type() == nodeIdentifier {
			return textOf(c, source)
		}
	}
	return textOf(node, source)
}

var getRe = regexp.MustCompile(`\bget\b`)
var setRe = regexp.MustCompile(`\bset\b`)

func parseProperty(node *sitter.Node, source []byte) *Property {
	p := &Property{}
	var typeText string
	var accessorsText string
	for _, c := range children(node) {
		switch {
		case c.Type() == nodeModifiers:
			p.Visibility, p.Static = modifiersOf(c, source)
		case isTypeLike(c.Type()) && typeText == "":
			typeText = textOf(c, source)
		case c.Type() == nodeIdentifier && p.Name == "":
			p.Name = textOf(c, source)
		default:
			accessorsText += textOf(c, source) + " "
		}
	}
	p.Type = typeText
	p.HasGetter = getRe.MatchString(accessorsText)
	p.HasSetter = setRe.MatchString(accessorsText)
	return p
}

func parseMethod(node *sitter.Node, source []byte) *Method {
	m := &Method{Range: rangeOf(node)}
	var sawReturnType bool
	for _, c := range children(node) {
		switch {
		case c.Type() == nodeModifiers:
			m.Visibility, m.Static = modifiersOf(c, source)
		case isTypeLike(c.Type()) && !sawReturnType:
			if c.Type() != nodeVoidType {
				m.ReturnType = textOf(c, source)
			}
			sawReturnType = true
		case c.Type() == nodeIdentifier && m.Name == "":
			m.Name = textOf(c, source)
		case c.Type() == nodeFormalParameters:
			m.Parameters = parseParameters(c, source)
		}
	}
	return m
}

func parseParameters(node *sitter.Node, source []byte) []Parameter {
	var params []Parameter
	for _, c := range children(node) {
		if c.Type() != nodeFormalParameter {
			continue
		}
		var typeText, name string
		for _, pc := range children(c) {
			switch {
			case isTypeLike(pc.Type()) && typeText == "":
				typeText = textOf(pc, source)
			case pc.Type() == nodeIdentifier:
				name = textOf(pc, source)
			}
		}
		params = append(params, Parameter{Type: typeText, Name: name})
	}
	return params
}
