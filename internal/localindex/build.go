// Package localindex performs the on-the-fly syntactic analysis of the
// single open document spec.md §4.8 describes: unlike the workspace index,
// it exposes every member regardless of modifier (it's the file you're
// editing) and tracks local variables with byte-range scoping, recomputed
// from scratch on every content change.
package localindex

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/apexlang/apex-lsp/internal/declaration"
)

// Build walks tree's root and returns the file's top-level declarations.
func Build(tree *sitter.Tree, source []byte) []declaration.Declaration {
	if tree == nil {
		return nil
	}
	var out []declaration.Declaration
	for _, c := range children(tree.RootNode()) {
		if decl, ok := buildTopLevel(c, source); ok {
			out = append(out, decl)
		}
	}
	return out
}

func buildTopLevel(node *sitter.Node, source []byte) (declaration.Declaration, bool) {
	switch node.Type() {
	case nodeClassDeclaration:
		return buildClass(node, source), true
	case nodeInterfaceDeclaration:
		return buildInterface(node, source), true
	case nodeEnumDeclaration:
		return buildEnum(node, source), true
	}
	return nil, false
}

// --- tree helpers ----------------------------------------------------------

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

// --- class / interface / enum ----------------------------------------------

func buildClass(node *sitter.Node, source []byte) declaration.IndexedClass {
	cls := declaration.IndexedClass{Visibility: declaration.AlwaysVisible()}
	var sawExtends bool
	for _, c := range children(node) {
		switch c.Type() {
		case nodeIdentifier:
			if cls.Name.String() == "" {
				cls.Name = declaration.NewName(textOf(c, source))
			}
		case "extends":
			sawExtends = true
		case nodeTypeIdentifier, "generic_type":
			if sawExtends && cls.SuperClass == "" {
				cls.SuperClass = textOf(c, source)
			}
		case nodeClassBody:
			cls.Members = buildClassBody(c, source)
		}
	}
	return cls
}

func buildInterface(node *sitter.Node, source []byte) declaration.IndexedInterface {
	iface := declaration.IndexedInterface{Visibility: declaration.AlwaysVisible()}
	var sawExtends bool
	for _, c := range children(node) {
		switch c.Type() {
		case nodeIdentifier:
			if iface.Name.String() == "" {
				iface.Name = declaration.NewName(textOf(c, source))
			}
		case "extends":
			sawExtends = true
		case nodeTypeIdentifier, "generic_type":
			if sawExtends && iface.SuperInterface == "" {
				iface.SuperInterface = textOf(c, source)
			}
		case nodeInterfaceBody:
			for _, m := range children(c) {
				if m.Type() == nodeMethodDeclaration {
					iface.Methods = append(iface.Methods, buildMethodHeader(m, source, declaration.AlwaysVisible()))
				}
			}
		}
	}
	return iface
}

func buildEnum(node *sitter.Node, source []byte) declaration.IndexedEnum {
	e := declaration.IndexedEnum{Visibility: declaration.AlwaysVisible()}
	for _, c := range children(node) {
		switch c.Type() {
		case nodeIdentifier:
			if e.Name.String() == "" {
				e.Name = declaration.NewName(textOf(c, source))
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
				e.Values = append(e.Values, declaration.EnumValue{Name: declaration.NewName(textOf(name, source))})
			}
		}
	}
	return e
}

func buildClassBody(node *sitter.Node, source []byte) []declaration.Declaration {
	var members []declaration.Declaration
	for _, c := range children(node) {
		switch c.Type() {
		case nodeClassDeclaration:
			members = append(members, buildClass(c, source))
		case nodeInterfaceDeclaration:
			members = append(members, buildInterface(c, source))
		case nodeEnumDeclaration:
			members = append(members, buildEnum(c, source))
		case nodeFieldDeclaration:
			members = append(members, buildFields(c, source)...)
		case nodePropertyDeclaration:
			members = append(members, buildProperty(c, source))
		case nodeMethodDeclaration:
			members = append(members, buildMethod(c, source))
		case nodeConstructorDecl:
			members = append(members, buildConstructor(c, source))
		}
	}
	return members
}

func buildFields(node *sitter.Node, source []byte) []declaration.Declaration {
	var static bool
	var typeText string
	var out []declaration.Declaration
	for _, c := range children(node) {
		switch {
		case c.Type() == nodeModifiers:
			static = hasStatic(c, source)
		case isTypeLike(c.Type()) && typeText == "":
			typeText = textOf(c, source)
		case c.Type() == nodeVariableDeclarator:
			name := declaratorName(c, source)
			out = append(out, declaration.FieldMember{
				Name: declaration.NewName(name), Static: static, Type: typeText,
				Visibility: declaration.AlwaysVisible(),
			})
		}
	}
	return out
}

func declaratorName(node *sitter.Node, source []byte) string {
	for _, c := range children(node) {
		if c.Type() == nodeIdentifier {
			return textOf(c, source)
		}
	}
	return textOf(node, source)
}

func hasStatic(node *sitter.Node, source []byte) bool {
	for _, c := range children(node) {
		if textOf(c, source) == staticModifier {
			return true
		}
	}
	return false
}

var (
	propertyGetRe = regexp.MustCompile(`\bget\b`)
	propertySetRe = regexp.MustCompile(`\bset\b`)
)

// buildProperty discriminates a property's accessor blocks by regexing each
// block's own text for the `get`/`set` keyword, the same heuristic
// apexmirror's parseProperty uses: a block belongs to whichever accessor
// keyword appears in it, not to positional order, since a setter-only
// property still puts its lone block first.
func buildProperty(node *sitter.Node, source []byte) declaration.PropertyDeclaration {
	p := declaration.PropertyDeclaration{Visibility: declaration.AlwaysVisible()}
	var typeText string
	for _, c := range children(node) {
		switch {
		case c.Type() == nodeModifiers:
			p.Static = hasStatic(c, source)
		case isTypeLike(c.Type()) && typeText == "":
			typeText = textOf(c, source)
		case c.Type() == nodeIdentifier && p.Name.String() == "":
			p.Name = declaration.NewName(textOf(c, source))
		case c.Type() == nodeBlock:
			text := textOf(c, source)
			body := buildBlock(c, source)
			switch {
			case propertySetRe.MatchString(text) && !propertyGetRe.MatchString(text):
				p.Setter = &body
			case p.Getter == nil:
				p.Getter = &body
			default:
				p.Setter = &body
			}
		}
	}
	p.Type = typeText
	return p
}

func buildMethodHeader(node *sitter.Node, source []byte, vis declaration.Visibility) declaration.MethodDeclaration {
	m := declaration.MethodDeclaration{Visibility: vis}
	var sawReturnType bool
	for _, c := range children(node) {
		switch {
		case c.Type() == nodeModifiers:
			m.Static = hasStatic(c, source)
		case isTypeLike(c.Type()) && !sawReturnType:
			if c.Type() != nodeVoidType {
				m.ReturnType = textOf(c, source)
			}
			sawReturnType = true
		case c.Type() == nodeIdentifier && m.Name.String() == "":
			m.Name = declaration.NewName(textOf(c, source))
		case c.Type() == nodeFormalParameters:
			m.Parameters = parametersOf(c, source)
		}
	}
	return m
}

func buildMethod(node *sitter.Node, source []byte) declaration.MethodDeclaration {
	m := buildMethodHeader(node, source, declaration.AlwaysVisible())
	m.Range = &declaration.ByteRange{Begin: int(node.StartByte()), End: int(node.EndByte())}
	var bodyNode *sitter.Node
	var paramsNode *sitter.Node
	for _, c := range children(node) {
		switch c.Type() {
		case nodeBlock:
			bodyNode = c
		case nodeFormalParameters:
			paramsNode = c
		}
	}
	if bodyNode != nil {
		m.Body = buildBlock(bodyNode, source)
		if paramsNode != nil {
			m.Body.Declarations = append(parameterDeclarations(paramsNode, source, int(bodyNode.EndByte())), m.Body.Declarations...)
		}
	}
	return m
}

func buildConstructor(node *sitter.Node, source []byte) declaration.ConstructorDeclaration {
	ctor := declaration.ConstructorDeclaration{}
	var bodyNode, paramsNode *sitter.Node
	for _, c := range children(node) {
		switch c.Type() {
		case nodeBlock:
			bodyNode = c
		case nodeFormalParameters:
			paramsNode = c
		}
	}
	if bodyNode != nil {
		ctor.Body = buildBlock(bodyNode, source)
		if paramsNode != nil {
			ctor.Body.Declarations = append(parameterDeclarations(paramsNode, source, int(bodyNode.EndByte())), ctor.Body.Declarations...)
		}
	}
	return ctor
}

func parametersOf(node *sitter.Node, source []byte) []declaration.Parameter {
	var params []declaration.Parameter
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
		params = append(params, declaration.Parameter{Type: typeText, Name: name})
	}
	return params
}

// parameterDeclarations turns a method/constructor's formal parameters into
// IndexedVariable declarations scoped to the body's byte range: a parameter
// is visible for the entirety of the body it belongs to (spec.md §4.8).
func parameterDeclarations(node *sitter.Node, source []byte, bodyEnd int) []declaration.Declaration {
	var out []declaration.Declaration
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
		if name == "" {
			continue
		}
		out = append(out, declaration.IndexedVariable{
			Name:       declaration.NewName(name),
			Type:       typeText,
			Range:      declaration.ByteRange{Begin: int(c.StartByte()), End: int(c.EndByte())},
			Visibility: declaration.VisibleBetweenDeclarationAndScopeEnd(int(c.StartByte()), bodyEnd),
		})
	}
	return out
}

// buildBlock walks a `{ ... }` body, emitting one IndexedVariable per local
// declared within it (including for/enhanced-for loop variables, scoped to
// the whole loop statement) and recursing into nested blocks.
func buildBlock(node *sitter.Node, source []byte) declaration.Block {
	block := declaration.Block{}
	blockEnd := int(node.EndByte())
	walkStatements(node, source, blockEnd, &block)
	return block
}

func walkStatements(node *sitter.Node, source []byte, enclosingScopeEnd int, out *declaration.Block) {
	for _, c := range children(node) {
		switch c.Type() {
		case nodeLocalVarDecl:
			out.Declarations = append(out.Declarations, localVariablesOf(c, source, enclosingScopeEnd)...)
		case nodeForStatement, nodeEnhancedFor:
			loopEnd := int(c.EndByte())
			out.Declarations = append(out.Declarations, loopVariablesOf(c, source, loopEnd)...)
			walkStatements(c, source, loopEnd, out)
		case nodeBlock:
			nested := buildBlock(c, source)
			out.Declarations = append(out.Declarations, nested.Declarations...)
		case nodeWhileStatement, "if_statement":
			walkStatements(c, source, enclosingScopeEnd, out)
		}
	}
}

func localVariablesOf(node *sitter.Node, source []byte, scopeEnd int) []declaration.Declaration {
	var typeText string
	var out []declaration.Declaration
	for _, c := range children(node) {
		switch {
		case isTypeLike(c.Type()) && typeText == "":
			typeText = textOf(c, source)
		case c.Type() == nodeVariableDeclarator:
			name := declaratorName(c, source)
			if name == "" {
				continue
			}
			out = append(out, declaration.IndexedVariable{
				Name:       declaration.NewName(name),
				Type:       typeText,
				Range:      declaration.ByteRange{Begin: int(c.StartByte()), End: int(c.EndByte())},
				Visibility: declaration.VisibleBetweenDeclarationAndScopeEnd(int(c.EndByte()), scopeEnd),
			})
		}
	}
	return out
}

// loopVariablesOf handles the `for (Integer i = 0; ...)` and
// `for (Account a : accounts)` declarator forms, both of which introduce a
// variable scoped to the entire loop statement, including its body.
func loopVariablesOf(node *sitter.Node, source []byte, scopeEnd int) []declaration.Declaration {
	var typeText string
	var out []declaration.Declaration
	isEnhanced := node.Type() == nodeEnhancedFor
	nameCaptured := false
	for _, c := range children(node) {
		switch {
		case isTypeLike(c.Type()) && typeText == "":
			typeText = textOf(c, source)
		case c.Type() == nodeVariableDeclarator:
			name := declaratorName(c, source)
			if name == "" {
				continue
			}
			out = append(out, declaration.IndexedVariable{
				Name:       declaration.NewName(name),
				Type:       typeText,
				Range:      declaration.ByteRange{Begin: int(c.StartByte()), End: int(c.EndByte())},
				Visibility: declaration.VisibleBetweenDeclarationAndScopeEnd(int(c.EndByte()), scopeEnd),
			})
		case isEnhanced && c.Type() == nodeIdentifier && typeText != "" && !nameCaptured:
			// `for (Account a : accounts)` declares the loop variable as a
			// bare identifier immediately after the type, not a
			// variable_declarator.
			nameCaptured = true
			out = append(out, declaration.IndexedVariable{
				Name:       declaration.NewName(textOf(c, source)),
				Type:       typeText,
				Range:      declaration.ByteRange{Begin: int(c.StartByte()), End: int(c.EndByte())},
				Visibility: declaration.VisibleBetweenDeclarationAndScopeEnd(int(c.EndByte()), scopeEnd),
			})
		}
	}
	return out
}
