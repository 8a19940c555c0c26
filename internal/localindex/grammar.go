package localindex

// Node-type names, following the same Java-grammar-shaped assumption as
// internal/apexmirror/grammar.go — the local indexer walks further into
// method/constructor/accessor bodies than the workspace mirror does, so it
// needs its own, larger set of node names. Only this file changes if the
// loaded grammar names these differently.
const (
	nodeClassDeclaration     = "class_declaration"
	nodeInterfaceDeclaration = "interface_declaration"
	nodeEnumDeclaration      = "enum_declaration"
	nodeFieldDeclaration     = "field_declaration"
	nodePropertyDeclaration  = "property_declaration"
	nodeMethodDeclaration    = "method_declaration"
	nodeConstructorDecl      = "constructor_declaration"
	nodeModifiers            = "modifiers"
	nodeFormalParameters     = "formal_parameters"
	nodeFormalParameter      = "formal_parameter"
	nodeVariableDeclarator   = "variable_declarator"
	nodeEnumBody             = "enum_body"
	nodeEnumConstant         = "enum_constant"
	nodeClassBody            = "class_body"
	nodeInterfaceBody        = "interface_body"
	nodeIdentifier           = "identifier"
	nodeTypeIdentifier       = "type_identifier"
	nodeVoidType             = "void_type"

	nodeBlock          = "block"
	nodeLocalVarDecl   = "local_variable_declaration"
	nodeForStatement   = "for_statement"
	nodeEnhancedFor    = "enhanced_for_statement"
	nodeWhileStatement = "while_statement"
)

var typeLikeNodes = map[string]bool{
	nodeTypeIdentifier:       true,
	"generic_type":           true,
	nodeVoidType:             true,
	"integral_type":          true,
	"floating_point_type":    true,
	"boolean_type":           true,
	"array_type":             true,
	"scoped_type_identifier": true,
}

func isTypeLike(t string) bool { return typeLikeNodes[t] }

var visibilityTokens = map[string]bool{
	"public": true, "private": true, "protected": true, "global": true,
}

const staticModifier = "static"
