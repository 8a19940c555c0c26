package apexmirror

// Grammar node-type names tree-sitter-apex is expected to expose. Apex's
// surface syntax is Java-derived, and no apex grammar ships in the example
// pack this server was grounded on, so these names mirror the well-known
// tree-sitter-java node shapes (class_declaration/method_declaration/
// field_declaration/...) plus the Apex-only `property_declaration`
// addition. If the loaded grammar names its nodes
// differently, only this file needs to change.
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
	nodeBlock                = "block"
	nodeAccessorBody         = "accessor_body"
	nodeIdentifier           = "identifier"
	nodeTypeIdentifier       = "type_identifier"
	nodeGenericType          = "generic_type"
	nodeVoidType             = "void_type"

	fieldName       = "name"
	fieldType       = "type"
	fieldBody       = "body"
	fieldSuperclass = "superclass"
	fieldInterfaces = "interfaces"
	fieldReturnType = "type"
	fieldParameters = "parameters"
	fieldDeclarator = "declarator"
)

var (
	staticModifier   = "static"
	getKeyword       = "get"
	setKeyword       = "set"
	visibilityTokens = map[string]Visibility{
		"public":    VisibilityPublic,
		"private":   VisibilityPrivate,
		"protected": VisibilityProtected,
		"global":    VisibilityGlobal,
	}
)
