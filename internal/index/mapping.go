package index

import (
	"github.com/apexlang/apex-lsp/internal/apexmirror"
	"github.com/apexlang/apex-lsp/internal/declaration"
	"github.com/apexlang/apex-lsp/internal/indexer"
)

// memberVisibility derives a cross-file visibility rule from a raw Apex
// modifier: members read from the workspace index are AlwaysVisible iff
// declared public or global, and NeverVisible otherwise, since anything
// less visible can never be completed or hovered from another file
// (spec.md §3, §4.6).
func memberVisibility(v apexmirror.Visibility) declaration.Visibility {
	switch v {
	case apexmirror.VisibilityPublic, apexmirror.VisibilityGlobal:
		return declaration.AlwaysVisible()
	default:
		return declaration.NeverVisible()
	}
}

func mapTypeMirror(t apexmirror.TypeMirror) (declaration.Declaration, bool) {
	switch t.Kind {
	case apexmirror.KindClass:
		if t.Class == nil {
			return nil, false
		}
		return mapClass(t.Class), true
	case apexmirror.KindInterface:
		if t.Interface == nil {
			return nil, false
		}
		return mapInterface(t.Interface), true
	case apexmirror.KindEnum:
		if t.Enum == nil {
			return nil, false
		}
		return mapEnum(t.Enum), true
	}
	return nil, false
}

func mapClass(c *apexmirror.Class) declaration.IndexedClass {
	out := declaration.IndexedClass{
		Name:       declaration.NewName(c.Name),
		Visibility: memberVisibility(c.Visibility),
		SuperClass: c.SuperClass,
	}
	for _, m := range c.Members {
		if decl, ok := mapMember(m); ok {
			out.Members = append(out.Members, decl)
		}
	}
	return out
}

func mapInterface(i *apexmirror.Interface) declaration.IndexedInterface {
	out := declaration.IndexedInterface{
		Name:           declaration.NewName(i.Name),
		Visibility:     memberVisibility(i.Visibility),
		SuperInterface: i.SuperInterface,
	}
	for _, m := range i.Methods {
		// Interface methods are always AlwaysVisible regardless of the
		// (implicit, usually absent) modifier written in source (spec.md §3).
		out.Methods = append(out.Methods, declaration.MethodDeclaration{
			Name:       declaration.NewName(m.Name),
			Static:     m.Static,
			ReturnType: m.ReturnType,
			Parameters: mapParameters(m.Parameters),
			Visibility: declaration.AlwaysVisible(),
			Range:      mapRange(m.Range),
		})
	}
	return out
}

func mapEnum(e *apexmirror.Enum) declaration.IndexedEnum {
	out := declaration.IndexedEnum{
		Name:       declaration.NewName(e.Name),
		Visibility: memberVisibility(e.Visibility),
	}
	for _, v := range e.Values {
		out.Values = append(out.Values, declaration.EnumValue{Name: declaration.NewName(v.Name)})
	}
	return out
}

func mapMember(m apexmirror.Member) (declaration.Declaration, bool) {
	switch m.Kind {
	case apexmirror.MemberClass:
		if m.Class == nil {
			return nil, false
		}
		c := mapClass(m.Class)
		return c, true
	case apexmirror.MemberInterface:
		if m.Interface == nil {
			return nil, false
		}
		return mapInterface(m.Interface), true
	case apexmirror.MemberEnum:
		if m.Enum == nil {
			return nil, false
		}
		return mapEnum(m.Enum), true
	case apexmirror.MemberField:
		if m.Field == nil {
			return nil, false
		}
		return declaration.FieldMember{
			Name:       declaration.NewName(m.Field.Name),
			Static:     m.Field.Static,
			Type:       m.Field.Type,
			Visibility: memberVisibility(m.Field.Visibility),
		}, true
	case apexmirror.MemberProperty:
		if m.Property == nil {
			return nil, false
		}
		return declaration.PropertyDeclaration{
			Name:       declaration.NewName(m.Property.Name),
			Static:     m.Property.Static,
			Type:       m.Property.Type,
			Visibility: memberVisibility(m.Property.Visibility),
		}, true
	case apexmirror.MemberMethod:
		if m.Method == nil {
			return nil, false
		}
		return declaration.MethodDeclaration{
			Name:       declaration.NewName(m.Method.Name),
			Static:     m.Method.Static,
			ReturnType: m.Method.ReturnType,
			Parameters: mapParameters(m.Method.Parameters),
			Visibility: memberVisibility(m.Method.Visibility),
			Range:      mapRange(m.Method.Range),
		}, true
	case apexmirror.MemberConstructor:
		// Constructors are retained as members, but carry no name, so a
		// name lookup never returns one.
		return declaration.ConstructorDeclaration{}, true
	}
	return nil, false
}

func mapParameters(params []apexmirror.Parameter) []declaration.Parameter {
	if len(params) == 0 {
		return nil
	}
	out := make([]declaration.Parameter, len(params))
	for i, p := range params {
		out[i] = declaration.Parameter{Type: p.Type, Name: p.Name}
	}
	return out
}

func mapRange(r *apexmirror.Range) *declaration.ByteRange {
	if r == nil {
		return nil
	}
	return &declaration.ByteRange{Begin: r.Begin, End: r.End}
}

func mapSObject(record indexer.SObjectRecord) declaration.IndexedSObject {
	out := declaration.IndexedSObject{Name: declaration.NewName(record.ObjectAPIName)}
	for _, f := range record.ObjectMetadata.Fields {
		out.Fields = append(out.Fields, declaration.SObjectField{
			Name: declaration.NewName(f.APIName),
			Type: f.Type,
		})
	}
	return out
}
