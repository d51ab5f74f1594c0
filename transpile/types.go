package transpile

import (
	"lead/ast"
	"lead/cnode"
)

// lowerType implements the spec's type-mapping table from Lead DataType to
// C type. String has no C representation and is rejected by the caller
// before lowerType is ever reached for it.
func lowerType(t ast.DataType) cnode.CType {
	switch t.Kind {
	case ast.ComptimeNumber, ast.I32, ast.Bool, ast.ComptimeBool:
		return cnode.CType{Base: "int"}
	case ast.ComptimeString:
		return cnode.CType{Base: "char", ConstPtr: true}
	case ast.ComptimeChar, ast.Char:
		return cnode.CType{Base: "char"}
	case ast.U8:
		return cnode.CType{Base: "unsigned byte"}
	case ast.U16:
		return cnode.CType{Base: "unsigned short"}
	case ast.U32:
		return cnode.CType{Base: "unsigned int"}
	case ast.U64:
		return cnode.CType{Base: "unsigned long"}
	case ast.I8:
		return cnode.CType{Base: "byte"}
	case ast.I16:
		return cnode.CType{Base: "short"}
	case ast.I64:
		return cnode.CType{Base: "long"}
	case ast.Void:
		return cnode.CType{Base: "void"}
	case ast.Ref:
		inner := lowerType(*t.Inner)
		return cnode.CType{Base: inner.String(), Pointer: true}
	case ast.ConstRef:
		inner := lowerType(*t.Inner)
		return cnode.CType{Base: inner.String(), ConstPtr: true}
	default:
		return cnode.CType{Base: "void"}
	}
}

// isUnsupported reports whether t (or a type it nests) has no C lowering.
// Only DataType::String is unsupported per the spec's design note; it is
// checked recursively so a Ref(String) is also rejected rather than
// silently producing a bogus "str*" spelling.
func isUnsupported(t ast.DataType) bool {
	if t.Kind == ast.String {
		return true
	}
	if (t.Kind == ast.Ref || t.Kind == ast.ConstRef) && t.Inner != nil {
		return isUnsupported(*t.Inner)
	}
	return false
}
