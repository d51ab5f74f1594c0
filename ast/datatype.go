// Package ast defines the Lead abstract syntax: node shapes, operators and
// the Lead type system (DataType), together with the operator compatibility
// and type-convertibility rules the analyzer consults.
package ast

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Kind enumerates the Lead type universe.
type Kind int

const (
	ComptimeNumber Kind = iota
	ComptimeString
	ComptimeChar
	ComptimeBool
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	Bool
	String
	Char
	Ref
	ConstRef
	Void
)

var kindNames = map[Kind]string{
	ComptimeNumber: "comptime_number",
	ComptimeString: "comptime_string",
	ComptimeChar:   "comptime_char",
	ComptimeBool:   "comptime_bool",
	U8:             "u8",
	U16:            "u16",
	U32:            "u32",
	U64:            "u64",
	I8:             "i8",
	I16:            "i16",
	I32:            "i32",
	I64:            "i64",
	Bool:           "bool",
	String:         "str",
	Char:           "char",
	Ref:            "ref",
	ConstRef:       "const ref",
	Void:           "void",
}

// DataType is a Lead type. Ref and ConstRef carry an Inner type; every other
// kind ignores it. Equality between DataTypes never considers source spans
// (spec invariant: "Equality ignores spans").
type DataType struct {
	Kind  Kind
	Inner *DataType
}

// Simple constructs a DataType with no inner type.
func Simple(k Kind) DataType {
	return DataType{Kind: k}
}

// MakeRef builds a Ref(inner) type.
func MakeRef(inner DataType) DataType {
	return DataType{Kind: Ref, Inner: &inner}
}

// MakeConstRef builds a ConstRef(inner) type.
func MakeConstRef(inner DataType) DataType {
	return DataType{Kind: ConstRef, Inner: &inner}
}

// Equals reports structural equality, recursing through Ref/ConstRef inner
// types and ignoring spans entirely (spans aren't part of DataType at all).
func (d DataType) Equals(other DataType) bool {
	if d.Kind != other.Kind {
		return false
	}
	if d.Kind == Ref || d.Kind == ConstRef {
		if d.Inner == nil || other.Inner == nil {
			return d.Inner == other.Inner
		}
		return d.Inner.Equals(*other.Inner)
	}
	return true
}

// IsComptime reports whether d is one of the four inferred-literal types.
func (d DataType) IsComptime() bool {
	switch d.Kind {
	case ComptimeNumber, ComptimeString, ComptimeChar, ComptimeBool:
		return true
	default:
		return false
	}
}

func (d DataType) String() string {
	if d.Kind == Ref || d.Kind == ConstRef {
		inner := "?"
		if d.Inner != nil {
			inner = d.Inner.String()
		}
		return fmt.Sprintf("%s(%s)", kindNames[d.Kind], inner)
	}
	return kindNames[d.Kind]
}

// isNumeric reports whether d is a concrete or comptime integer type.
func isNumeric(k Kind) bool {
	switch k {
	case ComptimeNumber, U8, U16, U32, U64, I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

func isUnsigned(k Kind) bool {
	switch k {
	case U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

func isSigned(k Kind) bool {
	switch k {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// rank orders concrete integer kinds by width, within one signedness class.
// Used by widenArithmetic to find "the widest of two same-signedness types"
// and to decide whether a mixed unsigned/signed pair's signed side is wider.
var rank = map[Kind]int{
	U8: 0, U16: 1, U32: 2, U64: 3,
	I8: 0, I16: 1, I32: 2, I64: 3,
}

// ordinalMax returns the larger of two generic orderable values — used to
// pick the wider of two integer ranks when widening an arithmetic operator's
// operand types.
func ordinalMax[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// IsConvertibleTo implements the spec's assignment/definition/return/argument
// convertibility rule: identity, plus each Comptime* type widening to any
// matching concrete type, plus Ref(T) -> Ref(U) when T == U.
func (d DataType) IsConvertibleTo(target DataType) bool {
	if d.Equals(target) {
		return true
	}
	switch d.Kind {
	case ComptimeNumber:
		switch target.Kind {
		case U8, U16, U32, U64, I8, I16, I32, I64, ComptimeChar, Char:
			return true
		}
	case ComptimeString:
		return target.Kind == String
	case ComptimeBool:
		return target.Kind == Bool
	case ComptimeChar:
		return target.Kind == Char
	}
	if d.Kind == Ref && target.Kind == Ref {
		if d.Inner == nil || target.Inner == nil {
			return d.Inner == target.Inner
		}
		return d.Inner.Equals(*target.Inner)
	}
	return false
}

// IsCastableTo implements the spec's explicit-`to`-cast legality rule:
// convertibility plus Ref(Void) <-> any Ref, in either direction.
func (d DataType) IsCastableTo(target DataType) bool {
	if d.IsConvertibleTo(target) {
		return true
	}
	if d.Kind == Ref && d.Inner != nil && d.Inner.Kind == Void {
		return true
	}
	if target.Kind == Ref && target.Inner != nil && target.Inner.Kind == Void {
		return true
	}
	return false
}
