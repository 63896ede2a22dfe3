package schema

import (
	"fmt"
	"strings"
)

// BaseType is the wire-level type tag of a value.
//
// The order matters: every scalar precedes TypeString, and integer types are
// contiguous from TypeUType to TypeULong, as in the FlatBuffers IDL.
type BaseType uint8

const (
	TypeNone BaseType = iota
	TypeUType
	TypeBool
	TypeByte
	TypeUByte
	TypeShort
	TypeUShort
	TypeInt
	TypeUInt
	TypeLong
	TypeULong
	TypeFloat
	TypeDouble
	TypeString
	TypeVector
	TypeStruct
	TypeUnion
)

// baseTypeInfo describes one BaseType.
type baseTypeInfo struct {
	name string // IDL spelling.
	rust string // Rust scalar spelling; empty for offset types.
	size int    // size in bytes of the inline representation.
}

var baseTypes = [...]baseTypeInfo{
	TypeNone:   {"none", "u8", 1},
	TypeUType:  {"utype", "u8", 1},
	TypeBool:   {"bool", "bool", 1},
	TypeByte:   {"byte", "i8", 1},
	TypeUByte:  {"ubyte", "u8", 1},
	TypeShort:  {"short", "i16", 2},
	TypeUShort: {"ushort", "u16", 2},
	TypeInt:    {"int", "i32", 4},
	TypeUInt:   {"uint", "u32", 4},
	TypeLong:   {"long", "i64", 8},
	TypeULong:  {"ulong", "u64", 8},
	TypeFloat:  {"float", "f32", 4},
	TypeDouble: {"double", "f64", 8},
	TypeString: {"string", "", 4},
	TypeVector: {"vector", "", 4},
	TypeStruct: {"struct", "", 4},
	TypeUnion:  {"union", "", 4},
}

// aliases accepted by ParseBaseType besides the canonical names.
var baseTypeAliases = map[string]BaseType{
	"int8":    TypeByte,
	"uint8":   TypeUByte,
	"int16":   TypeShort,
	"uint16":  TypeUShort,
	"int32":   TypeInt,
	"uint32":  TypeUInt,
	"int64":   TypeLong,
	"uint64":  TypeULong,
	"float32": TypeFloat,
	"float64": TypeDouble,
}

// String returns the IDL name of the type.
func (t BaseType) String() string {
	if int(t) < len(baseTypes) {
		return baseTypes[t].name
	}
	return fmt.Sprintf("BaseType(%d)", t)
}

// Valid reports whether t is a known base type.
func (t BaseType) Valid() bool { return int(t) < len(baseTypes) }

// IsScalar reports whether values of t are stored inline.
func (t BaseType) IsScalar() bool { return t >= TypeUType && t <= TypeDouble }

// IsInteger reports whether t is an integer type. Bool counts as one.
func (t BaseType) IsInteger() bool { return t >= TypeUType && t <= TypeULong }

// IsLong reports whether t is a 64-bit integer.
func (t BaseType) IsLong() bool { return t == TypeLong || t == TypeULong }

// IsFloat reports whether t is a floating point type.
func (t BaseType) IsFloat() bool { return t == TypeFloat || t == TypeDouble }

// IsBool reports whether t is a bool.
func (t BaseType) IsBool() bool { return t == TypeBool }

// Size returns the inline size in bytes. Offset carrying types (string,
// vector, struct, union) report the size of a uoffset.
func (t BaseType) Size() int {
	if !t.Valid() {
		return 0
	}
	return baseTypes[t].size
}

// RustName returns the Rust spelling of a scalar type, or "" for
// offset carrying types.
func (t BaseType) RustName() string {
	if !t.Valid() {
		return ""
	}
	return baseTypes[t].rust
}

// ParseBaseType returns the BaseType with the given IDL name.
func ParseBaseType(s string) (BaseType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := range baseTypes {
		if baseTypes[i].name == s {
			return BaseType(i), nil
		}
	}
	if t, ok := baseTypeAliases[s]; ok {
		return t, nil
	}
	return TypeNone, fmt.Errorf("schema: unknown base type %q", s)
}

// Type is the declared type of a field or enum.
type Type struct {
	// Base is the wire-level tag.
	Base BaseType
	// Element is the element tag when Base is TypeVector.
	Element BaseType
	// StructDef references the struct or table for struct types and
	// vectors of them.
	StructDef *StructDef
	// EnumDef references the enum for enum scalars, union keys, union
	// values, and vectors of enums.
	EnumDef *EnumDef
}

// VectorType returns the element type of a vector type.
func (t Type) VectorType() Type {
	return Type{Base: t.Element, StructDef: t.StructDef, EnumDef: t.EnumDef}
}

// IsStruct reports whether t refers to a fixed struct.
func (t Type) IsStruct() bool {
	return t.Base == TypeStruct && t.StructDef != nil && t.StructDef.Fixed
}

// String returns a readable form used in diagnostics.
func (t Type) String() string {
	var b strings.Builder
	if t.Base == TypeVector {
		b.WriteString("[")
		b.WriteString(t.VectorType().String())
		b.WriteString("]")
		return b.String()
	}
	switch {
	case t.StructDef != nil:
		b.WriteString(t.StructDef.FullyQualifiedName())
	case t.EnumDef != nil:
		b.WriteString(t.EnumDef.FullyQualifiedName())
		if t.Base == TypeUType {
			b.WriteString("(utype)")
		}
	default:
		b.WriteString(t.Base.String())
	}
	return b.String()
}
