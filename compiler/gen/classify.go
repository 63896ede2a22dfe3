package gen

import (
	"fmt"

	"github.com/syssam/flatgen/schema"
)

// FullElementType is the taxonomy every emitter switches on. It decides
// the wire representation of a value and the shape of its accessors and
// builder functions.
type FullElementType uint8

const (
	Integer FullElementType = iota
	Float
	Bool

	Struct
	Table

	EnumKey
	UnionKey

	UnionValue

	String
	VectorOfInteger
	VectorOfFloat
	VectorOfBool
	VectorOfEnumKey
	VectorOfStruct
	VectorOfTable
	VectorOfString
	VectorOfUnionValue

	numFullElementTypes
)

var fullElementTypeNames = [...]string{
	Integer:            "Integer",
	Float:              "Float",
	Bool:               "Bool",
	Struct:             "Struct",
	Table:              "Table",
	EnumKey:            "EnumKey",
	UnionKey:           "UnionKey",
	UnionValue:         "UnionValue",
	String:             "String",
	VectorOfInteger:    "VectorOfInteger",
	VectorOfFloat:      "VectorOfFloat",
	VectorOfBool:       "VectorOfBool",
	VectorOfEnumKey:    "VectorOfEnumKey",
	VectorOfStruct:     "VectorOfStruct",
	VectorOfTable:      "VectorOfTable",
	VectorOfString:     "VectorOfString",
	VectorOfUnionValue: "VectorOfUnionValue",
}

// String returns the name of the kind.
func (k FullElementType) String() string {
	if k < numFullElementTypes {
		return fullElementTypeNames[k]
	}
	return fmt.Sprintf("FullElementType(%d)", k)
}

// IsVector reports whether k is one of the VectorOf kinds.
func (k FullElementType) IsVector() bool {
	return k >= VectorOfInteger && k <= VectorOfUnionValue
}

// AllFullElementTypes returns every kind, in declaration order.
func AllFullElementTypes() []FullElementType {
	all := make([]FullElementType, numFullElementTypes)
	for i := range all {
		all[i] = FullElementType(i)
	}
	return all
}

// vectorOf maps an element kind to its vector kind.
var vectorOf = map[FullElementType]FullElementType{
	Integer: VectorOfInteger,
	Float:   VectorOfFloat,
	Bool:    VectorOfBool,
	Struct:  VectorOfStruct,
	Table:   VectorOfTable,
	String:  VectorOfString,
	EnumKey: VectorOfEnumKey,
}

// Classify maps a type to its FullElementType. The first matching rule
// wins: strings, then struct references, then vectors, then union and enum
// references, then plain scalars. It fails on combinations the IR cannot
// legally produce, including vectors of unions.
func Classify(t schema.Type) (FullElementType, error) {
	switch {
	case t.Base == schema.TypeString:
		return String, nil
	case t.Base == schema.TypeStruct:
		if t.StructDef == nil {
			return 0, fmt.Errorf("struct type without definition")
		}
		if t.StructDef.Fixed {
			return Struct, nil
		}
		return Table, nil
	case t.Base == schema.TypeVector:
		elem, err := Classify(t.VectorType())
		if err != nil {
			return 0, fmt.Errorf("vector element: %w", err)
		}
		if elem == UnionValue {
			return 0, fmt.Errorf("vectors of unions are not supported")
		}
		k, ok := vectorOf[elem]
		if !ok {
			return 0, fmt.Errorf("invalid vector element kind %s", elem)
		}
		return k, nil
	case t.EnumDef != nil:
		if !t.EnumDef.IsUnion {
			return EnumKey, nil
		}
		switch t.Base {
		case schema.TypeUnion:
			return UnionValue, nil
		case schema.TypeUType:
			return UnionKey, nil
		default:
			return 0, fmt.Errorf("union %s referenced through base type %s", t.EnumDef.Name, t.Base)
		}
	case t.Base.IsScalar():
		switch {
		case t.Base.IsBool():
			return Bool, nil
		case t.Base.IsLong(), t.Base.IsInteger():
			return Integer, nil
		case t.Base.IsFloat():
			return Float, nil
		}
	}
	return 0, fmt.Errorf("unclassifiable type %s", t.Base)
}

// ContainerType is the coarse container view of a type.
type ContainerType uint8

const (
	ContainerNone ContainerType = iota
	ContainerVector
	ContainerEnum
	ContainerUnion
)

// ElementType is the coarse element view of a type, with vectors looked
// through.
type ElementType uint8

const (
	ElementStruct ElementType = iota
	ElementTable
	ElementNumber
	ElementEnumValue
	ElementBool
	ElementString
	ElementUnionMember
	ElementUnionEnumValue
)

// ContainerOf returns the container view of t.
func ContainerOf(t schema.Type) ContainerType {
	switch {
	case t.Base == schema.TypeVector:
		return ContainerVector
	case t.EnumDef != nil && t.EnumDef.IsUnion:
		return ContainerUnion
	case t.EnumDef != nil:
		return ContainerEnum
	default:
		return ContainerNone
	}
}

// ElementOf returns the element view of t.
func ElementOf(t schema.Type) (ElementType, error) {
	if t.Base == schema.TypeVector {
		t = t.VectorType()
	}
	switch {
	case t.Base == schema.TypeStruct:
		if t.StructDef == nil {
			return 0, fmt.Errorf("struct type without definition")
		}
		if t.StructDef.Fixed {
			return ElementStruct, nil
		}
		return ElementTable, nil
	case t.Base == schema.TypeString:
		return ElementString, nil
	case t.EnumDef != nil && !t.EnumDef.IsUnion:
		return ElementEnumValue, nil
	case t.EnumDef != nil && t.Base == schema.TypeUnion:
		return ElementUnionMember, nil
	case t.EnumDef != nil && t.Base == schema.TypeUType:
		return ElementUnionEnumValue, nil
	case t.Base == schema.TypeUnion:
		return 0, fmt.Errorf("union type without definition")
	case t.Base == schema.TypeBool:
		return ElementBool, nil
	case t.Base.IsScalar():
		return ElementNumber, nil
	}
	return 0, fmt.Errorf("unclassifiable element type %s", t.Base)
}

// UsesOption reports whether accessors and builder arguments of t are
// wrapped in Option. Enum keys, numbers and bools never are.
func UsesOption(t schema.Type) (bool, error) {
	et, err := ElementOf(t)
	if err != nil {
		return false, err
	}
	switch ContainerOf(t) {
	case ContainerVector, ContainerUnion:
		return et != ElementUnionEnumValue, nil
	case ContainerEnum:
		return false, nil
	default:
		switch et {
		case ElementStruct, ElementTable, ElementString, ElementUnionMember:
			return true, nil
		default:
			return false, nil
		}
	}
}

// mustClassify classifies the type of a field and aborts the run when
// the type is malformed.
func mustClassify(owner string, fd *schema.FieldDef) FullElementType {
	k, err := Classify(fd.Value.Type)
	if err != nil {
		panic(NewSchemaError(owner, fd.Name, "cannot classify field type", err))
	}
	return k
}

func mustUseOption(owner string, fd *schema.FieldDef) bool {
	ok, err := UsesOption(fd.Value.Type)
	if err != nil {
		panic(NewSchemaError(owner, fd.Name, "cannot classify field type", err))
	}
	return ok
}
