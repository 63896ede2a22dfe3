package gen

import (
	"strconv"
	"strings"

	"github.com/syssam/flatgen/schema"
)

// defaultValue returns the literal default of a field as it appears in
// Args initializers and scalar accessors: the declared constant for
// numbers, true or false for bools, the qualified enum value for enum and
// union keys, and None for everything else.
func (f *file) defaultValue(owner string, fd *schema.FieldDef) string {
	switch k := mustClassify(owner, fd); k {
	case Integer:
		return fd.Value.Constant
	case Float:
		return floatLiteral(fd.Value.Constant)
	case Bool:
		if isZeroConstant(fd.Value.Constant) {
			return "false"
		}
		return "true"
	case EnumKey, UnionKey:
		return f.enumDefault(owner, fd)
	case Struct, Table, UnionValue, String,
		VectorOfInteger, VectorOfFloat, VectorOfBool, VectorOfEnumKey,
		VectorOfStruct, VectorOfTable, VectorOfString, VectorOfUnionValue:
		return "None"
	default:
		panic(NewSchemaError(owner, fd.Name, "unhandled element type "+k.String(), nil))
	}
}

// enumDefault resolves the declared constant of an enum or union key
// field to Enum::Value, qualified for the current namespace.
func (f *file) enumDefault(owner string, fd *schema.FieldDef) string {
	ed := fd.Value.Type.EnumDef
	v, err := strconv.ParseInt(strings.TrimSpace(fd.Value.Constant), 0, 64)
	if err != nil {
		panic(NewSchemaError(owner, fd.Name, "enum default is not an integer", err))
	}
	ev := ed.ReverseLookup(v)
	if ev == nil {
		fatalf(owner, fd.Name, "no value of %s equals the default %d", ed.Name, v)
	}
	return f.wrap(ed.Namespace, f.enumValUse(ed, ev))
}

// enumValUse returns Enum::Value for an enum value.
func (f *file) enumValUse(ed *schema.EnumDef, ev *schema.EnumVal) string {
	return f.name(ed.Name) + "::" + f.name(ev.Name)
}

// floatLiteral returns a float constant as a Rust float literal. Integral
// constants such as 0 or 0x10 get a fractional part, since Rust rejects an
// integer literal where f32 or f64 is expected.
func floatLiteral(c string) string {
	c = strings.TrimSpace(c)
	if v, err := strconv.ParseInt(c, 0, 64); err == nil {
		return strconv.FormatInt(v, 10) + ".0"
	}
	return c
}

// isZeroConstant reports whether a bool constant is false. Constants are
// "0", "1", "false" or "true" as written in the schema.
func isZeroConstant(c string) bool {
	c = strings.TrimSpace(c)
	if c == "" || c == "false" {
		return true
	}
	if v, err := strconv.ParseFloat(c, 64); err == nil {
		return v == 0
	}
	return false
}
