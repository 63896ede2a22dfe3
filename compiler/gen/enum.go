package gen

import (
	"math"
	"strconv"

	"github.com/syssam/flatgen/schema"
)

// maxSparseness is the average distance between enum values above which
// no name table is generated.
const maxSparseness = 5

// enumBaseType returns the Rust representation of an enum's underlying
// type. Bools are declared as u8.
func enumBaseType(ed *schema.EnumDef) string {
	if ed.UnderlyingType.Base == schema.TypeBool {
		return "u8"
	}
	rust := ed.UnderlyingType.Base.RustName()
	if !ed.UnderlyingType.Base.IsInteger() || rust == "" {
		fatalf(ed.Name, "", "underlying type %s is not an integer", ed.UnderlyingType.Base)
	}
	return rust
}

// enumBounds returns the first declared values holding the smallest and
// the largest integer.
func enumBounds(ed *schema.EnumDef) (minv, maxv *schema.EnumVal) {
	for _, ev := range ed.Values {
		if minv == nil || minv.Value > ev.Value {
			minv = ev
		}
		if maxv == nil || maxv.Value < ev.Value {
			maxv = ev
		}
	}
	return minv, maxv
}

// enumNameTable returns the names indexed by value minus the minimum, or
// nil when the values are too sparse. Gaps hold the empty string; values
// shared by several names keep the first declared one.
func enumNameTable(ed *schema.EnumDef) []string {
	minv, maxv := enumBounds(ed)
	if minv == nil {
		return nil
	}
	span := uint64(maxv.Value - minv.Value)
	if span == math.MaxUint64 {
		return nil
	}
	rng := span + 1
	if rng/uint64(len(ed.Values)) >= maxSparseness {
		return nil
	}
	names := make([]string, rng)
	set := make([]bool, rng)
	for _, ev := range ed.Values {
		i := uint64(ev.Value - minv.Value)
		if !set[i] {
			names[i], set[i] = ev.Name, true
		}
	}
	return names
}

// genEnum emits an enum declaration, its bounds, the runtime trait
// impls, the array of all values and, when dense enough, a name table.
func (f *file) genEnum(ed *schema.EnumDef) {
	if len(ed.Values) == 0 {
		fatalf(ed.Name, "", "enum has no values")
	}
	name := f.name(ed.Name)
	base := enumBaseType(ed)
	minv, maxv := enumBounds(ed)

	f.w.SetValue("ENUM_NAME", name)
	f.w.SetValue("BASE_TYPE", base)
	f.w.SetValue("ENUM_NAME_SNAKE", SnakeCase(name))
	f.w.SetValue("ENUM_NAME_CAPS", UpperCase(SnakeCase(name)))
	f.w.SetValue("ENUM_MIN_BASE_VALUE", strconv.FormatInt(minv.Value, 10))
	f.w.SetValue("ENUM_MAX_BASE_VALUE", strconv.FormatInt(maxv.Value, 10))

	f.comment(ed.Doc, "")
	f.w.Line("#[allow(non_camel_case_types)]")
	f.w.Line("#[repr({{BASE_TYPE}})]")
	f.w.Line("#[derive(Clone, Copy, PartialEq, Debug)]")
	f.w.Line("pub enum {{ENUM_NAME}} {")
	for _, ev := range ed.Values {
		f.comment(ev.Doc, "  ")
		f.w.Line("  " + f.name(ev.Name) + " = " + strconv.FormatInt(ev.Value, 10) + ",")
	}
	f.w.Line("}")
	f.w.Line("")

	f.w.Lines(
		"const ENUM_MIN_{{ENUM_NAME_CAPS}}: {{BASE_TYPE}} = {{ENUM_MIN_BASE_VALUE}};",
		"const ENUM_MAX_{{ENUM_NAME_CAPS}}: {{BASE_TYPE}} = {{ENUM_MAX_BASE_VALUE}};",
		"",
		"impl<'a> flatbuffers::Follow<'a> for {{ENUM_NAME}} {",
		"    type Inner = Self;",
		"    fn follow(buf: &'a [u8], loc: usize) -> Self::Inner {",
		"        flatbuffers::read_scalar_at::<Self>(buf, loc)",
		"    }",
		"}",
		"impl flatbuffers::EndianScalar for {{ENUM_NAME}} {",
		"    fn to_little_endian(self) -> Self {",
		"        let n = {{BASE_TYPE}}::to_le(self as {{BASE_TYPE}});",
		"        let ptr = (&n) as *const {{BASE_TYPE}} as *const {{ENUM_NAME}};",
		"        unsafe { *ptr }",
		"    }",
		"    fn from_little_endian(self) -> Self {",
		"        let n = {{BASE_TYPE}}::from_le(self as {{BASE_TYPE}});",
		"        let ptr = (&n) as *const {{BASE_TYPE}} as *const {{ENUM_NAME}};",
		"        unsafe { *ptr }",
		"    }",
		"}",
		"",
	)

	f.w.Line("#[allow(non_camel_case_types)]")
	f.w.Line("const ENUM_VALUES_{{ENUM_NAME_CAPS}}: [{{ENUM_NAME}}; " + strconv.Itoa(len(ed.Values)) + "] = [")
	for i, ev := range ed.Values {
		sep := ","
		if i == len(ed.Values)-1 {
			sep = ""
		}
		f.w.Line("  " + f.enumValUse(ed, ev) + sep)
	}
	f.w.Line("];")
	f.w.Line("")

	if names := enumNameTable(ed); names != nil {
		f.w.Line("#[allow(non_camel_case_types)]")
		f.w.Line("const ENUM_NAMES_{{ENUM_NAME_CAPS}}: [&'static str; " + strconv.Itoa(len(names)) + "] = [")
		for i, n := range names {
			sep := ","
			if i == len(names)-1 {
				sep = ""
			}
			f.w.Line("    " + strconv.Quote(f.name(n)) + sep)
		}
		f.w.Line("];")
		f.w.Line("")
		f.w.Line("pub fn enum_name_{{ENUM_NAME_SNAKE}}(e: {{ENUM_NAME}}) -> &'static str {")
		f.w.Line(`  let index: usize = e as usize\`)
		if minv.Value != 0 {
			f.w.Line(" - " + f.enumValUse(ed, minv) + ` as usize\`)
		}
		f.w.Line(";")
		f.w.Line("  ENUM_NAMES_{{ENUM_NAME_CAPS}}[index]")
		f.w.Line("}")
		f.w.Line("")
	}

	if ed.IsUnion {
		f.w.Line("pub struct " + name + "UnionTableOffset {}")
		f.w.Line("")
	}
}
