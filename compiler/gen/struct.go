package gen

import (
	"strconv"
	"strings"

	"github.com/syssam/flatgen/schema"
)

// genStruct emits a fixed struct: a packed record whose in-memory layout
// equals the wire layout, so buffers are read in place.
func (f *file) genStruct(sd *schema.StructDef) {
	name := f.name(sd.Name)
	layout, err := StructLayout(sd)
	if err != nil {
		panic(NewSchemaError(sd.Name, "", "invalid struct layout", err))
	}
	if err := layout.Check(sd); err != nil {
		panic(NewSchemaError(sd.Name, "", "layout does not match the IR", err))
	}

	f.w.SetValue("STRUCT_NAME", name)
	f.w.SetValue("ALIGN", strconv.Itoa(sd.MinAlign))
	f.w.SetValue("STRUCT_BYTE_SIZE", strconv.Itoa(sd.ByteSize))

	f.comment(sd.Doc, "")
	f.w.Line("// MANUALLY_ALIGNED_STRUCT({{ALIGN}})")
	f.w.Line("#[repr(C, packed)]")
	f.w.Line("#[derive(Clone, Copy, Debug, PartialEq)]")
	f.w.Line("pub struct {{STRUCT_NAME}} {")
	for _, m := range layout.Members {
		if m.Field == nil {
			f.w.Line("  " + m.Name + ": u" + strconv.Itoa(m.Size*8) + ",")
			continue
		}
		f.w.Line("  " + f.name(m.Name) + "_: " + f.structMemberType(m.Field.Value.Type) + ",")
	}
	f.w.Line("} // pub struct {{STRUCT_NAME}}")

	f.w.Lines(
		"impl flatbuffers::GeneratedStruct for {{STRUCT_NAME}} {}",
		"impl<'a> flatbuffers::Follow<'a> for {{STRUCT_NAME}} {",
		"    type Inner = &'a {{STRUCT_NAME}};",
		"    fn follow(buf: &'a [u8], loc: usize) -> Self::Inner {",
		"        let this_buf = &buf[loc..loc + ::std::mem::size_of::<{{STRUCT_NAME}}>()];",
		"        let ptr = this_buf.as_ptr() as *const {{STRUCT_NAME}};",
		"        unsafe { &*ptr }",
		"    }",
		"}",
		"",
		"impl {{STRUCT_NAME}} {",
	)
	f.fullyQualifiedNameGetter(sd)
	f.w.Lines(
		"  pub fn reset(&mut self) {",
		"    let ptr = self as *mut {{STRUCT_NAME}};",
		"    let sz = ::std::mem::size_of::<{{STRUCT_NAME}}>();",
		"    unsafe {",
		"        ::std::ptr::write_bytes(ptr, 0, sz);",
		"    }",
		"  }",
	)
	f.structConstructor(sd, layout)

	for _, fd := range sd.Fields {
		f.structAccessor(sd, fd)
		if f.featureEnabled(FeatureMutableBuffer) {
			f.structMutator(fd)
		}
		if fd.Key {
			f.structKeyCompare(sd, fd)
		}
	}
	f.w.Line("}")
	f.w.Line("// STRUCT_END({{STRUCT_NAME}}, {{STRUCT_BYTE_SIZE}});")
	f.w.Line("")
}

// structMemberType returns the stored type of a struct member. Enums are
// stored as their underlying scalar.
func (f *file) structMemberType(t schema.Type) string {
	if t.IsStruct() {
		return f.wrapDef(&t.StructDef.Definition)
	}
	return t.Base.RustName()
}

// structValueType returns the user-facing type of a struct member.
func (f *file) structValueType(t schema.Type) string {
	switch {
	case t.IsStruct():
		return f.wrapDef(&t.StructDef.Definition)
	case t.EnumDef != nil:
		return f.wrapDef(&t.EnumDef.Definition)
	default:
		return t.Base.RustName()
	}
}

// structConstructor emits new(), taking every field and storing scalars
// in little endian. Fillers are zeroed.
func (f *file) structConstructor(sd *schema.StructDef, layout Layout) {
	args := make([]string, 0, len(sd.Fields))
	for _, fd := range sd.Fields {
		args = append(args, "_"+f.name(fd.Name)+": "+f.structValueType(fd.Value.Type))
	}
	f.w.Line("  pub fn new(" + strings.Join(args, ", ") + ") -> Self {")
	f.w.Line("    {{STRUCT_NAME}} {")
	for _, m := range layout.Members {
		if m.Field == nil {
			f.w.Line("      " + m.Name + ": 0,")
			continue
		}
		member := f.name(m.Name)
		f.w.Line("      " + member + "_: " + f.toLittleEndian(m.Field, "_"+member) + ",")
	}
	f.w.Line("    }")
	f.w.Line("  }")
}

// toLittleEndian converts a user-facing value to its stored form.
func (f *file) toLittleEndian(fd *schema.FieldDef, v string) string {
	t := fd.Value.Type
	switch {
	case t.IsStruct():
		return v
	case t.EnumDef != nil:
		return "(" + v + " as " + t.Base.RustName() + ").to_little_endian()"
	default:
		return v + ".to_little_endian()"
	}
}

// structAccessor emits the read accessor of a struct member. Scalars are
// endian corrected, enums reinterpreted from their stored scalar, nested
// structs returned by reference.
func (f *file) structAccessor(sd *schema.StructDef, fd *schema.FieldDef) {
	t := fd.Value.Type
	member := "self." + f.name(fd.Name) + "_"
	var typ, body string
	switch {
	case t.IsStruct():
		typ = "&" + f.structValueType(t)
		body = "&" + member
	case t.EnumDef != nil:
		typ = f.structValueType(t)
		body = "unsafe { ::std::mem::transmute(" + member + ".from_little_endian()) }"
	case t.Base.IsScalar():
		typ = f.structValueType(t)
		body = member + ".from_little_endian()"
	default:
		fatalf(sd.Name, fd.Name, "type %s cannot be a struct member", t)
	}
	f.comment(fd.Doc, "  ")
	f.w.Line("  pub fn " + f.name(fd.Name) + "(&self) -> " + typ + " {")
	f.w.Line("    " + body)
	f.w.Line("  }")
}

// structMutator emits set_<field>, writing the value in place.
func (f *file) structMutator(fd *schema.FieldDef) {
	t := fd.Value.Type
	name := f.name(fd.Name)
	if t.IsStruct() {
		f.w.Line("  pub fn set_" + fd.Name + "(&mut self, x: &" + f.structValueType(t) + ") {")
		f.w.Line("    self." + name + "_ = *x;")
		f.w.Line("  }")
		return
	}
	f.w.Line("  pub fn set_" + fd.Name + "(&mut self, x: " + f.structValueType(t) + ") {")
	f.w.Line("    self." + name + "_ = " + f.toLittleEndian(fd, "x") + ";")
	f.w.Line("  }")
}

// structKeyCompare emits the comparison functions of a key member.
func (f *file) structKeyCompare(sd *schema.StructDef, fd *schema.FieldDef) {
	t := fd.Value.Type
	if !t.Base.IsScalar() {
		f.warn(sd.Name, fd.Name, "comparison key on a non-scalar struct member is unsupported")
		return
	}
	name := f.name(fd.Name)
	key, keyType := "self."+name+"()", f.structValueType(t)
	other := "o." + name + "()"
	if t.EnumDef != nil {
		keyType = t.Base.RustName()
		key += " as " + keyType
		other += " as " + keyType
	}
	f.w.Line("  fn key_compare_less_than(&self, o: &{{STRUCT_NAME}}) -> bool {")
	f.w.Line("    " + key + " < " + other)
	f.w.Line("  }")
	f.w.Line("  fn key_compare_with_value(&self, val: " + keyType + ") -> isize {")
	f.w.Line("    let key = " + key + ";")
	f.w.Line("    (key > val) as isize - (key < val) as isize")
	f.w.Line("  }")
}

// fullyQualifiedNameGetter emits get_fully_qualified_name when name
// strings are enabled.
func (f *file) fullyQualifiedNameGetter(sd *schema.StructDef) {
	if !f.featureEnabled(FeatureNameStrings) {
		return
	}
	f.w.Line("    pub const fn get_fully_qualified_name() -> &'static str {")
	f.w.Line("        " + strconv.Quote(sd.Namespace.FullyQualifiedName(f.name(sd.Name))))
	f.w.Line("    }")
	f.w.Line("")
}
