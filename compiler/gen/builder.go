package gen

import (
	"strconv"

	"github.com/syssam/flatgen/schema"
)

// writeOrder returns the fields in the order create() adds them. With
// sortbysize the fields are grouped in size classes of 8, 4, 2 and 1
// bytes, keeping declaration order inside a class; otherwise declaration
// order is kept.
func writeOrder(sd *schema.StructDef) []*schema.FieldDef {
	live := liveFields(sd)
	if !sd.SortBySize {
		return live
	}
	order := make([]*schema.FieldDef, 0, len(live))
	for size := 8; size > 0; size /= 2 {
		for _, fd := range live {
			if fd.Value.Type.Base.Size() == size {
				order = append(order, fd)
			}
		}
	}
	return order
}

// genCreate emits the convenience create function: new builder, add
// every field, finish. Optional fields are added only when present.
func (f *file) genCreate(sd *schema.StructDef) {
	argsName := "args"
	if len(liveFields(sd)) == 0 {
		argsName = "_args"
	}
	f.w.Lines(
		"    #[allow(unused_mut)]",
		"    pub fn create<'x: 'y, 'y: 'z, 'z>(",
		"        _fbb: &'z mut flatbuffers::FlatBufferBuilder<'x>,",
		"        "+argsName+`: &'y {{STRUCT_NAME}}Args<'y>) -> \`,
		"flatbuffers::Offset<{{STRUCT_NAME}}<'x>> {",
		"      let mut builder = {{STRUCT_NAME}}Builder::new(_fbb);",
	)
	for _, fd := range writeOrder(sd) {
		field := f.name(fd.Name)
		if mustUseOption(sd.Name, fd) {
			f.w.Line("      if let Some(x) = args." + field + " { builder.add_" + fd.Name + "(x); }")
		} else {
			f.w.Line("      builder.add_" + fd.Name + "(args." + field + ");")
		}
	}
	f.w.Line("      builder.finish()")
	f.w.Line("    }")
	f.w.Line("")
}

// genBuilders emits the Args aggregate with its Default impl and the
// Builder with one add function per live field.
func (f *file) genBuilders(sd *schema.StructDef) {
	live := liveFields(sd)

	f.w.Line("pub struct {{STRUCT_NAME}}Args<'a> {")
	for _, fd := range live {
		k := mustClassify(sd.Name, fd)
		f.w.Line("    pub " + f.name(fd.Name) + ": " + f.argsType(sd, fd, k) + ",")
	}
	f.w.Line("    pub _phantom: PhantomData<&'a ()>,")
	f.w.Line("}")

	f.w.Lines(
		"impl<'a> Default for {{STRUCT_NAME}}Args<'a> {",
		"    fn default() -> Self {",
		"        {{STRUCT_NAME}}Args {",
	)
	for _, fd := range live {
		line := "            " + f.name(fd.Name) + ": " + f.defaultValue(sd.Name, fd) + ","
		if fd.Required {
			line += " // required"
		}
		f.w.Line(line)
	}
	f.w.Lines(
		"            _phantom: PhantomData,",
		"        }",
		"    }",
		"}",
	)

	f.w.Lines(
		"pub struct {{STRUCT_NAME}}Builder<'a: 'b, 'b> {",
		"  fbb_: &'b mut flatbuffers::FlatBufferBuilder<'a>,",
		"  start_: flatbuffers::Offset<flatbuffers::TableOffset>,",
		"}",
		"impl<'a: 'b, 'b> {{STRUCT_NAME}}Builder<'a, 'b> {",
	)
	for _, fd := range live {
		k := mustClassify(sd.Name, fd)
		field := f.name(fd.Name)
		f.w.Line("  #[inline]")
		f.w.Line("  pub fn add_" + fd.Name + "(&mut self, " + field + ": " + f.addType(sd, fd, k) + ") {")
		vt := f.offsetName(sd, fd)
		if fd.Value.Type.Base.IsScalar() {
			f.w.Line("    " + f.addBody(sd, fd, k) + "(" + vt + ", " + field + f.addCast(fd) + ", " + f.addDefault(sd, fd, k) + ");")
		} else {
			f.w.Line("    " + f.addBody(sd, fd, k) + "(" + vt + ", " + field + ");")
		}
		f.w.Line("  }")
	}
	f.w.Lines(
		"  #[inline]",
		"  pub fn new(_fbb: &'b mut flatbuffers::FlatBufferBuilder<'a>) -> {{STRUCT_NAME}}Builder<'a, 'b> {",
		"    let start = _fbb.start_table("+strconv.Itoa(len(sd.Fields))+");",
		"    {{STRUCT_NAME}}Builder {",
		"      fbb_: _fbb,",
		"      start_: start,",
		"    }",
		"  }",
		"  #[inline]",
		"  pub fn finish(self) -> flatbuffers::Offset<{{STRUCT_NAME}}<'a>> {",
		"    let o = self.fbb_.end_table(self.start_);",
	)
	for _, fd := range requiredFields(sd) {
		f.w.Line("    self.fbb_.required(o, " + f.offsetName(sd, fd) + ", " + strconv.Quote(SnakeCase(f.name(fd.Name))) + ");")
	}
	f.w.Lines(
		"    flatbuffers::Offset::new(o.value())",
		"  }",
		"}",
		"",
	)
}

// requiredFields returns the live fields marked required.
func requiredFields(sd *schema.StructDef) []*schema.FieldDef {
	var req []*schema.FieldDef
	for _, fd := range liveFields(sd) {
		if fd.Required {
			req = append(req, fd)
		}
	}
	return req
}

// argsType returns the type of a field in the Args aggregate.
func (f *file) argsType(sd *schema.StructDef, fd *schema.FieldDef, k FullElementType) string {
	t := fd.Value.Type
	switch k {
	case Integer, Float, Bool:
		return scalarType(t)
	case Struct:
		return "Option<&'a " + f.wrapDef(&t.StructDef.Definition) + ">"
	case Table:
		return "Option<flatbuffers::Offset<" + f.wrapDef(&t.StructDef.Definition) + "<'a>>>"
	case String:
		return "Option<flatbuffers::Offset<&'a str>>"
	case EnumKey, UnionKey:
		return f.wrapDef(&t.EnumDef.Definition)
	case UnionValue:
		return "Option<flatbuffers::Offset<flatbuffers::UnionMarker>>"
	case VectorOfInteger, VectorOfFloat:
		return "Option<flatbuffers::Offset<flatbuffers::Vector<'a, " + scalarType(t.VectorType()) + ">>>"
	case VectorOfBool:
		return "Option<flatbuffers::Offset<flatbuffers::Vector<'a, bool>>>"
	case VectorOfEnumKey:
		return "Option<flatbuffers::Offset<flatbuffers::Vector<'a, " + f.wrapDef(&t.EnumDef.Definition) + ">>>"
	case VectorOfStruct:
		return "Option<flatbuffers::Offset<flatbuffers::Vector<'a, " + f.wrapDef(&t.StructDef.Definition) + ">>>"
	case VectorOfTable:
		return "Option<flatbuffers::Offset<flatbuffers::Vector<'a, flatbuffers::ForwardsUOffset<" + f.wrapDef(&t.StructDef.Definition) + "<'a>>>>>"
	case VectorOfString:
		return "Option<flatbuffers::Offset<flatbuffers::Vector<'a, flatbuffers::ForwardsUOffset<&'a str>>>>"
	case VectorOfUnionValue:
		return "Option<flatbuffers::Offset<flatbuffers::Vector<'a, flatbuffers::ForwardsUOffset<flatbuffers::Table<'a>>>>>"
	default:
		panic(NewSchemaError(sd.Name, fd.Name, "unhandled element type "+k.String(), nil))
	}
}

// addType returns the parameter type of a builder add function.
func (f *file) addType(sd *schema.StructDef, fd *schema.FieldDef, k FullElementType) string {
	t := fd.Value.Type
	switch k {
	case Integer, Float:
		return scalarType(t)
	case Bool:
		return "bool"
	case Struct:
		return "&'b " + f.wrapDef(&t.StructDef.Definition)
	case Table:
		return "flatbuffers::Offset<" + f.wrapDef(&t.StructDef.Definition) + "<'b>>"
	case String:
		return "flatbuffers::Offset<&'b str>"
	case EnumKey, UnionKey:
		return f.wrapDef(&t.EnumDef.Definition)
	case UnionValue:
		return "flatbuffers::Offset<flatbuffers::UnionMarker>"
	case VectorOfInteger, VectorOfFloat:
		return "flatbuffers::Offset<flatbuffers::Vector<'b, " + scalarType(t.VectorType()) + ">>"
	case VectorOfBool:
		return "flatbuffers::Offset<flatbuffers::Vector<'b, bool>>"
	case VectorOfEnumKey:
		return "flatbuffers::Offset<flatbuffers::Vector<'b, " + f.wrapDef(&t.EnumDef.Definition) + ">>"
	case VectorOfStruct:
		return "flatbuffers::Offset<flatbuffers::Vector<'b, " + f.wrapDef(&t.StructDef.Definition) + ">>"
	case VectorOfTable:
		return "flatbuffers::Offset<flatbuffers::Vector<'b, flatbuffers::ForwardsUOffset<" + f.wrapDef(&t.StructDef.Definition) + "<'b>>>>"
	case VectorOfString:
		return "flatbuffers::Offset<flatbuffers::Vector<'b, flatbuffers::ForwardsUOffset<&'b str>>>"
	case VectorOfUnionValue:
		return "flatbuffers::Offset<flatbuffers::Vector<'b, flatbuffers::ForwardsUOffset<flatbuffers::Table<'b>>>>"
	default:
		panic(NewSchemaError(sd.Name, fd.Name, "unhandled element type "+k.String(), nil))
	}
}

// addBody returns the builder call that writes a field.
func (f *file) addBody(sd *schema.StructDef, fd *schema.FieldDef, k FullElementType) string {
	t := fd.Value.Type
	switch k {
	case Integer, Float, Bool, EnumKey, UnionKey:
		return "self.fbb_.push_slot_scalar::<" + scalarType(t) + ">"
	case Struct:
		return "self.fbb_.push_slot_struct::<" + f.wrapDef(&t.StructDef.Definition) + ">"
	case Table:
		return "self.fbb_.push_slot_offset_relative::<" + f.wrapDef(&t.StructDef.Definition) + ">"
	case UnionValue, String,
		VectorOfInteger, VectorOfFloat, VectorOfBool, VectorOfEnumKey,
		VectorOfStruct, VectorOfTable, VectorOfString, VectorOfUnionValue:
		return "self.fbb_.push_slot_offset_relative"
	default:
		panic(NewSchemaError(sd.Name, fd.Name, "unhandled element type "+k.String(), nil))
	}
}

// addDefault returns the default passed to push_slot_scalar, which skips
// the write when the value equals it.
func (f *file) addDefault(sd *schema.StructDef, fd *schema.FieldDef, k FullElementType) string {
	switch k {
	case EnumKey, UnionKey:
		return f.defaultValue(sd.Name, fd) + " as " + scalarType(fd.Value.Type)
	default:
		return f.defaultValue(sd.Name, fd)
	}
}

// addCast converts an enum argument to its underlying scalar.
func (f *file) addCast(fd *schema.FieldDef) string {
	t := fd.Value.Type
	switch ContainerOf(t) {
	case ContainerEnum, ContainerUnion:
		if t.Base.IsScalar() {
			return " as " + scalarType(t)
		}
	}
	return ""
}
