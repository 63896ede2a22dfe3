package gen

import (
	"strconv"

	"github.com/syssam/flatgen/schema"
)

// genTable emits a table: the offset marker, the accessor struct with
// its vtable offset constants and field accessors, then the Args and
// Builder types.
func (f *file) genTable(sd *schema.StructDef) {
	name := f.name(sd.Name)
	f.w.SetValue("STRUCT_NAME", name)
	f.w.SetValue("OFFSET_TYPELABEL", name+"Offset")

	f.comment(sd.Doc, "")
	f.w.Lines(
		"pub enum {{OFFSET_TYPELABEL}} {}",
		"#[derive(Copy, Clone, Debug, PartialEq)]",
		"pub struct {{STRUCT_NAME}}<'a> {",
		"  pub _tab: flatbuffers::Table<'a>,",
		"  _phantom: PhantomData<&'a ()>,",
		"}",
		"impl<'a> flatbuffers::Follow<'a> for {{STRUCT_NAME}}<'a> {",
		"    type Inner = {{STRUCT_NAME}}<'a>;",
		"    fn follow(buf: &'a [u8], loc: usize) -> Self::Inner {",
		"        Self { _tab: flatbuffers::Table { buf: buf, loc: loc }, _phantom: PhantomData }",
		"    }",
		"}",
		"impl<'a> {{STRUCT_NAME}}<'a> {",
		"    pub fn init_from_table(table: flatbuffers::Table<'a>) -> Self {",
		"        {{STRUCT_NAME}} {",
		"            _tab: table,",
		"            _phantom: PhantomData,",
		"        }",
		"    }",
	)
	f.genCreate(sd)
	f.fullyQualifiedNameGetter(sd)

	live := liveFields(sd)
	if len(live) > 0 {
		for _, fd := range live {
			f.w.Line("    pub const " + f.cfg.Target.FieldOffsetName(fd) + ": flatbuffers::VOffsetT = " +
				strconv.FormatUint(uint64(fd.Value.Offset), 10) + ";")
		}
		f.w.Line("")
	}

	for _, fd := range live {
		k := mustClassify(sd.Name, fd)
		f.comment(fd.Doc, "  ")
		f.w.Line("  #[inline]")
		f.w.Line("  pub fn " + f.name(fd.Name) + "(&'a self) -> " + f.accessorReturnType(sd, fd, k) + " {")
		f.w.Line("    " + f.accessorBody(sd, fd, k))
		f.w.Line("  }")

		if nested, ok := fd.Attributes.Lookup("nested_flatbuffer"); ok {
			f.nestedAccessor(sd, fd, nested)
		}
		if fd.Key {
			f.warn(sd.Name, fd.Name, "comparison key on a table field is unsupported by the "+f.cfg.Target.Name+" target")
		}
	}
	for _, fd := range live {
		if fd.Value.Type.Base == schema.TypeUnion {
			f.unionAccessors(sd, fd)
		}
	}
	f.w.Line("}")
	f.w.Line("")

	f.genBuilders(sd)
}

// liveFields returns the non-deprecated fields in declaration order.
func liveFields(sd *schema.StructDef) []*schema.FieldDef {
	live := make([]*schema.FieldDef, 0, len(sd.Fields))
	for _, fd := range sd.Fields {
		if !fd.Deprecated {
			live = append(live, fd)
		}
	}
	return live
}

// offsetName returns Table::VT_FIELD.
func (f *file) offsetName(sd *schema.StructDef, fd *schema.FieldDef) string {
	return f.name(sd.Name) + "::" + f.cfg.Target.FieldOffsetName(fd)
}

// scalarType returns the Rust spelling of a scalar base type.
func scalarType(t schema.Type) string {
	if t.Base == schema.TypeBool {
		return "bool"
	}
	return t.Base.RustName()
}

// accessorReturnType returns the return type of a table field accessor.
func (f *file) accessorReturnType(sd *schema.StructDef, fd *schema.FieldDef, k FullElementType) string {
	t := fd.Value.Type
	switch k {
	case Integer, Float:
		return scalarType(t)
	case Bool:
		return "bool"
	case Struct:
		return "Option<&'a " + f.wrapDef(&t.StructDef.Definition) + ">"
	case Table:
		return "Option<" + f.wrapDef(&t.StructDef.Definition) + "<'a>>"
	case EnumKey, UnionKey:
		return f.wrapDef(&t.EnumDef.Definition)
	case UnionValue:
		return "Option<flatbuffers::Table<'a>>"
	case String:
		return "Option<&'a str>"
	case VectorOfInteger, VectorOfFloat:
		return "Option<&'a [" + scalarType(t.VectorType()) + "]>"
	case VectorOfBool:
		return "Option<&'a [bool]>"
	case VectorOfEnumKey:
		return "Option<&'a [" + f.wrapDef(&t.EnumDef.Definition) + "]>"
	case VectorOfStruct:
		return "Option<&'a [" + f.wrapDef(&t.StructDef.Definition) + "]>"
	case VectorOfTable:
		return "Option<flatbuffers::Vector<flatbuffers::ForwardsUOffset<" + f.wrapDef(&t.StructDef.Definition) + "<'a>>>>"
	case VectorOfString:
		return "Option<flatbuffers::Vector<flatbuffers::ForwardsUOffset<&'a str>>>"
	case VectorOfUnionValue:
		return "Option<flatbuffers::Vector<flatbuffers::ForwardsUOffset<flatbuffers::Table<'a>>>>"
	default:
		panic(NewSchemaError(sd.Name, fd.Name, "unhandled element type "+k.String(), nil))
	}
}

// accessorBody returns the read expression of a table field accessor.
// Enum and union keys read the underlying scalar and reinterpret it, so
// values unknown to this schema version still read back.
func (f *file) accessorBody(sd *schema.StructDef, fd *schema.FieldDef, k FullElementType) string {
	t := fd.Value.Type
	vt := f.offsetName(sd, fd)
	switch k {
	case Integer, Float, Bool:
		return "self._tab.get::<" + scalarType(t) + ">(" + vt + ", Some(" + f.defaultValue(sd.Name, fd) + ")).unwrap()"
	case Struct:
		return "self._tab.get::<&'a " + f.wrapDef(&t.StructDef.Definition) + ">(" + vt + ", None)"
	case Table:
		return "self._tab.get::<flatbuffers::ForwardsUOffset<" + f.wrapDef(&t.StructDef.Definition) + "<'a>>>(" + vt + ", None)"
	case UnionValue:
		return "self._tab.get::<flatbuffers::ForwardsUOffset<flatbuffers::Table<'a>>>(" + vt + ", None)"
	case EnumKey, UnionKey:
		base := scalarType(t)
		return "unsafe { ::std::mem::transmute(self._tab.get::<" + base + ">(" + vt + ", Some(" +
			f.defaultValue(sd.Name, fd) + " as " + base + ")).unwrap()) }"
	case String:
		return "self._tab.get::<flatbuffers::ForwardsUOffset<&str>>(" + vt + ", None)"
	case VectorOfInteger, VectorOfFloat:
		return "self._tab.get::<flatbuffers::ForwardsUOffset<&[" + scalarType(t.VectorType()) + "]>>(" + vt + ", None)"
	case VectorOfBool:
		return "self._tab.get::<flatbuffers::ForwardsUOffset<&[bool]>>(" + vt + ", None)"
	case VectorOfEnumKey:
		return "self._tab.get::<flatbuffers::ForwardsUOffset<&[" + f.wrapDef(&t.EnumDef.Definition) + "]>>(" + vt + ", None)"
	case VectorOfStruct:
		return "self._tab.get::<flatbuffers::ForwardsUOffset<flatbuffers::SliceOfGeneratedStruct<" +
			f.wrapDef(&t.StructDef.Definition) + ">>>(" + vt + ", None)"
	case VectorOfTable:
		return "self._tab.get::<flatbuffers::ForwardsUOffset<flatbuffers::Vector<flatbuffers::ForwardsUOffset<" +
			f.wrapDef(&t.StructDef.Definition) + "<'a>>>>>(" + vt + ", None)"
	case VectorOfString:
		return "self._tab.get::<flatbuffers::ForwardsUOffset<flatbuffers::Vector<flatbuffers::ForwardsUOffset<&'a str>>>>(" + vt + ", None)"
	case VectorOfUnionValue:
		return "self._tab.get::<flatbuffers::ForwardsUOffset<flatbuffers::Vector<flatbuffers::ForwardsUOffset<flatbuffers::Table<'a>>>>>(" + vt + ", None)"
	default:
		panic(NewSchemaError(sd.Name, fd.Name, "unhandled element type "+k.String(), nil))
	}
}

// nestedAccessor emits <field>_nested_flatbuffer, reading the bytes of a
// field as the root of an independent buffer. The root table is looked up
// by its name as written, then qualified with the current namespace of
// the schema.
func (f *file) nestedAccessor(sd *schema.StructDef, fd *schema.FieldDef, nested string) {
	root := f.schema.LookupStruct(nested)
	if root == nil {
		root = f.schema.LookupStruct(f.schema.CurrentNamespace.FullyQualifiedName(nested))
	}
	if root == nil {
		fatalf(sd.Name, fd.Name, "nested_flatbuffer root %q not found", nested)
	}
	if root.Fixed {
		fatalf(sd.Name, fd.Name, "nested_flatbuffer root %q is not a table", nested)
	}
	typ := f.wrapDef(&root.Definition) + "<'a>"
	field := f.name(fd.Name)
	f.w.Lines(
		"  pub fn "+field+"_nested_flatbuffer(&'a self) -> Option<"+typ+"> {",
		"     match self."+field+"() {",
		"         None => { None }",
		"         Some(data) => {",
		"             use self::flatbuffers::Follow;",
		"             Some(<flatbuffers::ForwardsUOffset<"+typ+">>::follow(data, 0))",
		"         },",
		"     }",
		"  }",
	)
}
