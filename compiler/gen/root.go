package gen

import (
	"strconv"

	"github.com/syssam/flatgen/schema"
)

// genRoot emits the buffer level functions of the root table. It runs at
// the top level after every module is closed, so the table is referenced
// by its path from the crate root.
func (f *file) genRoot(sd *schema.StructDef) {
	if sd.Fixed {
		fatalf(sd.Name, "", "root type must be a table")
	}
	name := f.name(sd.Name)
	ident := f.schema.FileIdentifier

	f.w.SetValue("STRUCT_NAME", f.wrapDef(&sd.Definition))
	f.w.SetValue("STRUCT_NAME_SNAKECASE", SnakeCase(name))
	f.w.SetValue("STRUCT_NAME_CAPS", UpperCase(SnakeCase(name)))

	f.w.Lines(
		"#[inline]",
		"pub fn get_root_as_{{STRUCT_NAME_SNAKECASE}}<'a>(buf: &'a [u8]) -> {{STRUCT_NAME}}<'a> {",
		"  flatbuffers::get_root::<{{STRUCT_NAME}}<'a>>(buf)",
		"}",
		"",
		"#[inline]",
		"pub fn get_size_prefixed_root_as_{{STRUCT_NAME_SNAKECASE}}<'a>(buf: &'a [u8]) -> {{STRUCT_NAME}}<'a> {",
		"  flatbuffers::get_size_prefixed_root::<{{STRUCT_NAME}}<'a>>(buf)",
		"}",
		"",
	)

	finishID := "None"
	if ident != "" {
		finishID = "Some({{STRUCT_NAME_CAPS}}_IDENTIFIER)"
		f.w.Lines(
			"pub const {{STRUCT_NAME_CAPS}}_IDENTIFIER: &'static str = "+strconv.Quote(ident)+";",
			"",
			"#[inline]",
			"pub fn {{STRUCT_NAME_SNAKECASE}}_buffer_has_identifier(buf: &[u8]) -> bool {",
			"  return flatbuffers::buffer_has_identifier(",
			"      buf, {{STRUCT_NAME_CAPS}}_IDENTIFIER, false);",
			"}",
			"",
			"#[inline]",
			"pub fn {{STRUCT_NAME_SNAKECASE}}_size_prefixed_buffer_has_identifier(buf: &[u8]) -> bool {",
			"  return flatbuffers::buffer_has_identifier(",
			"      buf, {{STRUCT_NAME_CAPS}}_IDENTIFIER, true);",
			"}",
			"",
		)
	}
	if ext := f.schema.FileExtension; ext != "" {
		f.w.Line("pub const {{STRUCT_NAME_CAPS}}_EXTENSION: &'static str = " + strconv.Quote(ext) + ";")
		f.w.Line("")
	}

	f.w.Lines(
		"#[inline]",
		"pub fn finish_{{STRUCT_NAME_SNAKECASE}}_buffer<'a, 'b>(",
		"    fbb: &'b mut flatbuffers::FlatBufferBuilder<'a>,",
		"    root: flatbuffers::Offset<{{STRUCT_NAME}}<'a>>) {",
		"  fbb.finish(root, "+finishID+");",
		"}",
		"",
		"#[inline]",
		"pub fn finish_size_prefixed_{{STRUCT_NAME_SNAKECASE}}_buffer<'a, 'b>(",
		"    fbb: &'b mut flatbuffers::FlatBufferBuilder<'a>,",
		"    root: flatbuffers::Offset<{{STRUCT_NAME}}<'a>>) {",
		"  fbb.finish_size_prefixed(root, "+finishID+");",
		"}",
	)
}
