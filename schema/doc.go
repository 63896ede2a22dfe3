// Package schema holds the intermediate representation consumed by the
// FlatBuffers code generator.
//
// The representation mirrors what a FlatBuffers schema parser produces after
// it has resolved every type reference and computed the binary layout facts:
//
//   - [Namespace]: ordered name components of a definition's scope
//   - [Type]: a base type plus optional references to the enum or struct it uses
//   - [EnumDef]: ordinary enums and union discriminant enums
//   - [StructDef]: fixed structs (inline) and tables (offset-indirected)
//   - [FieldDef]: a struct or table member with its vtable offset and padding
//   - [Schema]: every definition of a compilation unit in declaration order
//
// Values of this package are built once (see package compiler/load) and are
// read-only afterwards. The generator never mutates them.
//
// # Layout Facts
//
// Byte offsets, padding and struct sizes are inputs, not outputs:
//
//	struct Vec3 { x:float; y:float; z:float; test1:double; }
//	// FieldDef{Name: "z", Padding: 4}   4 filler bytes after z
//	// StructDef{ByteSize: 24, MinAlign: 8}
//
// Padding is a byte count whose low four bits select 1, 2, 4 and 8 byte
// fillers.
package schema
