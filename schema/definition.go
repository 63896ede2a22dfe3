package schema

// Attributes holds the free-form attributes of a definition or field,
// e.g. nested_flatbuffer or cpp_ptr_type. Values are the attribute constants.
type Attributes map[string]string

// Lookup returns the attribute value and whether it is present.
func (a Attributes) Lookup(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// Definition holds what enums, structs and tables have in common.
type Definition struct {
	// Name is the schema name of the definition.
	Name string
	// Namespace is the scope the definition was declared in.
	Namespace *Namespace
	// Doc holds the documentation lines, without comment markers.
	Doc []string
	// Generated marks definitions whose code was already emitted, typically
	// by the run that handled an included file.
	Generated bool
	// Attributes of the definition.
	Attributes Attributes
}

// FullyQualifiedName returns the dotted name including the namespace.
func (d *Definition) FullyQualifiedName() string {
	return d.Namespace.FullyQualifiedName(d.Name)
}

type (
	// EnumVal is a single named value of an enum or union.
	EnumVal struct {
		Name  string
		Value int64
		Doc   []string
		// UnionType is the payload type of a union member. Its base is
		// TypeNone for the NONE member.
		UnionType Type
	}

	// EnumDef is an enum, or the discriminant enum of a union.
	EnumDef struct {
		Definition
		// Values in declaration order. They need not be sorted or contiguous.
		Values []*EnumVal
		// IsUnion distinguishes a union's discriminant from an ordinary enum.
		IsUnion bool
		// UsesTypeAliases is set when several union members share a payload type.
		UsesTypeAliases bool
		// UnderlyingType is the integer type of the enum.
		UnderlyingType Type
	}
)

// ReverseLookup returns the first declared value equal to v, or nil.
func (e *EnumDef) ReverseLookup(v int64) *EnumVal {
	for _, ev := range e.Values {
		if ev.Value == v {
			return ev
		}
	}
	return nil
}

// Lookup returns the value with the given name, or nil.
func (e *EnumDef) Lookup(name string) *EnumVal {
	for _, ev := range e.Values {
		if ev.Name == name {
			return ev
		}
	}
	return nil
}

type (
	// Value is the typed value slot of a field.
	Value struct {
		Type Type
		// Constant is the default value as written in the schema.
		Constant string
		// Offset is the vtable offset of a table field, or the byte offset
		// of a struct field.
		Offset uint16
	}

	// FieldDef is a member of a struct or table.
	FieldDef struct {
		Name  string
		Doc   []string
		Value Value
		// Padding is the number of filler bytes following the field in a
		// fixed struct.
		Padding    uint
		Deprecated bool
		Required   bool
		Key        bool
		Attributes Attributes
	}

	// StructDef is a fixed struct or a table.
	StructDef struct {
		Definition
		// Fields in declaration order.
		Fields []*FieldDef
		// Fixed is true for inline structs and false for tables.
		Fixed bool
		// SortBySize asks builders to write fields grouped by size.
		SortBySize bool
		MinAlign   int
		ByteSize   int
	}
)

// Field returns the field with the given name, or nil.
func (s *StructDef) Field(name string) *FieldDef {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Schema is a fully parsed compilation unit.
type Schema struct {
	// Namespaces in declaration order.
	Namespaces []*Namespace
	// Enums in declaration order, unions included.
	Enums []*EnumDef
	// Structs in declaration order, tables included.
	Structs []*StructDef
	// Root is the designated root table, if any.
	Root *StructDef
	// FileIdentifier is the 4 character buffer identifier, if declared.
	FileIdentifier string
	// FileExtension is the buffer file extension, if declared.
	FileExtension string
	// CurrentNamespace is the namespace in effect at the end of the schema.
	CurrentNamespace *Namespace
}

// LookupStruct returns the struct or table with the fully qualified name.
func (s *Schema) LookupStruct(name string) *StructDef {
	for _, sd := range s.Structs {
		if sd.FullyQualifiedName() == name {
			return sd
		}
	}
	return nil
}

// LookupEnum returns the enum or union with the fully qualified name.
func (s *Schema) LookupEnum(name string) *EnumDef {
	for _, ed := range s.Enums {
		if ed.FullyQualifiedName() == name {
			return ed
		}
	}
	return nil
}
