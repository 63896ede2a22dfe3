package load

// Document is the schema IR as written by the FlatBuffers parser: every
// definition in declaration order with the layout facts it computed.
// References between definitions are fully qualified names, resolved by
// Decode into a *schema.Schema.
type Document struct {
	// Namespaces in declaration order. The root namespace is implied
	// when a definition lives in it.
	Namespaces       []string  `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
	Enums            []*Enum   `json:"enums,omitempty" yaml:"enums,omitempty"`
	Structs          []*Struct `json:"structs,omitempty" yaml:"structs,omitempty"`
	Root             string    `json:"root,omitempty" yaml:"root,omitempty"`
	FileIdentifier   string    `json:"file_identifier,omitempty" yaml:"file_identifier,omitempty"`
	FileExtension    string    `json:"file_extension,omitempty" yaml:"file_extension,omitempty"`
	CurrentNamespace string    `json:"current_namespace,omitempty" yaml:"current_namespace,omitempty"`
}

// Enum is an enum or union declaration.
type Enum struct {
	Name            string            `json:"name" yaml:"name"`
	Namespace       string            `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Doc             []string          `json:"doc,omitempty" yaml:"doc,omitempty"`
	Generated       bool              `json:"generated,omitempty" yaml:"generated,omitempty"`
	Union           bool              `json:"union,omitempty" yaml:"union,omitempty"`
	UsesTypeAliases bool              `json:"uses_type_aliases,omitempty" yaml:"uses_type_aliases,omitempty"`
	Underlying      string            `json:"underlying,omitempty" yaml:"underlying,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Values          []*EnumValue      `json:"values,omitempty" yaml:"values,omitempty"`
}

// EnumValue is a named value of an enum, or a member of a union.
type EnumValue struct {
	Name  string   `json:"name" yaml:"name"`
	Value int64    `json:"value" yaml:"value"`
	Doc   []string `json:"doc,omitempty" yaml:"doc,omitempty"`
	// UnionType is the payload type of a union member.
	UnionType *TypeRef `json:"union_type,omitempty" yaml:"union_type,omitempty"`
}

// Struct is a table, or a fixed struct when Fixed is set.
type Struct struct {
	Name       string            `json:"name" yaml:"name"`
	Namespace  string            `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Doc        []string          `json:"doc,omitempty" yaml:"doc,omitempty"`
	Generated  bool              `json:"generated,omitempty" yaml:"generated,omitempty"`
	Fixed      bool              `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	SortBySize bool              `json:"sortbysize,omitempty" yaml:"sortbysize,omitempty"`
	MinAlign   int               `json:"minalign,omitempty" yaml:"minalign,omitempty"`
	ByteSize   int               `json:"bytesize,omitempty" yaml:"bytesize,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Fields     []*Field          `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field is a field of a table or struct.
type Field struct {
	Name string   `json:"name" yaml:"name"`
	Doc  []string `json:"doc,omitempty" yaml:"doc,omitempty"`
	Type TypeRef  `json:"type" yaml:"type"`
	// Default is the declared constant; empty means "0".
	Default    string            `json:"default,omitempty" yaml:"default,omitempty"`
	Offset     uint16            `json:"offset,omitempty" yaml:"offset,omitempty"`
	Padding    uint              `json:"padding,omitempty" yaml:"padding,omitempty"`
	Deprecated bool              `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Required   bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Key        bool              `json:"key,omitempty" yaml:"key,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// TypeRef is a field type as written in the IR: a base type name, the
// element name for vectors, and the qualified name of the referenced
// struct, table, enum or union.
type TypeRef struct {
	Base    string `json:"base" yaml:"base"`
	Element string `json:"element,omitempty" yaml:"element,omitempty"`
	Ref     string `json:"ref,omitempty" yaml:"ref,omitempty"`
}
