package load

import (
	"fmt"
	"strings"

	"github.com/syssam/flatgen/schema"
)

// resolver builds a schema from a document. Definitions are created in a
// first pass so fields can reference definitions declared after them.
type resolver struct {
	doc        *Document
	s          *schema.Schema
	namespaces map[string]*schema.Namespace
	enums      map[string]*schema.EnumDef
	structs    map[string]*schema.StructDef
}

// Resolve binds every reference of the document and returns the schema.
func Resolve(doc *Document) (*schema.Schema, error) {
	r := &resolver{
		doc:        doc,
		s:          &schema.Schema{FileIdentifier: doc.FileIdentifier, FileExtension: doc.FileExtension},
		namespaces: make(map[string]*schema.Namespace),
		enums:      make(map[string]*schema.EnumDef),
		structs:    make(map[string]*schema.StructDef),
	}
	if err := r.declare(); err != nil {
		return nil, err
	}
	for i, e := range doc.Enums {
		if err := r.enum(r.s.Enums[i], e); err != nil {
			return nil, err
		}
	}
	for i, st := range doc.Structs {
		if err := r.fields(r.s.Structs[i], st); err != nil {
			return nil, err
		}
	}
	if err := r.root(); err != nil {
		return nil, err
	}
	return r.s, nil
}

// declare creates the namespaces and an empty definition for every enum
// and struct.
func (r *resolver) declare() error {
	for _, dotted := range r.doc.Namespaces {
		ns, ok := r.namespaces[dotted]
		if !ok {
			ns = schema.NewNamespace(dotted)
			r.namespaces[dotted] = ns
		}
		r.s.Namespaces = append(r.s.Namespaces, ns)
	}
	// Definitions in the root namespace do not require it to be listed.
	if _, ok := r.namespaces[""]; !ok {
		root := schema.NewNamespace("")
		r.namespaces[""] = root
		r.s.Namespaces = append([]*schema.Namespace{root}, r.s.Namespaces...)
	}

	for _, e := range r.doc.Enums {
		def, err := r.definition(e.Name, e.Namespace, e.Doc, e.Generated, e.Attributes)
		if err != nil {
			return err
		}
		fqn := def.FullyQualifiedName()
		if r.defined(fqn) {
			return &Error{Definition: fqn, Err: ErrDuplicateDefinition}
		}
		ed := &schema.EnumDef{Definition: def, IsUnion: e.Union, UsesTypeAliases: e.UsesTypeAliases}
		r.enums[fqn] = ed
		r.s.Enums = append(r.s.Enums, ed)
	}
	for _, st := range r.doc.Structs {
		def, err := r.definition(st.Name, st.Namespace, st.Doc, st.Generated, st.Attributes)
		if err != nil {
			return err
		}
		fqn := def.FullyQualifiedName()
		if r.defined(fqn) {
			return &Error{Definition: fqn, Err: ErrDuplicateDefinition}
		}
		sd := &schema.StructDef{
			Definition: def,
			Fixed:      st.Fixed,
			SortBySize: st.SortBySize,
			MinAlign:   st.MinAlign,
			ByteSize:   st.ByteSize,
		}
		r.structs[fqn] = sd
		r.s.Structs = append(r.s.Structs, sd)
	}

	if cur := r.doc.CurrentNamespace; cur != "" {
		ns, ok := r.namespaces[cur]
		if !ok {
			return &Error{Err: fmt.Errorf("%w %q", ErrUnknownNamespace, cur)}
		}
		r.s.CurrentNamespace = ns
	} else {
		r.s.CurrentNamespace = r.namespaces[""]
	}
	return nil
}

func (r *resolver) definition(name, ns string, doc []string, generated bool, attrs map[string]string) (schema.Definition, error) {
	n, ok := r.namespaces[ns]
	if !ok {
		return schema.Definition{}, &Error{Definition: name, Err: fmt.Errorf("%w %q", ErrUnknownNamespace, ns)}
	}
	return schema.Definition{
		Name:       name,
		Namespace:  n,
		Doc:        doc,
		Generated:  generated,
		Attributes: schema.Attributes(attrs),
	}, nil
}

func (r *resolver) defined(fqn string) bool {
	_, isEnum := r.enums[fqn]
	_, isStruct := r.structs[fqn]
	return isEnum || isStruct
}

// enum resolves the underlying type and the union member types.
func (r *resolver) enum(ed *schema.EnumDef, e *Enum) error {
	fail := func(err error) error {
		return &Error{Definition: ed.FullyQualifiedName(), Err: err}
	}
	underlying := e.Underlying
	if underlying == "" {
		underlying = "int"
		if e.Union {
			underlying = "utype"
		}
	}
	bt, err := schema.ParseBaseType(underlying)
	if err != nil {
		return fail(err)
	}
	ed.UnderlyingType = schema.Type{Base: bt}

	for _, v := range e.Values {
		ev := &schema.EnumVal{Name: v.Name, Value: v.Value, Doc: v.Doc}
		if v.UnionType != nil {
			t, err := r.typ(ed.Namespace, *v.UnionType)
			if err != nil {
				return &Error{Definition: ed.FullyQualifiedName(), Field: v.Name, Err: err}
			}
			ev.UnionType = t
		}
		ed.Values = append(ed.Values, ev)
	}
	return nil
}

// fields resolves the fields of a struct or table.
func (r *resolver) fields(sd *schema.StructDef, st *Struct) error {
	for _, f := range st.Fields {
		t, err := r.typ(sd.Namespace, f.Type)
		if err != nil {
			return &Error{Definition: sd.FullyQualifiedName(), Field: f.Name, Err: err}
		}
		constant := strings.TrimSpace(f.Default)
		if constant == "" {
			constant = "0"
			if t.Base.IsFloat() {
				constant = "0.0"
			}
		}
		sd.Fields = append(sd.Fields, &schema.FieldDef{
			Name:       f.Name,
			Doc:        f.Doc,
			Value:      schema.Value{Type: t, Constant: constant, Offset: f.Offset},
			Padding:    f.Padding,
			Deprecated: f.Deprecated,
			Required:   f.Required,
			Key:        f.Key,
			Attributes: schema.Attributes(f.Attributes),
		})
	}
	return nil
}

// typ resolves a type reference seen from namespace ns.
func (r *resolver) typ(ns *schema.Namespace, ref TypeRef) (schema.Type, error) {
	base, err := schema.ParseBaseType(ref.Base)
	if err != nil {
		return schema.Type{}, err
	}
	t := schema.Type{Base: base}
	target := base
	if base == schema.TypeVector {
		if t.Element, err = schema.ParseBaseType(ref.Element); err != nil {
			return schema.Type{}, fmt.Errorf("vector element: %w", err)
		}
		switch t.Element {
		case schema.TypeVector:
			return schema.Type{}, fmt.Errorf("%w: vector of vectors", ErrInvalidType)
		case schema.TypeNone:
			return schema.Type{}, fmt.Errorf("%w: vector of none", ErrInvalidType)
		}
		target = t.Element
	}

	switch {
	case target == schema.TypeStruct:
		sd := r.lookupStruct(ns, ref.Ref)
		if sd == nil {
			return schema.Type{}, fmt.Errorf("%w %q", ErrUnknownReference, ref.Ref)
		}
		t.StructDef = sd
	case target == schema.TypeUnion || target == schema.TypeUType:
		if ref.Ref == "" && target == schema.TypeUType {
			break
		}
		ed := r.lookupEnum(ns, ref.Ref)
		if ed == nil || !ed.IsUnion {
			return schema.Type{}, fmt.Errorf("%w: union %q", ErrUnknownReference, ref.Ref)
		}
		t.EnumDef = ed
	case ref.Ref != "":
		ed := r.lookupEnum(ns, ref.Ref)
		if ed == nil || ed.IsUnion {
			return schema.Type{}, fmt.Errorf("%w: enum %q", ErrUnknownReference, ref.Ref)
		}
		t.EnumDef = ed
	}
	return t, nil
}

// candidates returns the qualified names name may denote from inside ns,
// innermost first: name inside ns, inside each enclosing namespace, then
// name as written.
func candidates(ns *schema.Namespace, name string) []string {
	var names []string
	if ns != nil {
		for i := len(ns.Components); i > 0; i-- {
			names = append(names, strings.Join(ns.Components[:i], ".")+"."+name)
		}
	}
	return append(names, name)
}

func (r *resolver) lookupStruct(ns *schema.Namespace, name string) *schema.StructDef {
	for _, c := range candidates(ns, name) {
		if sd, ok := r.structs[c]; ok {
			return sd
		}
	}
	return nil
}

func (r *resolver) lookupEnum(ns *schema.Namespace, name string) *schema.EnumDef {
	for _, c := range candidates(ns, name) {
		if ed, ok := r.enums[c]; ok {
			return ed
		}
	}
	return nil
}

// root binds the root table, looked up from the current namespace.
func (r *resolver) root() error {
	if r.doc.Root == "" {
		return nil
	}
	sd := r.lookupStruct(r.s.CurrentNamespace, r.doc.Root)
	if sd == nil {
		return &Error{Err: fmt.Errorf("root type: %w %q", ErrUnknownReference, r.doc.Root)}
	}
	r.s.Root = sd
	return nil
}
