package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/flatgen/schema"
)

// monsterFixture is the classic monster schema:
//
//	namespace MyGame.Sample;
//	enum Color:byte { Red = 0, Green, Blue = 2 }
//	union Equipment { Weapon }
//	struct Vec3 { x:float; y:float; z:float; }
//	table Monster {
//	  pos:Vec3; mana:short = 150; hp:short = 100; name:string (required);
//	  friendly:bool = false (deprecated); inventory:[ubyte];
//	  color:Color = Blue; weapons:[Weapon]; equipped:Equipment; path:[Vec3];
//	}
//	table Weapon { name:string; damage:short; }
//	root_type Monster;
//	file_identifier "MONS";
//	file_extension "mon";
type monsterFixture struct {
	schema    *schema.Schema
	ns        *schema.Namespace
	color     *schema.EnumDef
	equipment *schema.EnumDef
	vec3      *schema.StructDef
	monster   *schema.StructDef
	weapon    *schema.StructDef
}

func newMonsterFixture() *monsterFixture {
	root := schema.NewNamespace("")
	game := schema.NewNamespace("MyGame")
	ns := schema.NewNamespace("MyGame.Sample")
	fx := &monsterFixture{ns: ns}

	fx.color = &schema.EnumDef{
		Definition: schema.Definition{Name: "Color", Namespace: ns, Doc: []string{" Colors of a monster."}},
		Values: []*schema.EnumVal{
			{Name: "Red", Value: 0},
			{Name: "Green", Value: 1},
			{Name: "Blue", Value: 2},
		},
		UnderlyingType: schema.Type{Base: schema.TypeByte},
	}
	fx.vec3 = &schema.StructDef{
		Definition: schema.Definition{Name: "Vec3", Namespace: ns},
		Fixed:      true,
		MinAlign:   4,
		ByteSize:   12,
		Fields: []*schema.FieldDef{
			{Name: "x", Value: schema.Value{Type: schema.Type{Base: schema.TypeFloat}, Constant: "0", Offset: 0}},
			{Name: "y", Value: schema.Value{Type: schema.Type{Base: schema.TypeFloat}, Constant: "0", Offset: 4}},
			{Name: "z", Value: schema.Value{Type: schema.Type{Base: schema.TypeFloat}, Constant: "0", Offset: 8}},
		},
	}
	fx.weapon = &schema.StructDef{
		Definition: schema.Definition{Name: "Weapon", Namespace: ns},
		Fields: []*schema.FieldDef{
			{Name: "name", Value: schema.Value{Type: schema.Type{Base: schema.TypeString}, Constant: "0", Offset: 4}},
			{Name: "damage", Value: schema.Value{Type: schema.Type{Base: schema.TypeShort}, Constant: "0", Offset: 6}},
		},
	}
	fx.equipment = &schema.EnumDef{
		Definition: schema.Definition{Name: "Equipment", Namespace: ns},
		IsUnion:    true,
		Values: []*schema.EnumVal{
			{Name: "NONE", Value: 0},
			{Name: "Weapon", Value: 1, UnionType: schema.Type{Base: schema.TypeStruct, StructDef: fx.weapon}},
		},
		UnderlyingType: schema.Type{Base: schema.TypeUType},
	}
	fx.monster = &schema.StructDef{
		Definition: schema.Definition{Name: "Monster", Namespace: ns},
		Fields: []*schema.FieldDef{
			{Name: "pos", Value: schema.Value{Type: schema.Type{Base: schema.TypeStruct, StructDef: fx.vec3}, Constant: "0", Offset: 4}},
			{Name: "mana", Value: schema.Value{Type: schema.Type{Base: schema.TypeShort}, Constant: "150", Offset: 6}},
			{Name: "hp", Value: schema.Value{Type: schema.Type{Base: schema.TypeShort}, Constant: "100", Offset: 8}},
			{Name: "name", Required: true, Value: schema.Value{Type: schema.Type{Base: schema.TypeString}, Constant: "0", Offset: 10}},
			{Name: "friendly", Deprecated: true, Value: schema.Value{Type: schema.Type{Base: schema.TypeBool}, Constant: "0", Offset: 12}},
			{Name: "inventory", Value: schema.Value{Type: schema.Type{Base: schema.TypeVector, Element: schema.TypeUByte}, Constant: "0", Offset: 14}},
			{Name: "color", Value: schema.Value{Type: schema.Type{Base: schema.TypeByte, EnumDef: fx.color}, Constant: "2", Offset: 16}},
			{Name: "weapons", Value: schema.Value{Type: schema.Type{Base: schema.TypeVector, Element: schema.TypeStruct, StructDef: fx.weapon}, Constant: "0", Offset: 18}},
			{Name: "equipped_type", Value: schema.Value{Type: schema.Type{Base: schema.TypeUType, EnumDef: fx.equipment}, Constant: "0", Offset: 20}},
			{Name: "equipped", Value: schema.Value{Type: schema.Type{Base: schema.TypeUnion, EnumDef: fx.equipment}, Constant: "0", Offset: 22}},
			{Name: "path", Value: schema.Value{Type: schema.Type{Base: schema.TypeVector, Element: schema.TypeStruct, StructDef: fx.vec3}, Constant: "0", Offset: 24}},
		},
	}
	fx.schema = &schema.Schema{
		Namespaces:       []*schema.Namespace{root, game, ns},
		Enums:            []*schema.EnumDef{fx.color, fx.equipment},
		Structs:          []*schema.StructDef{fx.vec3, fx.monster, fx.weapon},
		Root:             fx.monster,
		FileIdentifier:   "MONS",
		FileExtension:    "mon",
		CurrentNamespace: ns,
	}
	return fx
}

// newTestFile returns run state positioned in ns, with the writer
// emptied so tests only see what they emit.
func newTestFile(s *schema.Schema, ns *schema.Namespace, opts ...Option) *file {
	cfg := MustNewConfig(opts...)
	f := &file{cfg: cfg, schema: s, w: NewWriter(), log: cfg.Logger}
	f.setNamespace(ns)
	f.w.Reset()
	return f
}

// scalarField returns a table field of the given base type.
func scalarField(name string, bt schema.BaseType, constant string) *schema.FieldDef {
	return &schema.FieldDef{Name: name, Value: schema.Value{Type: schema.Type{Base: bt}, Constant: constant}}
}

// schemaPanic runs fn and returns the *SchemaError it panicked with.
func schemaPanic(t *testing.T, fn func()) *SchemaError {
	t.Helper()
	var se *SchemaError
	func() {
		defer func() {
			se, _ = recover().(*SchemaError)
		}()
		fn()
	}()
	require.NotNil(t, se, "expected a schema error panic")
	return se
}

// newEnum returns a byte enum in the root namespace with the given
// name/value pairs.
func newEnum(name string, vals ...any) *schema.EnumDef {
	ed := &schema.EnumDef{
		Definition:     schema.Definition{Name: name, Namespace: schema.NewNamespace("")},
		UnderlyingType: schema.Type{Base: schema.TypeByte},
	}
	for i := 0; i+1 < len(vals); i += 2 {
		ed.Values = append(ed.Values, &schema.EnumVal{Name: vals[i].(string), Value: int64(vals[i+1].(int))})
	}
	return ed
}
