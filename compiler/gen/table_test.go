package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/flatgen/schema"
)

func genMonster(t *testing.T, opts ...Option) (*file, string) {
	t.Helper()
	fx := newMonsterFixture()
	f := newTestFile(fx.schema, fx.ns, opts...)
	f.genTable(fx.monster)
	return f, f.w.String()
}

func TestGenTableAccessors(t *testing.T) {
	f, out := genMonster(t)

	assert.Contains(t, out, "pub enum MonsterOffset {}\n#[derive(Copy, Clone, Debug, PartialEq)]\npub struct Monster<'a> {\n")
	assert.Contains(t, out, "impl<'a> flatbuffers::Follow<'a> for Monster<'a> {\n")
	assert.Contains(t, out, "    pub fn init_from_table(table: flatbuffers::Table<'a>) -> Self {\n        Monster {\n")

	tests := map[string]string{
		"pos":       "  pub fn pos(&'a self) -> Option<&'a Vec3> {\n    self._tab.get::<&'a Vec3>(Monster::VT_POS, None)\n  }\n",
		"hp":        "  pub fn hp(&'a self) -> i16 {\n    self._tab.get::<i16>(Monster::VT_HP, Some(100)).unwrap()\n  }\n",
		"name":      "  pub fn name(&'a self) -> Option<&'a str> {\n    self._tab.get::<flatbuffers::ForwardsUOffset<&str>>(Monster::VT_NAME, None)\n  }\n",
		"inventory": "  pub fn inventory(&'a self) -> Option<&'a [u8]> {\n    self._tab.get::<flatbuffers::ForwardsUOffset<&[u8]>>(Monster::VT_INVENTORY, None)\n  }\n",
		"color":     "  pub fn color(&'a self) -> Color {\n    unsafe { ::std::mem::transmute(self._tab.get::<i8>(Monster::VT_COLOR, Some(Color::Blue as i8)).unwrap()) }\n  }\n",
		"weapons":   "  pub fn weapons(&'a self) -> Option<flatbuffers::Vector<flatbuffers::ForwardsUOffset<Weapon<'a>>>> {\n",
		"type":      "  pub fn equipped_type(&'a self) -> Equipment {\n    unsafe { ::std::mem::transmute(self._tab.get::<u8>(Monster::VT_EQUIPPED_TYPE, Some(Equipment::NONE as u8)).unwrap()) }\n  }\n",
		"union":     "  pub fn equipped(&'a self) -> Option<flatbuffers::Table<'a>> {\n    self._tab.get::<flatbuffers::ForwardsUOffset<flatbuffers::Table<'a>>>(Monster::VT_EQUIPPED, None)\n  }\n",
		"path":      "  pub fn path(&'a self) -> Option<&'a [Vec3]> {\n    self._tab.get::<flatbuffers::ForwardsUOffset<flatbuffers::SliceOfGeneratedStruct<Vec3>>>(Monster::VT_PATH, None)\n  }\n",
	}
	for name, want := range tests {
		assert.Contains(t, out, "  #[inline]\n"+want, name)
	}
	assert.Empty(t, f.warnings)
}

func TestGenTableOffsets(t *testing.T) {
	_, out := genMonster(t)

	assert.Contains(t, out, "    pub const VT_POS: flatbuffers::VOffsetT = 4;\n    pub const VT_MANA: flatbuffers::VOffsetT = 6;\n")
	assert.Contains(t, out, "    pub const VT_NAME: flatbuffers::VOffsetT = 10;\n    pub const VT_INVENTORY: flatbuffers::VOffsetT = 14;\n")
	assert.Contains(t, out, "    pub const VT_PATH: flatbuffers::VOffsetT = 24;\n\n")
}

func TestGenTableDeprecated(t *testing.T) {
	_, out := genMonster(t)
	assert.NotContains(t, out, "friendly")
	assert.NotContains(t, out, "VT_FRIENDLY")
	// The vtable still has a slot for every declared field.
	assert.Contains(t, out, "    let start = _fbb.start_table(11);\n")
}

func TestGenTableUnionAccessor(t *testing.T) {
	_, out := genMonster(t)
	assert.Contains(t, out, "  #[inline]\n"+
		"  pub fn equipped_as_weapon(&'a self) -> Option<Weapon<'a>> {\n"+
		"    if self.equipped_type() == Equipment::Weapon {\n"+
		"      self.equipped().map(|u| Weapon::init_from_table(u))\n"+
		"    } else {\n"+
		"      None\n"+
		"    }\n"+
		"  }\n")
	assert.NotContains(t, out, "equipped_as_n_o_n_e")
	// Variant accessors close the accessor impl.
	assert.Less(t, strings.Index(out, "pub fn path("), strings.Index(out, "pub fn equipped_as_weapon("))
	assert.Less(t, strings.Index(out, "pub fn equipped_as_weapon("), strings.Index(out, "pub struct MonsterArgs<'a>"))
}

func TestGenTableCreate(t *testing.T) {
	_, out := genMonster(t)
	assert.Contains(t, out, "    pub fn create<'x: 'y, 'y: 'z, 'z>(\n"+
		"        _fbb: &'z mut flatbuffers::FlatBufferBuilder<'x>,\n"+
		"        args: &'y MonsterArgs<'y>) -> flatbuffers::Offset<Monster<'x>> {\n"+
		"      let mut builder = MonsterBuilder::new(_fbb);\n"+
		"      if let Some(x) = args.pos { builder.add_pos(x); }\n"+
		"      builder.add_mana(args.mana);\n"+
		"      builder.add_hp(args.hp);\n"+
		"      if let Some(x) = args.name { builder.add_name(x); }\n"+
		"      if let Some(x) = args.inventory { builder.add_inventory(x); }\n"+
		"      builder.add_color(args.color);\n"+
		"      if let Some(x) = args.weapons { builder.add_weapons(x); }\n"+
		"      builder.add_equipped_type(args.equipped_type);\n"+
		"      if let Some(x) = args.equipped { builder.add_equipped(x); }\n"+
		"      if let Some(x) = args.path { builder.add_path(x); }\n"+
		"      builder.finish()\n"+
		"    }\n")
}

func TestGenTableArgs(t *testing.T) {
	_, out := genMonster(t)
	assert.Contains(t, out, "pub struct MonsterArgs<'a> {\n"+
		"    pub pos: Option<&'a Vec3>,\n"+
		"    pub mana: i16,\n"+
		"    pub hp: i16,\n"+
		"    pub name: Option<flatbuffers::Offset<&'a str>>,\n"+
		"    pub inventory: Option<flatbuffers::Offset<flatbuffers::Vector<'a, u8>>>,\n"+
		"    pub color: Color,\n"+
		"    pub weapons: Option<flatbuffers::Offset<flatbuffers::Vector<'a, flatbuffers::ForwardsUOffset<Weapon<'a>>>>>,\n"+
		"    pub equipped_type: Equipment,\n"+
		"    pub equipped: Option<flatbuffers::Offset<flatbuffers::UnionMarker>>,\n"+
		"    pub path: Option<flatbuffers::Offset<flatbuffers::Vector<'a, Vec3>>>,\n"+
		"    pub _phantom: PhantomData<&'a ()>,\n"+
		"}\n")
	assert.Contains(t, out, "        MonsterArgs {\n"+
		"            pos: None,\n"+
		"            mana: 150,\n"+
		"            hp: 100,\n"+
		"            name: None, // required\n"+
		"            inventory: None,\n"+
		"            color: Color::Blue,\n"+
		"            weapons: None,\n"+
		"            equipped_type: Equipment::NONE,\n"+
		"            equipped: None,\n"+
		"            path: None,\n"+
		"            _phantom: PhantomData,\n")
}

func TestGenTableBuilder(t *testing.T) {
	_, out := genMonster(t)

	assert.Contains(t, out, "pub struct MonsterBuilder<'a: 'b, 'b> {\n")
	assert.Contains(t, out, "  pub fn add_pos(&mut self, pos: &'b Vec3) {\n    self.fbb_.push_slot_struct::<Vec3>(Monster::VT_POS, pos);\n  }\n")
	assert.Contains(t, out, "  pub fn add_mana(&mut self, mana: i16) {\n    self.fbb_.push_slot_scalar::<i16>(Monster::VT_MANA, mana, 150);\n  }\n")
	assert.Contains(t, out, "  pub fn add_name(&mut self, name: flatbuffers::Offset<&'b str>) {\n    self.fbb_.push_slot_offset_relative(Monster::VT_NAME, name);\n  }\n")
	assert.Contains(t, out, "  pub fn add_color(&mut self, color: Color) {\n    self.fbb_.push_slot_scalar::<i8>(Monster::VT_COLOR, color as i8, Color::Blue as i8);\n  }\n")
	assert.Contains(t, out, "  pub fn add_equipped_type(&mut self, equipped_type: Equipment) {\n    self.fbb_.push_slot_scalar::<u8>(Monster::VT_EQUIPPED_TYPE, equipped_type as u8, Equipment::NONE as u8);\n  }\n")
	assert.Contains(t, out, "  pub fn add_weapons(&mut self, weapons: flatbuffers::Offset<flatbuffers::Vector<'b, flatbuffers::ForwardsUOffset<Weapon<'b>>>>) {\n")
	assert.Contains(t, out, "    let o = self.fbb_.end_table(self.start_);\n    self.fbb_.required(o, Monster::VT_NAME, \"name\");\n    flatbuffers::Offset::new(o.value())\n")
	assert.Equal(t, 1, strings.Count(out, "self.fbb_.required("))
}

func TestGenTableEmpty(t *testing.T) {
	sd := &schema.StructDef{Definition: schema.Definition{Name: "Empty", Namespace: schema.NewNamespace("")}}
	f := newTestFile(&schema.Schema{}, nil)
	f.genTable(sd)
	out := f.w.String()

	assert.Contains(t, out, "        _args: &'y EmptyArgs<'y>) -> flatbuffers::Offset<Empty<'x>> {\n")
	assert.Contains(t, out, "    let start = _fbb.start_table(0);\n")
	assert.NotContains(t, out, "VOffsetT")
	assert.Contains(t, out, "pub struct EmptyArgs<'a> {\n    pub _phantom: PhantomData<&'a ()>,\n}\n")
}

func sizedTable(sortBySize bool) *schema.StructDef {
	return &schema.StructDef{
		Definition: schema.Definition{Name: "Sized", Namespace: schema.NewNamespace("")},
		SortBySize: sortBySize,
		Fields: []*schema.FieldDef{
			scalarField("a", schema.TypeUByte, "0"),
			scalarField("b", schema.TypeLong, "0"),
			scalarField("c", schema.TypeInt, "0"),
			scalarField("s", schema.TypeString, "0"),
			scalarField("d", schema.TypeDouble, "0"),
			scalarField("e", schema.TypeShort, "0"),
		},
	}
}

func fieldNames(fds []*schema.FieldDef) []string {
	names := make([]string, len(fds))
	for i, fd := range fds {
		names[i] = fd.Name
	}
	return names
}

func TestWriteOrder(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "s", "d", "e"}, fieldNames(writeOrder(sizedTable(false))))
	assert.Equal(t, []string{"b", "d", "c", "s", "e", "a"}, fieldNames(writeOrder(sizedTable(true))))

	sd := sizedTable(true)
	sd.Fields[1].Deprecated = true
	assert.Equal(t, []string{"d", "c", "s", "e", "a"}, fieldNames(writeOrder(sd)))

	t.Run("create follows the write order", func(t *testing.T) {
		f := newTestFile(&schema.Schema{}, nil)
		f.genTable(sizedTable(true))
		out := f.w.String()
		prev := -1
		for _, name := range []string{"b", "d", "c", "s", "e", "a"} {
			i := strings.Index(out, "builder.add_"+name+"(")
			require.GreaterOrEqual(t, i, 0, name)
			assert.Greater(t, i, prev, name)
			prev = i
		}
	})
}

func TestGenTableKeywordField(t *testing.T) {
	sd := &schema.StructDef{
		Definition: schema.Definition{Name: "Node", Namespace: schema.NewNamespace("")},
		Fields:     []*schema.FieldDef{scalarField("type", schema.TypeUShort, "3")},
	}
	sd.Fields[0].Value.Offset = 4
	f := newTestFile(&schema.Schema{}, nil)
	f.genTable(sd)
	out := f.w.String()

	assert.Contains(t, out, "    pub const VT_TYPE_: flatbuffers::VOffsetT = 4;\n")
	assert.Contains(t, out, "  pub fn type_(&'a self) -> u16 {\n    self._tab.get::<u16>(Node::VT_TYPE_, Some(3)).unwrap()\n")
	assert.Contains(t, out, "    pub type_: u16,\n")
	assert.Contains(t, out, "      builder.add_type(args.type_);\n")
	assert.Contains(t, out, "  pub fn add_type(&mut self, type_: u16) {\n    self.fbb_.push_slot_scalar::<u16>(Node::VT_TYPE_, type_, 3);\n")
}

func TestGenTableBool(t *testing.T) {
	sd := &schema.StructDef{
		Definition: schema.Definition{Name: "Flags", Namespace: schema.NewNamespace("")},
		Fields: []*schema.FieldDef{
			scalarField("on", schema.TypeBool, "1"),
			scalarField("off", schema.TypeBool, "0"),
		},
	}
	f := newTestFile(&schema.Schema{}, nil)
	f.genTable(sd)
	out := f.w.String()

	assert.Contains(t, out, "self._tab.get::<bool>(Flags::VT_ON, Some(true)).unwrap()")
	assert.Contains(t, out, "self._tab.get::<bool>(Flags::VT_OFF, Some(false)).unwrap()")
	assert.Contains(t, out, "    self.fbb_.push_slot_scalar::<bool>(Flags::VT_ON, on, true);\n")
}

func TestGenTableNameStrings(t *testing.T) {
	_, out := genMonster(t, WithFeatures(FeatureNameStrings))
	assert.Contains(t, out, "        \"MyGame.Sample.Monster\"\n")

	_, out = genMonster(t)
	assert.NotContains(t, out, "get_fully_qualified_name")
}

func TestGenTableKeyWarning(t *testing.T) {
	fx := newMonsterFixture()
	fx.monster.Fields[2].Key = true
	f := newTestFile(fx.schema, fx.ns)
	f.genTable(fx.monster)

	require.Len(t, f.warnings, 1)
	assert.Equal(t, "Monster.hp: comparison key on a table field is unsupported by the rust target", f.warnings[0].String())
	assert.NotContains(t, f.w.String(), "key_compare")
}

func TestNestedFlatbuffer(t *testing.T) {
	nested := func(fx *monsterFixture, root string) *schema.FieldDef {
		return &schema.FieldDef{
			Name:       "testnestedflatbuffer",
			Attributes: schema.Attributes{"nested_flatbuffer": root},
			Value:      schema.Value{Type: schema.Type{Base: schema.TypeVector, Element: schema.TypeUByte}, Offset: 26},
		}
	}

	t.Run("resolved in the current namespace", func(t *testing.T) {
		fx := newMonsterFixture()
		fx.weapon.Fields = append(fx.weapon.Fields, nested(fx, "Monster"))
		f := newTestFile(fx.schema, fx.ns)
		f.genTable(fx.weapon)
		assert.Contains(t, f.w.String(), "  pub fn testnestedflatbuffer_nested_flatbuffer(&'a self) -> Option<Monster<'a>> {\n"+
			"     match self.testnestedflatbuffer() {\n"+
			"         None => { None }\n"+
			"         Some(data) => {\n"+
			"             use self::flatbuffers::Follow;\n"+
			"             Some(<flatbuffers::ForwardsUOffset<Monster<'a>>>::follow(data, 0))\n")
	})

	t.Run("fully qualified", func(t *testing.T) {
		fx := newMonsterFixture()
		fx.weapon.Fields = append(fx.weapon.Fields, nested(fx, "MyGame.Sample.Monster"))
		f := newTestFile(fx.schema, fx.ns)
		f.genTable(fx.weapon)
		assert.Contains(t, f.w.String(), "_nested_flatbuffer(&'a self) -> Option<Monster<'a>>")
	})

	t.Run("unknown root", func(t *testing.T) {
		fx := newMonsterFixture()
		fx.weapon.Fields = append(fx.weapon.Fields, nested(fx, "Nope"))
		f := newTestFile(fx.schema, fx.ns)
		se := schemaPanic(t, func() { f.genTable(fx.weapon) })
		assert.Equal(t, "testnestedflatbuffer", se.Field)
		assert.Contains(t, se.Message, `"Nope" not found`)
	})

	t.Run("struct root", func(t *testing.T) {
		fx := newMonsterFixture()
		fx.weapon.Fields = append(fx.weapon.Fields, nested(fx, "Vec3"))
		f := newTestFile(fx.schema, fx.ns)
		se := schemaPanic(t, func() { f.genTable(fx.weapon) })
		assert.Contains(t, se.Message, "is not a table")
	})
}

func TestUnionAccessorPolicy(t *testing.T) {
	t.Run("type aliases", func(t *testing.T) {
		fx := newMonsterFixture()
		fx.equipment.UsesTypeAliases = true
		f := newTestFile(fx.schema, fx.ns)
		f.genTable(fx.monster)
		assert.NotContains(t, f.w.String(), "equipped_as_")
		require.Len(t, f.warnings, 1)
		assert.Contains(t, f.warnings[0].Message, "uses type aliases")
	})

	t.Run("struct member", func(t *testing.T) {
		fx := newMonsterFixture()
		fx.equipment.Values = append(fx.equipment.Values, &schema.EnumVal{
			Name: "Spot", Value: 2, UnionType: schema.Type{Base: schema.TypeStruct, StructDef: fx.vec3},
		})
		f := newTestFile(fx.schema, fx.ns)
		f.genTable(fx.monster)
		out := f.w.String()
		assert.Contains(t, out, "equipped_as_weapon")
		assert.NotContains(t, out, "equipped_as_spot")
		require.Len(t, f.warnings, 1)
		assert.Equal(t, "Monster.equipped: union member Spot is a struct; no accessor emitted", f.warnings[0].String())
	})

	t.Run("string member", func(t *testing.T) {
		fx := newMonsterFixture()
		fx.equipment.Values = append(fx.equipment.Values, &schema.EnumVal{
			Name: "Label", Value: 2, UnionType: schema.Type{Base: schema.TypeString},
		})
		f := newTestFile(fx.schema, fx.ns)
		f.genTable(fx.monster)
		require.Len(t, f.warnings, 1)
		assert.Contains(t, f.warnings[0].Message, "Label is not a table")
	})

	t.Run("missing discriminant", func(t *testing.T) {
		fx := newMonsterFixture()
		fx.monster.Fields = append(fx.monster.Fields[:8], fx.monster.Fields[9:]...)
		f := newTestFile(fx.schema, fx.ns)
		se := schemaPanic(t, func() { f.genTable(fx.monster) })
		assert.Equal(t, "equipped", se.Field)
		assert.Contains(t, se.Message, "missing discriminant field equipped_type")
	})

	t.Run("qualified from another namespace", func(t *testing.T) {
		fx := newMonsterFixture()
		other := schema.NewNamespace("MyGame.Other")
		holder := &schema.StructDef{
			Definition: schema.Definition{Name: "Holder", Namespace: other},
			Fields: []*schema.FieldDef{
				{Name: "item_type", Value: schema.Value{Type: schema.Type{Base: schema.TypeUType, EnumDef: fx.equipment}, Constant: "0", Offset: 4}},
				{Name: "item", Value: schema.Value{Type: schema.Type{Base: schema.TypeUnion, EnumDef: fx.equipment}, Constant: "0", Offset: 6}},
			},
		}
		f := newTestFile(fx.schema, other)
		f.genTable(holder)
		out := f.w.String()
		assert.Contains(t, out, "  pub fn item_as_weapon(&'a self) -> Option<super::sample::Weapon<'a>> {\n")
		assert.Contains(t, out, "    if self.item_type() == super::sample::Equipment::Weapon {\n")
		assert.Contains(t, out, "            item_type: super::sample::Equipment::NONE,\n")
	})
}

func TestEnumDefaultMismatch(t *testing.T) {
	fx := newMonsterFixture()
	fx.monster.Fields[6].Value.Constant = "7"
	f := newTestFile(fx.schema, fx.ns)
	se := schemaPanic(t, func() { f.genTable(fx.monster) })
	assert.Equal(t, "Monster", se.Type)
	assert.Equal(t, "color", se.Field)
	assert.Contains(t, se.Message, "no value of Color equals the default 7")

	fx.monster.Fields[6].Value.Constant = "blue"
	se = schemaPanic(t, func() { f.genTable(fx.monster) })
	assert.Equal(t, "enum default is not an integer", se.Message)
	assert.Error(t, se.Cause)
}

func TestGenTableDocIsVerbatim(t *testing.T) {
	fx := newMonsterFixture()
	fx.monster.Doc = []string{` Windows path C:\`, " Uses {{STRUCT_NAME}} literally."}
	fx.monster.Field("hp").Doc = []string{` trailing \`}
	f := newTestFile(fx.schema, fx.ns)
	f.genTable(fx.monster)
	out := f.w.String()

	assert.Contains(t, out, "/// Windows path C:\\\n/// Uses {{STRUCT_NAME}} literally.\npub enum MonsterOffset {}\n")
	assert.Contains(t, out, "  /// trailing \\\n  #[inline]\n  pub fn hp(")
}
