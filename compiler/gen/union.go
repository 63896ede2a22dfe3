package gen

import "github.com/syssam/flatgen/schema"

// unionTypeSuffix names the discriminant field that accompanies every
// union field.
const unionTypeSuffix = "_type"

// unionAccessors emits one <field>_as_<variant> accessor per union
// member whose payload is a table. Each returns the payload only when the
// discriminant selects that member.
func (f *file) unionAccessors(sd *schema.StructDef, fd *schema.FieldDef) {
	u := fd.Value.Type.EnumDef
	if u == nil || !u.IsUnion {
		fatalf(sd.Name, fd.Name, "union field without a union definition")
	}
	if u.UsesTypeAliases {
		f.warn(sd.Name, fd.Name, "union "+u.Name+" uses type aliases; variant accessors are skipped")
		return
	}
	key := sd.Field(fd.Name + unionTypeSuffix)
	if key == nil {
		fatalf(sd.Name, fd.Name, "missing discriminant field %s%s", fd.Name, unionTypeSuffix)
	}
	field := f.name(fd.Name)
	for _, ev := range u.Values {
		switch {
		case ev.UnionType.Base == schema.TypeNone:
			continue
		case ev.UnionType.Base != schema.TypeStruct || ev.UnionType.StructDef == nil:
			f.warn(sd.Name, fd.Name, "union member "+ev.Name+" is not a table; no accessor emitted")
			continue
		case ev.UnionType.StructDef.Fixed:
			f.warn(sd.Name, fd.Name, "union member "+ev.Name+" is a struct; no accessor emitted")
			continue
		}
		payload := f.wrapDef(&ev.UnionType.StructDef.Definition)
		f.w.Lines(
			"  #[inline]",
			"  pub fn "+field+"_as_"+SnakeCase(ev.Name)+"(&'a self) -> Option<"+payload+"<'a>> {",
			"    if self."+f.name(key.Name)+"() == "+f.wrap(u.Namespace, f.enumValUse(u, ev))+" {",
			"      self."+field+"().map(|u| "+payload+"::init_from_table(u))",
			"    } else {",
			"      None",
			"    }",
			"  }",
			"",
		)
	}
}
