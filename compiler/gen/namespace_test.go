package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/flatgen/schema"
)

func TestRelativePath(t *testing.T) {
	rust, err := NewTarget("rust")
	require.NoError(t, err)

	tests := []struct {
		from, to string
		want     string
	}{
		{"A.B.C", "A.B.C", "X"},
		{"A.B.C", "A.B", "super::X"},
		{"A.B.C", "A.B.D", "super::d::X"},
		{"A.B.C", "A", "super::super::X"},
		{"A.B.C", "D", "super::super::super::d::X"},
		{"A.B.C", "D.E", "super::super::super::d::e::X"},
		{"A", "D.E", "super::d::e::X"},
		{"", "MyGame.Sample", "my_game::sample::X"},
		{"MyGame", "", "super::X"},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			path := RelativePath(schema.NewNamespace(tt.from), schema.NewNamespace(tt.to))
			assert.Equal(t, tt.want, rust.Qualify(path, "X"))
		})
	}

	assert.Empty(t, RelativePath(nil, schema.NewNamespace("")))
}

func TestRelativePathRoundTrip(t *testing.T) {
	spaces := []string{"", "A", "A.B", "A.B.C", "A.C", "B", "B.A.C", "MyGame.Sample", "MyGame.Other.Deep"}
	for _, from := range spaces {
		for _, to := range spaces {
			a, b := schema.NewNamespace(from), schema.NewNamespace(to)
			got := Apply(a, RelativePath(a, b))
			assert.True(t, got.Equal(b), "%q -> %q reached %q", from, to, got.String())
		}
	}
}

func TestSetNamespace(t *testing.T) {
	t.Run("opens with prelude", func(t *testing.T) {
		f := newTestFile(&schema.Schema{}, nil)
		f.setNamespace(schema.NewNamespace("MyGame.Sample"))
		out := f.w.String()

		assert.Contains(t, out, "pub mod my_game {\n")
		assert.Contains(t, out, "pub mod sample {\n")
		assert.Contains(t, out, "  #![allow(dead_code)]\n  #![allow(unused_imports)]\n")
		assert.Contains(t, out, "  extern crate flatbuffers;\n  use self::flatbuffers::EndianScalar;\n")
	})

	t.Run("switches through the common prefix", func(t *testing.T) {
		f := newTestFile(&schema.Schema{}, schema.NewNamespace("A.B.C"))
		f.setNamespace(schema.NewNamespace("A.D"))
		out := f.w.String()

		assert.Contains(t, out, "}  // pub mod C\n}  // pub mod B\n")
		assert.NotContains(t, out, "pub mod A")
		assert.Contains(t, out, "pub mod d {")
	})

	t.Run("same namespace writes nothing", func(t *testing.T) {
		f := newTestFile(&schema.Schema{}, schema.NewNamespace("A"))
		f.setNamespace(schema.NewNamespace("A"))
		assert.Empty(t, f.w.String())
	})

	t.Run("nil closes everything", func(t *testing.T) {
		f := newTestFile(&schema.Schema{}, schema.NewNamespace("A.B"))
		f.setNamespace(nil)
		assert.Equal(t, "}  // pub mod B\n}  // pub mod A\n\n", f.w.String())
		assert.Nil(t, f.cur)
	})
}

func TestWrap(t *testing.T) {
	fx := newMonsterFixture()

	f := newTestFile(fx.schema, fx.ns)
	assert.Equal(t, "Color", f.wrapDef(&fx.color.Definition))

	f = newTestFile(fx.schema, schema.NewNamespace("MyGame"))
	assert.Equal(t, "sample::Color", f.wrapDef(&fx.color.Definition))

	f = newTestFile(fx.schema, schema.NewNamespace("MyGame.Other"))
	assert.Equal(t, "super::sample::Color", f.wrapDef(&fx.color.Definition))

	self := &schema.Definition{Name: "self", Namespace: fx.ns}
	assert.Equal(t, "super::sample::self_", f.wrapDef(self))
}
