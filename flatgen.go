// Package flatgen generates Rust source code from FlatBuffers schemas.
//
// The generator works on the intermediate representation a FlatBuffers
// parser produces: definitions with resolved references and computed
// layouts. Documents in JSON, YAML or msgpack are decoded by the load
// package, and code is produced by the gen package:
//
//	res, err := flatgen.GenerateFile("monster.json")
//	if err != nil {
//		return err
//	}
//	os.WriteFile("monster_generated.rs", []byte(res.Code), 0o644)
package flatgen

import (
	"github.com/syssam/flatgen/compiler/gen"
	"github.com/syssam/flatgen/compiler/load"
	"github.com/syssam/flatgen/schema"
)

// GenerateFile loads the IR document at path and generates its code.
func GenerateFile(path string, opts ...gen.Option) (*gen.Result, error) {
	s, err := load.Load(path)
	if err != nil {
		return nil, err
	}
	return generate(s, opts)
}

// Generate decodes an in-memory IR document and generates its code.
func Generate(data []byte, f load.Format, opts ...gen.Option) (*gen.Result, error) {
	s, err := load.Decode(data, f)
	if err != nil {
		return nil, err
	}
	return generate(s, opts)
}

func generate(s *schema.Schema, opts []gen.Option) (*gen.Result, error) {
	g, err := gen.New(opts...)
	if err != nil {
		return nil, err
	}
	return g.Generate(s)
}
