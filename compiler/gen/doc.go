// Package gen emits Rust source for a resolved FlatBuffers schema.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	schema file (json, yaml or msgpack IR)
//	        ↓
//	   compiler/load (decode and resolve references)
//	        ↓
//	   schema.Schema (resolved IR)
//	        ↓
//	   Generator.Generate (one run, one output file)
//	        ↓
//	   {name}_generated.rs
//
// # Key Types
//
//   - Generator: immutable, holds the Config; every Generate call runs with its own state
//   - Target: naming rules, keywords and path syntax of the output language
//   - FullElementType: the 17 element kinds every emitter switches on
//   - Writer: line accumulator with {{KEY}} substitution
//   - Layout: members and padding fillers of a fixed struct
//
// # Output Order
//
// Definitions are grouped per namespace, in the order namespaces are listed
// in the schema. Inside a namespace enums come first, then fixed structs,
// then tables. The root table helpers follow once every module is closed.
//
// # Error Handling
//
//   - SchemaError: the IR violated an invariant, e.g. an enum default with no matching value
//   - ConfigError: an option was invalid
//   - GenerationError: a run aborted; it wraps the SchemaError and names the phase
//
// A run either returns the complete output or an error. Policy-driven skips
// (type-aliased unions, keys on table fields) do not fail the run; they are
// returned as Result.Warnings and logged.
//
//	res, err := g.Generate(s)
//	if gen.IsSchemaError(err) {
//	    // the input IR is malformed
//	}
//
// # Configuration
//
//	g, err := gen.New(
//	    gen.WithTargetName("rust"),
//	    gen.WithFeatures(gen.FeatureNameStrings),
//	    gen.WithLogger(slog.Default()),
//	)
//
// # Features
//
//   - generate_name_strings: get_fully_qualified_name() on structs and tables
//   - mutable_buffer: set_<field> mutators on fixed structs
package gen
