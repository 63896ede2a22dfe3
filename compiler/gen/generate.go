package gen

import (
	"log/slog"
	"strings"

	"github.com/syssam/flatgen/schema"
)

// Generator emits target source for a schema.
//
// Example:
//
//	g, err := gen.New(gen.WithFeatures(gen.FeatureNameStrings))
//	if err != nil {
//		return err
//	}
//	res, err := g.Generate(s)
//	if err != nil {
//		return err
//	}
//	os.WriteFile(g.Target().FileName("monster"), []byte(res.Code), 0o644)
//
// A Generator is immutable and may be shared; every call to Generate runs
// with its own state.
type Generator struct {
	cfg *Config
}

// Result is the output of a successful run.
type Result struct {
	// Code is the complete generated source.
	Code string
	// Warnings lists the policy-driven skips of the run.
	Warnings []Warning
}

// New creates a Generator with the given options.
func New(opts ...Option) (*Generator, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg}, nil
}

// Target returns the output language of the generator.
func (g *Generator) Target() *Target { return g.cfg.Target }

// Config returns the option snapshot of the generator.
func (g *Generator) Config() *Config { return g.cfg }

// file is the state of a single run: the namespace cursor, the output
// accumulator and the collected warnings.
type file struct {
	cfg      *Config
	schema   *schema.Schema
	w        *Writer
	cur      *schema.Namespace
	warnings []Warning
	log      *slog.Logger
}

// Generate emits the code of every definition of s that was not generated
// before. It returns either the complete output or an error, never a
// partial result.
func (g *Generator) Generate(s *schema.Schema) (res *Result, err error) {
	if s == nil {
		return nil, NewGenerationError("generate", "", "nil schema", ErrInvalidSchema)
	}
	f := &file{
		cfg:    g.cfg,
		schema: s,
		w:      NewWriter(),
		log:    g.cfg.Logger,
	}
	phase := "header"
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		se, ok := r.(*SchemaError)
		if !ok {
			panic(r)
		}
		f.log.Error("generation aborted", "phase", phase, "error", se)
		res, err = nil, NewGenerationError(phase, "", "schema invariant violated", se)
	}()

	f.header()
	seen := make([]*schema.Namespace, 0, len(s.Namespaces))
	for _, ns := range s.Namespaces {
		if containsNamespace(seen, ns) {
			continue
		}
		seen = append(seen, ns)

		phase = "enum"
		for _, ed := range s.Enums {
			if !ed.Namespace.Equal(ns) {
				continue
			}
			if ed.Generated {
				f.log.Debug("skipping generated enum", "name", ed.FullyQualifiedName())
				continue
			}
			f.setNamespace(ed.Namespace)
			f.genEnum(ed)
		}

		phase = "struct"
		for _, sd := range s.Structs {
			if !sd.Fixed || !sd.Namespace.Equal(ns) {
				continue
			}
			if sd.Generated {
				f.log.Debug("skipping generated struct", "name", sd.FullyQualifiedName())
				continue
			}
			f.setNamespace(sd.Namespace)
			f.genStruct(sd)
		}

		phase = "table"
		for _, sd := range s.Structs {
			if sd.Fixed || !sd.Namespace.Equal(ns) {
				continue
			}
			if sd.Generated {
				f.log.Debug("skipping generated table", "name", sd.FullyQualifiedName())
				continue
			}
			f.setNamespace(sd.Namespace)
			f.genTable(sd)
		}
	}
	f.setNamespace(nil)

	phase = "root"
	if s.Root != nil {
		f.genRoot(s.Root)
	}

	for _, w := range f.warnings {
		f.log.Warn(w.Message, "definition", w.Definition, "field", w.Field)
	}
	return &Result{Code: f.w.String(), Warnings: f.warnings}, nil
}

func containsNamespace(list []*schema.Namespace, ns *schema.Namespace) bool {
	for _, n := range list {
		if n.Equal(ns) {
			return true
		}
	}
	return false
}

// header writes the file header comment.
func (f *file) header() {
	for _, l := range strings.Split(f.cfg.Header, "\n") {
		f.w.Line(strings.TrimRight("// "+l, " "))
	}
	f.w.Line("")
	f.w.Line("")
}

// name escapes an identifier for the target.
func (f *file) name(s string) string {
	return f.cfg.Target.EscapeKeyword(s)
}

// comment writes documentation lines with the given indentation.
func (f *file) comment(doc []string, prefix string) {
	for _, l := range doc {
		l = strings.TrimSpace(l)
		if l == "" {
			f.w.Raw(prefix + "///")
			continue
		}
		f.w.Raw(prefix + "/// " + l)
	}
}

// warn records a policy-driven skip.
func (f *file) warn(def, field, msg string) {
	f.warnings = append(f.warnings, Warning{Definition: def, Field: field, Message: msg})
}

// featureEnabled reports whether the feature is enabled for this run.
func (f *file) featureEnabled(feat Feature) bool {
	return f.cfg.FeatureEnabled(feat)
}
