package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/flatgen/schema"
)

// Target is the capability set of an output language: naming rules, the
// reserved word table and the path syntax used to reference definitions in
// other namespaces.
type Target struct {
	Name          string              // target name.
	FileSuffix    string              // suffix appended to the input base name.
	PathSeparator string              // separator between path segments.
	ParentSegment string              // segment that moves one namespace up.
	KeywordSuffix string              // appended to identifiers that collide with Keywords.
	Keywords      map[string]struct{} // reserved words.
}

// targets holds the supported output languages.
var targets = []*Target{
	{
		Name:          "rust",
		FileSuffix:    "_generated.rs",
		PathSeparator: "::",
		ParentSegment: "super",
		KeywordSuffix: "_",
		Keywords: keywordSet(
			// currently used keywords
			"as", "break", "const", "continue", "crate", "else", "enum",
			"extern", "false", "fn", "for", "if", "impl", "in", "let", "loop",
			"match", "mod", "move", "mut", "pub", "ref", "return", "Self",
			"self", "static", "struct", "super", "trait", "true", "type",
			"unsafe", "use", "where", "while",
			// reserved for future use
			"abstract", "alignof", "become", "box", "do", "final", "macro",
			"offsetof", "override", "priv", "proc", "pure", "sizeof",
			"typeof", "unsized", "virtual", "yield",
			// names that shadow the prelude
			"std", "usize", "isize", "u8", "i8", "u16", "i16", "u32", "i32",
			"u64", "i64", "f32", "f64",
		),
	},
}

func keywordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// NewTarget returns the target with the given name. It fails if the
// provided string is not a supported target.
func NewTarget(s string) (*Target, error) {
	for _, t := range targets {
		if s == t.Name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("flatgen/gen: invalid target %q", s)
}

// TargetNames returns the names of all supported targets.
func TargetNames() []string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Name
	}
	return names
}

// String implements the fmt.Stringer interface.
func (t *Target) String() string { return t.Name }

// IsKeyword reports whether name is reserved in the target language.
func (t *Target) IsKeyword(name string) bool {
	_, ok := t.Keywords[name]
	return ok
}

// EscapeKeyword returns name, suffixed when it is a reserved word.
func (t *Target) EscapeKeyword(name string) string {
	if t.IsKeyword(name) {
		return name + t.KeywordSuffix
	}
	return name
}

// FileName returns the output file name for an input base name.
func (t *Target) FileName(base string) string {
	return base + t.FileSuffix
}

// FieldOffsetName returns the identifier of a table field's vtable offset
// constant, e.g. VT_HP.
func (t *Target) FieldOffsetName(f *schema.FieldDef) string {
	return "VT_" + UpperCase(t.EscapeKeyword(f.Name))
}

// ModuleName returns the module identifier of a namespace component.
func (t *Target) ModuleName(component string) string {
	return SnakeCase(component)
}

// Qualify renders name behind a relative path, e.g. super::sample::Monster.
func (t *Target) Qualify(path []PathSegment, name string) string {
	var b strings.Builder
	for _, seg := range path {
		if seg.Up {
			b.WriteString(t.ParentSegment)
		} else {
			b.WriteString(t.ModuleName(seg.Name))
		}
		b.WriteString(t.PathSeparator)
	}
	b.WriteString(name)
	return b.String()
}
