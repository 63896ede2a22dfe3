package gen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// SnakeCase converts an identifier to snake case. Every rune that is not a
// lower case letter, except the first, is preceded by an underscore and
// lowered:
//
//	Monster     => monster
//	MyGame      => my_game
//	Vec3        => vec_3
//	test_bool   => test__bool
func SnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsLower(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// UpperCase returns s with all letters upper cased.
func UpperCase(s string) string {
	return upper.String(s)
}
