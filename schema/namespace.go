package schema

import (
	"slices"
	"strings"
)

// Namespace is an ordered list of name components, e.g. MyGame.Sample.
// The zero value is the root namespace.
type Namespace struct {
	Components []string
}

// NewNamespace splits a dotted name into a Namespace.
// The empty string yields the root namespace.
func NewNamespace(dotted string) *Namespace {
	if dotted = strings.TrimSpace(dotted); dotted == "" {
		return &Namespace{}
	}
	return &Namespace{Components: strings.Split(dotted, ".")}
}

// String returns the dotted form of the namespace.
func (n *Namespace) String() string {
	if n == nil {
		return ""
	}
	return strings.Join(n.Components, ".")
}

// FullyQualifiedName returns name qualified with the namespace.
func (n *Namespace) FullyQualifiedName(name string) string {
	if n == nil || len(n.Components) == 0 {
		return name
	}
	return n.String() + "." + name
}

// Equal reports whether both namespaces have the same components.
// A nil namespace equals the root namespace.
func (n *Namespace) Equal(o *Namespace) bool {
	return slices.Equal(n.components(), o.components())
}

// Len returns the number of components.
func (n *Namespace) Len() int { return len(n.components()) }

// CommonPrefix returns the number of leading components shared with o.
func (n *Namespace) CommonPrefix(o *Namespace) int {
	a, b := n.components(), o.components()
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

func (n *Namespace) components() []string {
	if n == nil {
		return nil
	}
	return n.Components
}
