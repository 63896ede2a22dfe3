package gen

import "github.com/syssam/flatgen/schema"

// PathSegment is one step of a relative namespace path: either up to the
// parent namespace, or down into the named child.
type PathSegment struct {
	Up   bool
	Name string
}

// RelativePath returns the segments that lead from namespace from to
// namespace to. It is empty when both are equal.
//
//	A.B.C -> A.B.C  =>  (empty)
//	A.B.C -> A.B    =>  up
//	A.B.C -> A.B.D  =>  up, D
//	A.B.C -> D.E    =>  up, up, up, D, E
func RelativePath(from, to *schema.Namespace) []PathSegment {
	common := from.CommonPrefix(to)
	var path []PathSegment
	for i := 0; i < from.Len()-common; i++ {
		path = append(path, PathSegment{Up: true})
	}
	if to != nil {
		for _, c := range to.Components[common:] {
			path = append(path, PathSegment{Name: c})
		}
	}
	return path
}

// Apply navigates the path starting at from and returns the namespace
// reached. Going up from the root namespace stays at the root.
func Apply(from *schema.Namespace, path []PathSegment) *schema.Namespace {
	var comps []string
	if from != nil {
		comps = append(comps, from.Components...)
	}
	for _, seg := range path {
		switch {
		case seg.Up && len(comps) > 0:
			comps = comps[:len(comps)-1]
		case !seg.Up:
			comps = append(comps, seg.Name)
		}
	}
	return &schema.Namespace{Components: comps}
}

// setNamespace moves the namespace cursor to ns, closing the modules of
// the current namespace down to the common prefix and opening the rest.
// A nil ns closes everything.
func (f *file) setNamespace(ns *schema.Namespace) {
	if f.cur.Equal(ns) {
		f.cur = ns
		return
	}
	var old, next []string
	if f.cur != nil {
		old = f.cur.Components
	}
	if ns != nil {
		next = ns.Components
	}
	common := f.cur.CommonPrefix(ns)

	for j := len(old); j > common; j-- {
		f.w.Line("}  // pub mod " + old[j-1])
	}
	if len(old) != common {
		f.w.Line("")
	}
	for _, c := range next[common:] {
		f.w.Line("pub mod " + f.cfg.Target.ModuleName(c) + " {")
		f.w.Line("  #![allow(dead_code)]")
		f.w.Line("  #![allow(unused_imports)]")
		f.w.Line("")
		f.w.Line("  use std::mem;")
		f.w.Line("  use std::marker::PhantomData;")
		f.w.Line("  use std::cmp::Ordering;")
		f.w.Line("")
		f.w.Line("  extern crate flatbuffers;")
		f.w.Line("  use self::flatbuffers::EndianScalar;")
	}
	if len(next) != common {
		f.w.Line("")
	}
	f.cur = ns
}

// wrap qualifies name, defined in ns, for use inside the current namespace.
func (f *file) wrap(ns *schema.Namespace, name string) string {
	if f.cur.Equal(ns) {
		return name
	}
	return f.cfg.Target.Qualify(RelativePath(f.cur, ns), name)
}

// wrapDef qualifies a definition for use inside the current namespace.
func (f *file) wrapDef(d *schema.Definition) string {
	return f.wrap(d.Namespace, f.name(d.Name))
}
