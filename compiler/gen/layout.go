package gen

import (
	"fmt"

	"github.com/syssam/flatgen/schema"
)

// maxPadding is the largest padding a single field may carry: one filler
// each of 1, 2, 4 and 8 bytes.
const maxPadding = 0xF

// PaddingFillers expands a padding byte count into filler sizes, smallest
// first. Bit i of padding selects a filler of 1<<i bytes.
func PaddingFillers(padding uint) []int {
	var sizes []int
	for i := 0; i < 4; i++ {
		if padding&(1<<i) != 0 {
			sizes = append(sizes, 1<<i)
		}
	}
	return sizes
}

// Member is a field or a synthetic padding filler of a fixed struct.
type Member struct {
	// Name is the member identifier without the trailing underscore of
	// field members; fillers are named padding<N>__.
	Name string
	// Size in bytes.
	Size int
	// Field is nil for fillers.
	Field *schema.FieldDef
}

// Layout is the in-memory layout of a fixed struct.
type Layout struct {
	Members []Member
	// Size is the sum of all member sizes.
	Size int
}

// StructLayout returns the members of a fixed struct in declaration
// order with their padding fillers interleaved.
func StructLayout(sd *schema.StructDef) (Layout, error) {
	var (
		l  Layout
		id int
	)
	for _, fd := range sd.Fields {
		if fd.Padding&^maxPadding != 0 {
			return Layout{}, fmt.Errorf("field %s: padding %d exceeds %d bytes", fd.Name, fd.Padding, maxPadding)
		}
		size, err := inlineSize(fd.Value.Type)
		if err != nil {
			return Layout{}, fmt.Errorf("field %s: %w", fd.Name, err)
		}
		l.Members = append(l.Members, Member{Name: fd.Name, Size: size, Field: fd})
		l.Size += size
		for _, n := range PaddingFillers(fd.Padding) {
			l.Members = append(l.Members, Member{Name: fmt.Sprintf("padding%d__", id), Size: n})
			l.Size += n
			id++
		}
	}
	return l, nil
}

// Check verifies the layout against the byte size and alignment the IR
// computed for sd.
func (l Layout) Check(sd *schema.StructDef) error {
	switch {
	case sd.MinAlign <= 0:
		return fmt.Errorf("minalign %d is not positive", sd.MinAlign)
	case l.Size != sd.ByteSize:
		return fmt.Errorf("members and padding sum to %d bytes, bytesize is %d", l.Size, sd.ByteSize)
	case sd.ByteSize%sd.MinAlign != 0:
		return fmt.Errorf("bytesize %d is not a multiple of minalign %d", sd.ByteSize, sd.MinAlign)
	}
	return nil
}

// inlineSize returns the size of a fixed struct member.
func inlineSize(t schema.Type) (int, error) {
	switch {
	case t.IsStruct():
		return t.StructDef.ByteSize, nil
	case t.Base.IsScalar():
		return t.Base.Size(), nil
	default:
		return 0, fmt.Errorf("type %s cannot be stored inline", t)
	}
}
