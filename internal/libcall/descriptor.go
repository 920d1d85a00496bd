package libcall

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"helios/internal/ir"
)

// ErrNotLibraryCall indicates that a symbol does not match the library
// function grammar.
var ErrNotLibraryCall = errors.New("not a library call")

// Prefix distinguishes the plain and approximate native variants of a
// library symbol.
type Prefix uint8

const (
	// PrefixNone is the plain variant.
	PrefixNone Prefix = iota
	// PrefixNative is the approximate native variant.
	PrefixNative
)

const nativePrefix = "native_"

// ArgDesc describes one argument of a library function.
type ArgDesc struct {
	Elem      ir.ScalarKind // ScalarF32 or ScalarF64 for floating arguments
	Lanes     uint8
	Ptr       bool
	AddrSpace uint8
}

// Descriptor is the structured identity of a library function: its id,
// prefix variant, and ordered argument descriptors. The first floating
// argument is the lead; it fixes the element type and lane count of the
// whole signature.
type Descriptor struct {
	ID     FuncID
	Prefix Prefix
	Args   []ArgDesc
}

// validLanes are the vector widths the library mangles.
func validLanes(n uint8) bool {
	switch n {
	case 1, 2, 3, 4, 8, 16:
		return true
	}
	return false
}

// Lead returns the lead argument descriptor.
func (d Descriptor) Lead() ArgDesc {
	if len(d.Args) == 0 {
		return ArgDesc{Elem: ir.ScalarF32, Lanes: 1}
	}
	return d.Args[0]
}

// LeadType returns the IR type of the lead argument.
func (d Descriptor) LeadType() ir.Type {
	lead := d.Lead()
	return ir.Vec(lead.Elem, lead.Lanes)
}

// NewDescriptor builds a descriptor for id with the given lead shape,
// deriving the remaining argument descriptors from the id's arity.
func NewDescriptor(id FuncID, elem ir.ScalarKind, lanes uint8) Descriptor {
	return NewDescriptorPtr(id, elem, lanes, ir.AddrSpaceGeneric)
}

// NewDescriptorPtr is NewDescriptor with an explicit address space for the
// output-pointer argument of functions that carry one.
func NewDescriptorPtr(id FuncID, elem ir.ScalarKind, lanes uint8, ptrAS uint8) Descriptor {
	lead := ArgDesc{Elem: elem, Lanes: lanes}
	d := Descriptor{ID: id}
	switch FuncArity(id) {
	case ArityUnary:
		d.Args = []ArgDesc{lead}
	case ArityBinary:
		d.Args = []ArgDesc{lead, lead}
	case ArityBinaryIntSecond:
		d.Args = []ArgDesc{lead, {Elem: ir.ScalarI32, Lanes: lanes}}
	case ArityTernary:
		d.Args = []ArgDesc{lead, lead, lead}
	case AritySincos:
		d.Args = []ArgDesc{lead, {Ptr: true, AddrSpace: ptrAS}}
	case ArityPipe:
		d.Args = nil
	}
	return d
}

// WithID returns a copy of d rewritten for another function id, keeping the
// lead argument shape. This mirrors building a replacement symbol from the
// call being rewritten.
func (d Descriptor) WithID(id FuncID) Descriptor {
	lead := d.Lead()
	nd := NewDescriptor(id, lead.Elem, lead.Lanes)
	nd.Prefix = d.Prefix
	return nd
}

func typeTag(elem ir.ScalarKind, lanes uint8) string {
	tag := "f32"
	if elem == ir.ScalarF64 {
		tag = "f64"
	}
	if lanes > 1 {
		return fmt.Sprintf("v%d%s", lanes, tag)
	}
	return tag
}

// Mangle renders the descriptor back to symbol-name form.
func (d Descriptor) Mangle() string {
	if d.ID.IsPipe() {
		return d.ID.Name()
	}
	var sb strings.Builder
	if d.Prefix == PrefixNative {
		sb.WriteString(nativePrefix)
	}
	sb.WriteString(d.ID.Name())
	lead := d.Lead()
	sb.WriteByte('_')
	sb.WriteString(typeTag(lead.Elem, lead.Lanes))
	for _, a := range d.Args[1:] {
		if a.Ptr {
			sb.WriteString("_p")
			sb.WriteString(strconv.Itoa(int(a.AddrSpace)))
		}
	}
	return sb.String()
}

// Parse decodes a callee symbol into a descriptor. It fails with
// ErrNotLibraryCall when the symbol does not match the supported grammar.
func Parse(symbol string) (Descriptor, error) {
	if id, ok := funcByName[symbol]; ok && id.IsPipe() {
		return Descriptor{ID: id}, nil
	}

	prefix := PrefixNone
	rest := symbol
	if strings.HasPrefix(rest, nativePrefix) {
		prefix = PrefixNative
		rest = rest[len(nativePrefix):]
	}

	base, suffix, ok := strings.Cut(rest, "_")
	if !ok {
		return Descriptor{}, ErrNotLibraryCall
	}
	id, ok := funcByName[base]
	if !ok || id.IsPipe() {
		return Descriptor{}, ErrNotLibraryCall
	}

	tag, ptrPart, hasPtr := strings.Cut(suffix, "_")

	lanes := uint8(1)
	if strings.HasPrefix(tag, "v") {
		vEnd := strings.IndexByte(tag, 'f')
		if vEnd < 0 {
			return Descriptor{}, ErrNotLibraryCall
		}
		n, err := strconv.Atoi(tag[1:vEnd])
		if err != nil {
			return Descriptor{}, ErrNotLibraryCall
		}
		lanes, err = safecast.Conv[uint8](n)
		if err != nil || !validLanes(lanes) {
			return Descriptor{}, ErrNotLibraryCall
		}
		tag = tag[vEnd:]
	}

	var elem ir.ScalarKind
	switch tag {
	case "f32":
		elem = ir.ScalarF32
	case "f64":
		elem = ir.ScalarF64
	default:
		return Descriptor{}, ErrNotLibraryCall
	}

	ptrAS := ir.AddrSpaceGeneric
	if hasPtr {
		if FuncArity(id) != AritySincos || !strings.HasPrefix(ptrPart, "p") {
			return Descriptor{}, ErrNotLibraryCall
		}
		n, err := strconv.Atoi(ptrPart[1:])
		if err != nil {
			return Descriptor{}, ErrNotLibraryCall
		}
		ptrAS, err = safecast.Conv[uint8](n)
		if err != nil {
			return Descriptor{}, ErrNotLibraryCall
		}
	} else if FuncArity(id) == AritySincos {
		// sincos always mangles its output pointer.
		return Descriptor{}, ErrNotLibraryCall
	}

	d := NewDescriptorPtr(id, elem, lanes, ptrAS)
	d.Prefix = prefix
	return d, nil
}

// ParamTypes returns the IR parameter types the descriptor's signature
// expects. Pipe signatures are not fixed and return nil.
func (d Descriptor) ParamTypes() []ir.Type {
	if d.ID.IsPipe() {
		return nil
	}
	params := make([]ir.Type, len(d.Args))
	for i, a := range d.Args {
		if a.Ptr {
			params[i] = ir.Pointer(a.AddrSpace)
		} else {
			params[i] = ir.Vec(a.Elem, a.Lanes)
		}
	}
	return params
}

// ResultType returns the IR result type of the descriptor's signature.
func (d Descriptor) ResultType() ir.Type {
	if d.ID.IsPipe() {
		return ir.Int32()
	}
	return d.LeadType()
}

// Compatible checks the descriptor against a call's actual argument and
// result types. Incompatible calls are never rewritten.
func (d Descriptor) Compatible(args []ir.Operand, result ir.Type) bool {
	if d.ID.IsPipe() {
		return (len(args) == 4 || len(args) == 6) && result == ir.Int32()
	}
	want := d.ParamTypes()
	if len(args) != len(want) {
		return false
	}
	for i := range want {
		if args[i].Type != want[i] {
			return false
		}
	}
	return result == d.ResultType()
}
