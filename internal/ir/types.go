package ir

import "fmt"

// ScalarKind enumerates scalar element kinds.
type ScalarKind uint8

const (
	// ScalarF32 is a 32-bit IEEE float.
	ScalarF32 ScalarKind = iota
	// ScalarF64 is a 64-bit IEEE float.
	ScalarF64
	// ScalarI32 is a 32-bit signed integer.
	ScalarI32
	// ScalarI64 is a 64-bit signed integer.
	ScalarI64
	// ScalarI1 is a single-bit integer.
	ScalarI1
)

// Address spaces for pointer types.
const (
	AddrSpaceGeneric uint8 = 0
	AddrSpacePrivate uint8 = 5
)

// Type describes a value type: a scalar, a fixed vector of scalars, or a
// pointer. Pointers are opaque; Elem records the pointee only for allocas.
type Type struct {
	Scalar    ScalarKind
	Lanes     uint8 // 1 for scalars and pointers
	Ptr       bool
	AddrSpace uint8 // meaningful only when Ptr is set
}

// Float32 returns the f32 scalar type.
func Float32() Type { return Type{Scalar: ScalarF32, Lanes: 1} }

// Float64 returns the f64 scalar type.
func Float64() Type { return Type{Scalar: ScalarF64, Lanes: 1} }

// Int32 returns the i32 scalar type.
func Int32() Type { return Type{Scalar: ScalarI32, Lanes: 1} }

// Int64 returns the i64 scalar type.
func Int64() Type { return Type{Scalar: ScalarI64, Lanes: 1} }

// Vec returns a vector of the given scalar kind with the given lane count.
func Vec(k ScalarKind, lanes uint8) Type {
	if lanes <= 1 {
		return Type{Scalar: k, Lanes: 1}
	}
	return Type{Scalar: k, Lanes: lanes}
}

// Pointer returns an opaque pointer type in the given address space.
func Pointer(addrSpace uint8) Type {
	return Type{Lanes: 1, Ptr: true, AddrSpace: addrSpace}
}

// IsFloat reports whether the element type is a floating-point kind.
func (t Type) IsFloat() bool {
	return !t.Ptr && (t.Scalar == ScalarF32 || t.Scalar == ScalarF64)
}

// IsInt reports whether the element type is an integer kind.
func (t Type) IsInt() bool {
	return !t.Ptr && (t.Scalar == ScalarI32 || t.Scalar == ScalarI64 || t.Scalar == ScalarI1)
}

// IsVector reports whether the type has more than one lane.
func (t Type) IsVector() bool { return t.Lanes > 1 }

// Elem returns the scalar type of one lane.
func (t Type) Elem() Type {
	if t.Ptr {
		return t
	}
	return Type{Scalar: t.Scalar, Lanes: 1}
}

// ScalarBits returns the bit width of one lane.
func (t Type) ScalarBits() int {
	switch t.Scalar {
	case ScalarF32, ScalarI32:
		return 32
	case ScalarF64, ScalarI64:
		return 64
	case ScalarI1:
		return 1
	}
	return 0
}

// IntOfSameWidth returns the integer type with the same lane count and the
// same per-lane bit width (i32 lanes for f32, i64 lanes for f64).
func (t Type) IntOfSameWidth() Type {
	k := ScalarI32
	if t.Scalar == ScalarF64 || t.Scalar == ScalarI64 {
		k = ScalarI64
	}
	return Type{Scalar: k, Lanes: t.Lanes}
}

func (t Type) String() string {
	if t.Ptr {
		return fmt.Sprintf("ptr(%d)", t.AddrSpace)
	}
	s := ""
	switch t.Scalar {
	case ScalarF32:
		s = "f32"
	case ScalarF64:
		s = "f64"
	case ScalarI32:
		s = "i32"
	case ScalarI64:
		s = "i64"
	case ScalarI1:
		s = "i1"
	}
	if t.Lanes > 1 {
		return fmt.Sprintf("v%d%s", t.Lanes, s)
	}
	return s
}
