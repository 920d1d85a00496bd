package ir

import "math"

// ConstKind distinguishes constant kinds.
type ConstKind uint8

const (
	// ConstFloat is a scalar floating-point constant.
	ConstFloat ConstKind = iota
	// ConstVecFloat is a vector of floating-point lanes.
	ConstVecFloat
	// ConstInt is a scalar integer constant.
	ConstInt
	// ConstVecInt is a vector of integer lanes.
	ConstVecInt
	// ConstZeroAggregate is an all-zero aggregate of any shape.
	ConstZeroAggregate
)

// Const represents a typed constant. Float payloads are stored as float64;
// for f32 constants the stored value is the exact widening of the f32 value,
// so bit-level comparisons via Float32bits stay exact.
type Const struct {
	Kind     ConstKind
	Float    float64
	Lanes    []float64
	Int      int64
	IntLanes []int64
}

// FloatBitsEqual reports bit-exact equality of two float64 values. Signed
// zero is distinct; NaN payloads compare by bit pattern.
func FloatBitsEqual(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

// IsZero reports whether the constant is numerically zero in every lane,
// counting both +0 and -0.
func (c Const) IsZero() bool {
	switch c.Kind {
	case ConstFloat:
		return c.Float == 0
	case ConstInt:
		return c.Int == 0
	case ConstVecFloat:
		for _, v := range c.Lanes {
			if v != 0 {
				return false
			}
		}
		return true
	case ConstVecInt:
		for _, v := range c.IntLanes {
			if v != 0 {
				return false
			}
		}
		return true
	case ConstZeroAggregate:
		return true
	}
	return false
}

// SplatFloat returns the single float value all lanes share, if any.
func (c Const) SplatFloat() (float64, bool) {
	switch c.Kind {
	case ConstFloat:
		return c.Float, true
	case ConstVecFloat:
		if len(c.Lanes) == 0 {
			return 0, false
		}
		first := c.Lanes[0]
		for _, v := range c.Lanes[1:] {
			if !FloatBitsEqual(v, first) {
				return 0, false
			}
		}
		return first, true
	}
	return 0, false
}

// SplatInt returns the single integer value all lanes share, if any.
func (c Const) SplatInt() (int64, bool) {
	switch c.Kind {
	case ConstInt:
		return c.Int, true
	case ConstVecInt:
		if len(c.IntLanes) == 0 {
			return 0, false
		}
		first := c.IntLanes[0]
		for _, v := range c.IntLanes[1:] {
			if v != first {
				return 0, false
			}
		}
		return first, true
	}
	return 0, false
}

// Equal reports structural equality of two constants, bit-exact for floats.
func (c Const) Equal(o Const) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ConstFloat:
		return FloatBitsEqual(c.Float, o.Float)
	case ConstInt:
		return c.Int == o.Int
	case ConstVecFloat:
		if len(c.Lanes) != len(o.Lanes) {
			return false
		}
		for i := range c.Lanes {
			if !FloatBitsEqual(c.Lanes[i], o.Lanes[i]) {
				return false
			}
		}
		return true
	case ConstVecInt:
		if len(c.IntLanes) != len(o.IntLanes) {
			return false
		}
		for i := range c.IntLanes {
			if c.IntLanes[i] != o.IntLanes[i] {
				return false
			}
		}
		return true
	case ConstZeroAggregate:
		return true
	}
	return false
}
