package libcall

import (
	"math"

	"helios/internal/ir"
)

// TableEntry is one exact (input, result) pair. Inputs match bit-exactly in
// the call's element type, so +0 and -0 are distinct rows.
type TableEntry struct {
	Result float64
	Input  float64
}

const (
	mathPi      = math.Pi
	mathE       = math.E
	mathSqrt2   = math.Sqrt2
	mathSqrt1_2 = 1 / math.Sqrt2
)

var tblACos = []TableEntry{
	{mathPi / 2.0, 0.0},
	{mathPi / 2.0, math.Copysign(0, -1)},
	{0.0, 1.0},
	{mathPi, -1.0},
}
var tblACosh = []TableEntry{
	{0.0, 1.0},
}
var tblACospi = []TableEntry{
	{0.5, 0.0},
	{0.5, math.Copysign(0, -1)},
	{0.0, 1.0},
	{1.0, -1.0},
}
var tblASin = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
	{mathPi / 2.0, 1.0},
	{-mathPi / 2.0, -1.0},
}
var tblASinh = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
}
var tblASinpi = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
	{0.5, 1.0},
	{-0.5, -1.0},
}
var tblATan = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
	{mathPi / 4.0, 1.0},
	{-mathPi / 4.0, -1.0},
}
var tblATanh = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
}
var tblATanpi = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
	{0.25, 1.0},
	{-0.25, -1.0},
}
var tblCbrt = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
	{1.0, 1.0},
	{-1.0, -1.0},
}
var tblCos = []TableEntry{
	{1.0, 0.0},
	{1.0, math.Copysign(0, -1)},
}
var tblCosh = []TableEntry{
	{1.0, 0.0},
	{1.0, math.Copysign(0, -1)},
}
var tblCospi = []TableEntry{
	{1.0, 0.0},
	{1.0, math.Copysign(0, -1)},
}
var tblErfc = []TableEntry{
	{1.0, 0.0},
	{1.0, math.Copysign(0, -1)},
}
var tblErf = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
}
var tblExp = []TableEntry{
	{1.0, 0.0},
	{1.0, math.Copysign(0, -1)},
	{mathE, 1.0},
}
var tblExp2 = []TableEntry{
	{1.0, 0.0},
	{1.0, math.Copysign(0, -1)},
	{2.0, 1.0},
}
var tblExp10 = []TableEntry{
	{1.0, 0.0},
	{1.0, math.Copysign(0, -1)},
	{10.0, 1.0},
}
var tblExpm1 = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
}
var tblLog = []TableEntry{
	{0.0, 1.0},
	{1.0, mathE},
}
var tblLog2 = []TableEntry{
	{0.0, 1.0},
	{1.0, 2.0},
}
var tblLog10 = []TableEntry{
	{0.0, 1.0},
	{1.0, 10.0},
}
var tblRsqrt = []TableEntry{
	{1.0, 1.0},
	{mathSqrt1_2, 2.0},
}
var tblSin = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
}
var tblSinh = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
}
var tblSinpi = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
}
var tblSqrt = []TableEntry{
	{0.0, 0.0},
	{1.0, 1.0},
	{mathSqrt2, 2.0},
}
var tblTan = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
}
var tblTanh = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
}
var tblTanpi = []TableEntry{
	{0.0, 0.0},
	{math.Copysign(0, -1), math.Copysign(0, -1)},
}
var tblTgamma = []TableEntry{
	{1.0, 1.0},
	{1.0, 2.0},
	{2.0, 3.0},
	{6.0, 4.0},
}

// optTable returns the special-value table for a function id, nil if none.
// The native variants share the plain tables.
func optTable(id FuncID) []TableEntry {
	switch id {
	case FuncACos:
		return tblACos
	case FuncACosh:
		return tblACosh
	case FuncACospi:
		return tblACospi
	case FuncASin:
		return tblASin
	case FuncASinh:
		return tblASinh
	case FuncASinpi:
		return tblASinpi
	case FuncATan:
		return tblATan
	case FuncATanh:
		return tblATanh
	case FuncATanpi:
		return tblATanpi
	case FuncCbrt:
		return tblCbrt
	case FuncCos:
		return tblCos
	case FuncCosh:
		return tblCosh
	case FuncCospi:
		return tblCospi
	case FuncErfc:
		return tblErfc
	case FuncErf:
		return tblErf
	case FuncExp:
		return tblExp
	case FuncExp2:
		return tblExp2
	case FuncExp10:
		return tblExp10
	case FuncExpm1:
		return tblExpm1
	case FuncLog:
		return tblLog
	case FuncLog2:
		return tblLog2
	case FuncLog10:
		return tblLog10
	case FuncRsqrt:
		return tblRsqrt
	case FuncSin:
		return tblSin
	case FuncSinh:
		return tblSinh
	case FuncSinpi:
		return tblSinpi
	case FuncSqrt:
		return tblSqrt
	case FuncTan:
		return tblTan
	case FuncTanh:
		return tblTanh
	case FuncTanpi:
		return tblTanpi
	case FuncTgamma:
		return tblTgamma
	}
	return nil
}

// exactlyValue reports whether a constant lane equals a table value
// bit-exactly in the call's element type. Signed zero stays distinct.
func exactlyValue(have, want float64, elem ir.ScalarKind) bool {
	if elem == ir.ScalarF32 {
		return math.Float32bits(float32(have)) == math.Float32bits(float32(want))
	}
	return ir.FloatBitsEqual(have, want)
}

// constLaneFloat extracts lane i of a floating constant.
func constLaneFloat(c ir.Const, i int) (float64, bool) {
	switch c.Kind {
	case ir.ConstFloat:
		return c.Float, true
	case ir.ConstVecFloat:
		if i < len(c.Lanes) {
			return c.Lanes[i], true
		}
	case ir.ConstZeroAggregate:
		return 0, true
	}
	return 0, false
}

// tdoFold performs table-driven constant folding: every lane of the first
// argument must match some table row exactly, or the whole fold fails.
// There is no partial-lane folding.
func (s *Simplifier) tdoFold(f *ir.Func, v ir.ValueID, d Descriptor) bool {
	tr := optTable(d.ID)
	if len(tr) == 0 {
		return false
	}

	ins := f.Instr(v)
	if len(ins.Call.Args) == 0 {
		return false
	}
	opr0 := ins.Call.Args[0]
	if opr0.Kind != ir.OperandConst {
		return false
	}
	lead := d.Lead()

	lookup := func(val float64) (float64, bool) {
		for _, e := range tr {
			if exactlyValue(val, e.Input, lead.Elem) {
				return e.Result, true
			}
		}
		return 0, false
	}

	if lead.Lanes > 1 {
		folded := make([]float64, lead.Lanes)
		for lane := 0; lane < int(lead.Lanes); lane++ {
			elt, ok := constLaneFloat(opr0.Const, lane)
			if !ok {
				return false
			}
			res, ok := lookup(elt)
			if !ok {
				// This vector constant is not fully covered by the table.
				return false
			}
			folded[lane] = roundToElem(res, lead.Elem)
		}
		nval := ir.ConstOp(ins.Type, ir.Const{Kind: ir.ConstVecFloat, Lanes: folded})
		s.replaceCall(f, v, nval)
		return true
	}

	val, ok := constLaneFloat(opr0.Const, 0)
	if !ok {
		return false
	}
	res, ok := lookup(val)
	if !ok {
		return false
	}
	nval := ir.FloatOp(ins.Type, roundToElem(res, lead.Elem))
	s.replaceCall(f, v, nval)
	return true
}

// roundToElem rounds an elevated-precision result to the declared element
// type.
func roundToElem(v float64, elem ir.ScalarKind) float64 {
	if elem == ir.ScalarF32 {
		return float64(float32(v))
	}
	return v
}
