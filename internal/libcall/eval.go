package libcall

import (
	"math"

	"helios/internal/ir"
)

// constLaneInt extracts lane i of an integer constant.
func constLaneInt(c ir.Const, i int) (int64, bool) {
	switch c.Kind {
	case ir.ConstInt:
		return c.Int, true
	case ir.ConstVecInt:
		if i < len(c.IntLanes) {
			return c.IntLanes[i], true
		}
	case ir.ConstZeroAggregate:
		return 0, true
	}
	return 0, false
}

// evaluateScalar computes one lane of a math library function in elevated
// (double) precision. hasInt marks an available integer second operand for
// pown/rootn. An unrecognized id fails the fold.
func evaluateScalar(id FuncID, opr0, opr1 float64, iopr1 int64, hasInt bool) (res0, res1 float64, ok bool) {
	switch id {
	case FuncACos:
		return math.Acos(opr0), 0, true
	case FuncACosh:
		// acosh(x) == log(x + sqrt(x*x - 1))
		return math.Log(opr0 + math.Sqrt(opr0*opr0-1.0)), 0, true
	case FuncACospi:
		return math.Acos(opr0) / mathPi, 0, true
	case FuncASin:
		return math.Asin(opr0), 0, true
	case FuncASinh:
		// asinh(x) == log(x + sqrt(x*x + 1))
		return math.Log(opr0 + math.Sqrt(opr0*opr0+1.0)), 0, true
	case FuncASinpi:
		return math.Asin(opr0) / mathPi, 0, true
	case FuncATan:
		return math.Atan(opr0), 0, true
	case FuncATanh:
		// atanh(x) == (log(x+1) - log(x-1))/2
		return (math.Log(opr0+1.0) - math.Log(opr0-1.0)) / 2.0, 0, true
	case FuncATanpi:
		return math.Atan(opr0) / mathPi, 0, true
	case FuncCbrt:
		if opr0 < 0.0 {
			return -math.Pow(-opr0, 1.0/3.0), 0, true
		}
		return math.Pow(opr0, 1.0/3.0), 0, true
	case FuncCos:
		return math.Cos(opr0), 0, true
	case FuncCosh:
		return math.Cosh(opr0), 0, true
	case FuncCospi:
		return math.Cos(mathPi * opr0), 0, true
	case FuncExp:
		return math.Exp(opr0), 0, true
	case FuncExp2:
		return math.Pow(2.0, opr0), 0, true
	case FuncExp10:
		return math.Pow(10.0, opr0), 0, true
	case FuncLog:
		return math.Log(opr0), 0, true
	case FuncLog2:
		return math.Log(opr0) / math.Log(2.0), 0, true
	case FuncLog10:
		return math.Log(opr0) / math.Log(10.0), 0, true
	case FuncRsqrt:
		return 1.0 / math.Sqrt(opr0), 0, true
	case FuncSin:
		return math.Sin(opr0), 0, true
	case FuncSinh:
		return math.Sinh(opr0), 0, true
	case FuncSinpi:
		return math.Sin(mathPi * opr0), 0, true
	case FuncTan:
		return math.Tan(opr0), 0, true
	case FuncTanh:
		return math.Tanh(opr0), 0, true
	case FuncTanpi:
		return math.Tan(mathPi * opr0), 0, true

	// two-arg functions
	case FuncPow, FuncPowr:
		return math.Pow(opr0, opr1), 0, true
	case FuncPown:
		if hasInt {
			return math.Pow(opr0, float64(iopr1)), 0, true
		}
		return 0, 0, false
	case FuncRootn:
		if hasInt {
			return math.Pow(opr0, 1.0/float64(iopr1)), 0, true
		}
		return 0, 0, false

	// with ptr arg
	case FuncSincos:
		return math.Sin(opr0), math.Cos(opr0), true
	}

	return 0, 0, false
}

// evaluateCall folds a call whose operands are all compile-time constants,
// computing in elevated precision and rounding to the declared element type
// per lane. Every lane of every operand must be constant or the whole fold
// fails; sincos stores its second result to the output pointer.
func (s *Simplifier) evaluateCall(f *ir.Func, v ir.ValueID, d Descriptor) bool {
	ins := f.Instr(v)
	call := &ins.Call
	if len(call.Args) > 3 {
		return false
	}

	var copr0, copr1 ir.Const
	hasC0, hasC1 := false, false
	if len(call.Args) > 0 {
		if call.Args[0].Kind != ir.OperandConst {
			return false
		}
		copr0, hasC0 = call.Args[0].Const, true
	}
	if len(call.Args) > 1 {
		if call.Args[1].Kind == ir.OperandConst {
			copr1, hasC1 = call.Args[1].Const, true
		} else if d.ID != FuncSincos {
			return false
		}
	}
	if !hasC0 {
		return false
	}

	lead := d.Lead()
	vecSize := int(lead.Lanes)
	if vecSize > 16 {
		return false
	}
	hasTwoResults := d.ID == FuncSincos

	intSecond := FuncArity(d.ID) == ArityBinaryIntSecond
	var dval0, dval1 [16]float64
	for i := 0; i < vecSize; i++ {
		opr0, ok := constLaneFloat(copr0, i)
		if !ok {
			return false
		}
		var opr1 float64
		var iopr1 int64
		hasInt := false
		if hasC1 {
			if intSecond {
				if iopr1, hasInt = constLaneInt(copr1, i); !hasInt {
					return false
				}
			} else if opr1, ok = constLaneFloat(copr1, i); !ok {
				return false
			}
		}
		r0, r1, ok := evaluateScalar(d.ID, opr0, opr1, iopr1, hasInt)
		if !ok {
			return false
		}
		dval0[i], dval1[i] = r0, r1
	}

	makeConst := func(vals [16]float64) ir.Operand {
		if vecSize == 1 {
			return ir.FloatOp(ins.Type, roundToElem(vals[0], lead.Elem))
		}
		lanes := make([]float64, vecSize)
		for i := 0; i < vecSize; i++ {
			lanes[i] = roundToElem(vals[i], lead.Elem)
		}
		return ir.ConstOp(ins.Type, ir.Const{Kind: ir.ConstVecFloat, Lanes: lanes})
	}

	nval0 := makeConst(dval0)
	if hasTwoResults {
		b := ir.NewBuilder(f)
		b.SetInsertBefore(v)
		b.Loc = ins.Loc
		b.Store(makeConst(dval1), call.Args[1])
	}

	s.replaceCall(f, v, nval0)
	return true
}
