package libcall

import (
	"math"

	"helios/internal/ir"
)

// foldPow simplifies pow, powr, and pown. Exact identities on the exponent
// apply unconditionally; everything past them requires unsafe math: small
// integral exponents expand into multiplies, the rest lowers through
// exp2(y * log2(|x|)) with the sign bit patched back in for pow/pown.
func (s *Simplifier) foldPow(f *ir.Func, v ir.ValueID, d Descriptor, b *ir.Builder) bool {
	ins := f.Instr(v)
	call := &ins.Call
	opr0 := call.Args[0]
	opr1 := call.Args[1]
	resType := ins.Type
	lead := d.Lead()
	vecSize := int(lead.Lanes)
	unsafe := s.isUnsafeMath(call.FMF)

	var cf float64
	var cint int64
	hasCF, hasCINT := false, false
	isZeroAggregate := false
	if opr1.Kind == ir.OperandConst {
		c := opr1.Const
		isZeroAggregate = c.Kind == ir.ConstZeroAggregate
		if vecSize == 1 {
			switch c.Kind {
			case ir.ConstFloat:
				cf, hasCF = c.Float, true
			case ir.ConstInt:
				cint, hasCINT = c.Int, true
			}
		} else {
			// Only vector constants whose lanes share one value are handled.
			if val, ok := c.SplatFloat(); ok {
				cf, hasCF = val, true
			}
			if val, ok := c.SplatInt(); ok {
				cint, hasCINT = val, true
			}
		}
	}

	// No unsafe math, no constant exponent: nothing to do.
	if !unsafe && !hasCF && !hasCINT && !isZeroAggregate {
		return false
	}

	if (hasCF && cf == 0) || (hasCINT && cint == 0) || isZeroAggregate {
		// pow/powr/pown(x, 0) == 1
		s.replaceCall(f, v, ir.SplatOp(resType, 1.0))
		return true
	}
	if (hasCF && exactlyValue(cf, 1.0, lead.Elem)) || (hasCINT && cint == 1) {
		// pow/powr/pown(x, 1.0) = x
		s.replaceCall(f, v, opr0)
		return true
	}
	if (hasCF && exactlyValue(cf, 2.0, lead.Elem)) || (hasCINT && cint == 2) {
		// pow/powr/pown(x, 2.0) = x*x
		nval := b.FMul(opr0, opr0)
		s.replaceCall(f, v, nval)
		return true
	}
	if (hasCF && exactlyValue(cf, -1.0, lead.Elem)) || (hasCINT && cint == -1) {
		// pow/powr/pown(x, -1.0) = 1.0/x
		nval := b.FDiv(ir.SplatOp(resType, 1.0), opr0)
		s.replaceCall(f, v, nval)
		return true
	}

	if hasCF && (exactlyValue(cf, 0.5, lead.Elem) || exactlyValue(cf, -0.5, lead.Elem)) {
		// pow[r](x, [-]0.5) = sqrt(x)
		issqrt := exactlyValue(cf, 0.5, lead.Elem)
		rootID := FuncRsqrt
		if issqrt {
			rootID = FuncSqrt
		}
		if name, ok := s.getFunction(d.WithID(rootID)); ok {
			nval := b.Call(name, []ir.Operand{opr0}, resType)
			s.replaceCall(f, v, nval)
			return true
		}
	}

	if !unsafe {
		return false
	}

	// Unsafe math optimization.

	// An exactly integral float exponent behaves like pown.
	expIsInt := hasCINT
	expInt := cint
	if hasCF {
		ival := int64(cf)
		if float64(ival) == cf {
			expIsInt, expInt = true, ival
		} else {
			expIsInt = false
		}
	}

	// pow/powr/pown(x, c) = [1/](x*x*..x) when trunc(c) == c and |c| <= 12.
	if expIsInt {
		abs := expInt
		if abs < 0 {
			abs = -abs
		}
		if abs <= 12 {
			var nval ir.Operand
			if abs == 0 {
				nval = ir.SplatOp(resType, 1.0)
			} else {
				var valx2, prod ir.Operand
				haveValx2, haveProd := false, false
				for abs > 0 {
					if !haveValx2 {
						valx2, haveValx2 = opr0, true
					} else {
						valx2 = b.FMul(valx2, valx2)
					}
					if abs&1 != 0 {
						if !haveProd {
							prod, haveProd = valx2, true
						} else {
							prod = b.FMul(prod, valx2)
						}
					}
					abs >>= 1
				}
				nval = prod
			}
			if expInt < 0 {
				nval = b.FDiv(ir.SplatOp(resType, 1.0), nval)
			}
			s.replaceCall(f, v, nval)
			return true
		}
	}

	// powr      ->  exp2(y * log2(x))
	// pown/pow  ->  powr(fabs(x), y) | (x & ((int)y << 31))
	exp2Name, ok := s.getFunction(d.WithID(FuncExp2))
	if !ok {
		return false
	}

	needlog, needabs, needcopysign := false, false, false
	var cnval ir.Operand
	haveCnval := false
	if vecSize == 1 {
		if opr0.Kind == ir.OperandConst && opr0.Const.Kind == ir.ConstFloat {
			val := opr0.Const.Float
			needcopysign = d.ID != FuncPowr && math.Signbit(val)
			cnval = ir.FloatOp(resType, roundToElem(math.Log2(math.Abs(val)), lead.Elem))
			haveCnval = true
		} else {
			needlog = true
			needcopysign = d.ID != FuncPowr
			needabs = needcopysign
		}
	} else {
		if opr0.Kind == ir.OperandConst && opr0.Const.Kind == ir.ConstVecFloat {
			lanes := make([]float64, vecSize)
			for i := 0; i < vecSize; i++ {
				val := opr0.Const.Lanes[i]
				if val < 0.0 {
					needcopysign = true
				}
				lanes[i] = roundToElem(math.Log2(math.Abs(val)), lead.Elem)
			}
			cnval = ir.ConstOp(resType, ir.Const{Kind: ir.ConstVecFloat, Lanes: lanes})
			haveCnval = true
		} else {
			needlog = true
			needcopysign = d.ID != FuncPowr
			needabs = needcopysign
		}
	}

	if needcopysign && d.ID == FuncPow {
		// Corner cases of a general pow() cannot be recovered unless the
		// exponent is a compile-time integral value; then proceed as pown.
		if opr1.Kind != ir.OperandConst {
			return false
		}
		for i := 0; i < vecSize; i++ {
			y, ok := constLaneFloat(opr1.Const, i)
			if !ok {
				return false
			}
			if y != float64(int64(y)) {
				return false
			}
		}
	}

	var log2Name string
	if needlog {
		if log2Name, ok = s.getFunction(d.WithID(FuncLog2)); !ok {
			return false
		}
	}

	var nval ir.Operand
	switch {
	case needabs:
		nval = b.Call(intrinsicName("fabs", opr0.Type), []ir.Operand{opr0}, opr0.Type)
	case haveCnval:
		nval = cnval
	default:
		nval = opr0
	}
	if needlog {
		nval = b.Call(log2Name, []ir.Operand{nval}, nval.Type)
	}

	expOp := opr1
	if d.ID == FuncPown {
		// convert int exponent to the operand's float type
		expOp = b.SIToFP(opr1, nval.Type)
	}
	nval = b.FMul(expOp, nval)
	nval = b.Call(exp2Name, []ir.Operand{nval}, nval.Type)

	if needcopysign {
		nTy := resType.IntOfSameWidth()
		size := int64(nTy.ScalarBits())
		var oprN ir.Operand
		if opr1.Type.IsInt() {
			oprN = b.ZExtOrBitcast(opr1, nTy)
		} else {
			oprN = b.FPToSI(opr1, nTy)
		}

		sign := b.Shl(oprN, size-1)
		sign = b.And(b.Bitcast(opr0, nTy), sign)
		nval = b.Or(b.Bitcast(nval, nTy), sign)
		nval = b.Bitcast(nval, resType)
	}

	s.replaceCall(f, v, nval)
	return true
}

// foldRootn applies the scalar rootn identities; any other degree is left
// unrewritten.
func (s *Simplifier) foldRootn(f *ir.Func, v ir.ValueID, d Descriptor, b *ir.Builder) bool {
	// skip vector calls
	if d.Lead().Lanes != 1 {
		return false
	}

	ins := f.Instr(v)
	opr0 := ins.Call.Args[0]
	opr1 := ins.Call.Args[1]
	resType := ins.Type

	if opr1.Kind != ir.OperandConst || opr1.Const.Kind != ir.ConstInt {
		return false
	}

	switch opr1.Const.Int {
	case 1: // rootn(x, 1) = x
		s.replaceCall(f, v, opr0)
		return true
	case 2: // rootn(x, 2) = sqrt(x)
		if name, ok := s.getFunction(d.WithID(FuncSqrt)); ok {
			nval := b.Call(name, []ir.Operand{opr0}, resType)
			s.replaceCall(f, v, nval)
			return true
		}
	case 3: // rootn(x, 3) = cbrt(x)
		if name, ok := s.getFunction(d.WithID(FuncCbrt)); ok {
			nval := b.Call(name, []ir.Operand{opr0}, resType)
			s.replaceCall(f, v, nval)
			return true
		}
	case -1: // rootn(x, -1) = 1.0/x
		nval := b.FDiv(ir.FloatOp(resType, 1.0), opr0)
		s.replaceCall(f, v, nval)
		return true
	case -2: // rootn(x, -2) = rsqrt(x)
		if name, ok := s.getFunction(d.WithID(FuncRsqrt)); ok {
			nval := b.Call(name, []ir.Operand{opr0}, resType)
			s.replaceCall(f, v, nval)
			return true
		}
	}
	return false
}
