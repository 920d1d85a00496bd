package ir

import "strings"

// ValueID identifies an instruction (and the value it defines) within a
// function's arena. IDs stay stable across insertion and erasure.
type ValueID int32

// FastMath is a per-call set of fast-math flags.
type FastMath uint8

const (
	// FMNoNaN asserts the operands and result are never NaN.
	FMNoNaN FastMath = 1 << iota
	// FMNoInf asserts the operands and result are never infinite.
	FMNoInf
	// FMNoSignedZero permits ignoring the sign of zero.
	FMNoSignedZero
	// FMAllowReciprocal permits reciprocal forms instead of division.
	FMAllowReciprocal
	// FMApproxFunc permits approximate library function substitution.
	FMApproxFunc
	// FMAllowContract permits fusing operations (e.g. mul+add into fma).
	FMAllowContract
)

// FMFast is the flag set that by itself implies unsafe math.
const FMFast = FMNoNaN | FMNoInf | FMNoSignedZero | FMAllowReciprocal | FMApproxFunc

// IsFast reports whether every flag that jointly defines unsafe math is set.
func (f FastMath) IsFast() bool { return f&FMFast == FMFast }

func (f FastMath) String() string {
	if f == 0 {
		return ""
	}
	var parts []string
	for _, e := range [...]struct {
		bit  FastMath
		name string
	}{
		{FMNoNaN, "nnan"},
		{FMNoInf, "ninf"},
		{FMNoSignedZero, "nsz"},
		{FMAllowReciprocal, "arcp"},
		{FMApproxFunc, "afn"},
		{FMAllowContract, "contract"},
	} {
		if f&e.bit != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, " ")
}

// CallAttrs is a per-call attribute set.
type CallAttrs uint8

const (
	// AttrNoBuiltin forbids treating the callee as a known builtin.
	AttrNoBuiltin CallAttrs = 1 << iota
	// AttrNoInline forbids inlining the call.
	AttrNoInline
	// AttrMinSize requests minimum code size.
	AttrMinSize
	// AttrStrictFP requests strict floating-point semantics.
	AttrStrictFP
)

// Loc is a debug location token.
type Loc struct {
	File string
	Line uint32
}

// MergeLocs combines locations from merged instructions into one
// representative location: a location shared by all survives, anything else
// collapses to the zero location.
func MergeLocs(locs []Loc) Loc {
	if len(locs) == 0 {
		return Loc{}
	}
	first := locs[0]
	for _, l := range locs[1:] {
		if l != first {
			return Loc{}
		}
	}
	return first
}

// OperandKind distinguishes operand kinds.
type OperandKind uint8

const (
	// OperandConst is a constant operand.
	OperandConst OperandKind = iota
	// OperandParam references a function parameter.
	OperandParam
	// OperandValue references the result of an instruction.
	OperandValue
)

// Operand references a value consumed by an instruction.
type Operand struct {
	Kind  OperandKind
	Type  Type
	Const Const
	Param int32
	Value ValueID
}

// ConstOp returns a constant operand of the given type.
func ConstOp(t Type, c Const) Operand { return Operand{Kind: OperandConst, Type: t, Const: c} }

// FloatOp returns a scalar float constant operand.
func FloatOp(t Type, v float64) Operand {
	return Operand{Kind: OperandConst, Type: t, Const: Const{Kind: ConstFloat, Float: v}}
}

// SplatOp returns a constant operand with every lane set to v; scalar types
// get a plain float constant.
func SplatOp(t Type, v float64) Operand {
	if !t.IsVector() {
		return FloatOp(t, v)
	}
	lanes := make([]float64, t.Lanes)
	for i := range lanes {
		lanes[i] = v
	}
	return Operand{Kind: OperandConst, Type: t, Const: Const{Kind: ConstVecFloat, Lanes: lanes}}
}

// IntOp returns a scalar integer constant operand.
func IntOp(t Type, v int64) Operand {
	return Operand{Kind: OperandConst, Type: t, Const: Const{Kind: ConstInt, Int: v}}
}

// ParamOp returns an operand referencing function parameter idx.
func ParamOp(idx int32, t Type) Operand { return Operand{Kind: OperandParam, Type: t, Param: idx} }

// ValueOp returns an operand referencing an instruction result.
func ValueOp(v ValueID, t Type) Operand { return Operand{Kind: OperandValue, Type: t, Value: v} }

// SameValue reports whether two operands denote the identical value:
// the same instruction result, the same parameter, or bit-equal constants.
func SameValue(a, b Operand) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case OperandConst:
		return a.Type == b.Type && a.Const.Equal(b.Const)
	case OperandParam:
		return a.Param == b.Param
	case OperandValue:
		return a.Value == b.Value
	}
	return false
}

// InstrKind enumerates instruction kinds.
type InstrKind uint8

const (
	// InstrNop is an erased instruction slot.
	InstrNop InstrKind = iota
	// InstrCall is a function call.
	InstrCall
	// InstrBin is a binary operation.
	InstrBin
	// InstrCast is a conversion.
	InstrCast
	// InstrLoad reads through a pointer.
	InstrLoad
	// InstrStore writes through a pointer.
	InstrStore
	// InstrAlloca reserves a private scratch slot.
	InstrAlloca
	// InstrRet returns from the function.
	InstrRet
)

// BinOp enumerates binary operators.
type BinOp uint8

const (
	// BinFMul is floating-point multiplication.
	BinFMul BinOp = iota
	// BinFDiv is floating-point division.
	BinFDiv
	// BinShl is a left shift.
	BinShl
	// BinAnd is a bitwise and.
	BinAnd
	// BinOr is a bitwise or.
	BinOr
)

// CastOp enumerates conversion operators.
type CastOp uint8

const (
	// CastBit reinterprets bits at the same width.
	CastBit CastOp = iota
	// CastAddrSpace converts a pointer between address spaces.
	CastAddrSpace
	// CastSIToFP converts a signed integer to floating point.
	CastSIToFP
	// CastFPToSI converts floating point to a signed integer.
	CastFPToSI
	// CastZExt zero-extends an integer.
	CastZExt
)

// CalleeKind distinguishes call target kinds.
type CalleeKind uint8

const (
	// CalleeSym is a direct call to a named symbol.
	CalleeSym CalleeKind = iota
	// CalleeValue is an indirect call through a value.
	CalleeValue
)

// IntrinsicPrefix marks callee symbols that are IR intrinsics rather than
// library functions.
const IntrinsicPrefix = "helios."

// Callee is a call target.
type Callee struct {
	Kind  CalleeKind
	Sym   string
	Value Operand
}

// IsIntrinsic reports whether the callee is an IR intrinsic symbol.
func (c Callee) IsIntrinsic() bool {
	return c.Kind == CalleeSym && strings.HasPrefix(c.Sym, IntrinsicPrefix)
}

// CallInstr is a function call instruction.
type CallInstr struct {
	Callee Callee
	Args   []Operand
	FMF    FastMath
	Attrs  CallAttrs

	// Accuracy is the maximum permitted error in ULPs from accuracy
	// metadata; 0 means unconstrained.
	Accuracy float32
}

// BinInstr is a binary operation.
type BinInstr struct {
	Op BinOp
	L  Operand
	R  Operand
}

// CastInstr is a conversion.
type CastInstr struct {
	Op  CastOp
	Val Operand
}

// LoadInstr reads a value through a pointer.
type LoadInstr struct {
	Ptr Operand
}

// StoreInstr writes a value through a pointer.
type StoreInstr struct {
	Val Operand
	Ptr Operand
}

// AllocaInstr reserves a scratch slot of the given element type. The result
// is a pointer in the private address space.
type AllocaInstr struct {
	Elem Type
}

// RetInstr returns from the function.
type RetInstr struct {
	HasValue bool
	Value    Operand
}

// Instr represents an instruction. Type is the result type for
// value-producing kinds.
type Instr struct {
	Kind InstrKind
	Type Type
	Loc  Loc

	Call   CallInstr
	Bin    BinInstr
	Cast   CastInstr
	Load   LoadInstr
	Store  StoreInstr
	Alloca AllocaInstr
	Ret    RetInstr
}

// Operands returns pointers to the instruction's operand slots.
func (i *Instr) Operands() []*Operand {
	switch i.Kind {
	case InstrCall:
		ops := make([]*Operand, 0, len(i.Call.Args)+1)
		if i.Call.Callee.Kind == CalleeValue {
			ops = append(ops, &i.Call.Callee.Value)
		}
		for a := range i.Call.Args {
			ops = append(ops, &i.Call.Args[a])
		}
		return ops
	case InstrBin:
		return []*Operand{&i.Bin.L, &i.Bin.R}
	case InstrCast:
		return []*Operand{&i.Cast.Val}
	case InstrLoad:
		return []*Operand{&i.Load.Ptr}
	case InstrStore:
		return []*Operand{&i.Store.Val, &i.Store.Ptr}
	case InstrRet:
		if i.Ret.HasValue {
			return []*Operand{&i.Ret.Value}
		}
	}
	return nil
}
