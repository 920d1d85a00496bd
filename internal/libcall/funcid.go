// Package libcall simplifies calls to math library functions in helios IR
// before code generation: exact special-value folding, elevated-precision
// constant evaluation under unsafe math, algebraic identities for the power
// and root families, sin/cos fusion, intrinsic substitution, native-variant
// substitution, and sized-pipe specialization.
package libcall

// FuncID enumerates the library functions the pass understands.
type FuncID uint8

const (
	// FuncNone is the zero id; it matches no library function.
	FuncNone FuncID = iota
	FuncACos
	FuncACosh
	FuncACospi
	FuncASin
	FuncASinh
	FuncASinpi
	FuncATan
	FuncATanh
	FuncATanpi
	FuncCbrt
	FuncCeil
	FuncCopysign
	FuncCos
	FuncCosh
	FuncCospi
	FuncDivide
	FuncErf
	FuncErfc
	FuncExp
	FuncExp2
	FuncExp10
	FuncExpm1
	FuncFabs
	FuncFloor
	FuncFma
	FuncFmax
	FuncFmin
	FuncLdexp
	FuncLog
	FuncLog2
	FuncLog10
	FuncMad
	FuncPow
	FuncPown
	FuncPowr
	FuncRecip
	FuncRint
	FuncRootn
	FuncRound
	FuncRsqrt
	FuncSin
	FuncSincos
	FuncSinh
	FuncSinpi
	FuncSqrt
	FuncTan
	FuncTanh
	FuncTanpi
	FuncTgamma
	FuncTrunc
	FuncReadPipe2
	FuncReadPipe4
	FuncWritePipe2
	FuncWritePipe4
)

var funcNames = map[FuncID]string{
	FuncACos:       "acos",
	FuncACosh:      "acosh",
	FuncACospi:     "acospi",
	FuncASin:       "asin",
	FuncASinh:      "asinh",
	FuncASinpi:     "asinpi",
	FuncATan:       "atan",
	FuncATanh:      "atanh",
	FuncATanpi:     "atanpi",
	FuncCbrt:       "cbrt",
	FuncCeil:       "ceil",
	FuncCopysign:   "copysign",
	FuncCos:        "cos",
	FuncCosh:       "cosh",
	FuncCospi:      "cospi",
	FuncDivide:     "divide",
	FuncErf:        "erf",
	FuncErfc:       "erfc",
	FuncExp:        "exp",
	FuncExp2:       "exp2",
	FuncExp10:      "exp10",
	FuncExpm1:      "expm1",
	FuncFabs:       "fabs",
	FuncFloor:      "floor",
	FuncFma:        "fma",
	FuncFmax:       "fmax",
	FuncFmin:       "fmin",
	FuncLdexp:      "ldexp",
	FuncLog:        "log",
	FuncLog2:       "log2",
	FuncLog10:      "log10",
	FuncMad:        "mad",
	FuncPow:        "pow",
	FuncPown:       "pown",
	FuncPowr:       "powr",
	FuncRecip:      "recip",
	FuncRint:       "rint",
	FuncRootn:      "rootn",
	FuncRound:      "round",
	FuncRsqrt:      "rsqrt",
	FuncSin:        "sin",
	FuncSincos:     "sincos",
	FuncSinh:       "sinh",
	FuncSinpi:      "sinpi",
	FuncSqrt:       "sqrt",
	FuncTan:        "tan",
	FuncTanh:       "tanh",
	FuncTanpi:      "tanpi",
	FuncTgamma:     "tgamma",
	FuncTrunc:      "trunc",
	FuncReadPipe2:  "__read_pipe_2",
	FuncReadPipe4:  "__read_pipe_4",
	FuncWritePipe2: "__write_pipe_2",
	FuncWritePipe4: "__write_pipe_4",
}

var funcByName = func() map[string]FuncID {
	m := make(map[string]FuncID, len(funcNames))
	for id, name := range funcNames {
		m[name] = id
	}
	return m
}()

// Name returns the bare (unmangled) base name of the function.
func (id FuncID) Name() string { return funcNames[id] }

// IsPipe reports whether the id is one of the sized pipe read/write symbols.
func (id FuncID) IsPipe() bool {
	switch id {
	case FuncReadPipe2, FuncReadPipe4, FuncWritePipe2, FuncWritePipe4:
		return true
	}
	return false
}

// Arity describes the argument shape of a function id.
type Arity uint8

const (
	// ArityUnary is one floating argument.
	ArityUnary Arity = iota
	// ArityBinary is two floating arguments of the same shape.
	ArityBinary
	// ArityBinaryIntSecond is a floating argument plus an i32 argument.
	ArityBinaryIntSecond
	// ArityTernary is three floating arguments of the same shape.
	ArityTernary
	// AritySincos is a floating argument plus an output pointer.
	AritySincos
	// ArityPipe is a sized pipe call (4 or 6 arguments).
	ArityPipe
)

// FuncArity returns the argument shape for an id.
func FuncArity(id FuncID) Arity {
	switch id {
	case FuncPow, FuncPowr, FuncDivide, FuncCopysign, FuncFmax, FuncFmin:
		return ArityBinary
	case FuncPown, FuncRootn, FuncLdexp:
		return ArityBinaryIntSecond
	case FuncFma, FuncMad:
		return ArityTernary
	case FuncSincos:
		return AritySincos
	case FuncReadPipe2, FuncReadPipe4, FuncWritePipe2, FuncWritePipe4:
		return ArityPipe
	}
	return ArityUnary
}

// HasNative reports whether an approximate native variant of the function
// exists in the device library.
func HasNative(id FuncID) bool {
	switch id {
	case FuncDivide, FuncCos, FuncExp, FuncExp2, FuncExp10, FuncLog,
		FuncLog2, FuncLog10, FuncPowr, FuncRecip, FuncRsqrt, FuncSin,
		FuncSincos, FuncSqrt, FuncTan:
		return true
	}
	return false
}
