package libcall

import (
	"slices"

	"helios/internal/ir"
)

// Simplifier rewrites library calls within one module. It holds only
// read-only configuration; per-site state is derived and discarded at each
// visit, so instances may run over distinct functions concurrently.
type Simplifier struct {
	cfg Config
	mod *ir.Module
}

// NewSimplifier returns a simplifier over mod with the given configuration.
func NewSimplifier(mod *ir.Module, cfg Config) *Simplifier {
	return &Simplifier{cfg: cfg, mod: mod}
}

func (s *Simplifier) isUnsafeMath(fmf ir.FastMath) bool {
	return s.cfg.UnsafeMath || fmf.IsFast()
}

func (s *Simplifier) canIncreasePrecisionOfConstantFold(fmf ir.FastMath) bool {
	// TODO: refine to approxFunc or contract
	return s.isUnsafeMath(fmf)
}

// replaceCall redirects all uses of the call to the replacement value and
// erases the call.
func (s *Simplifier) replaceCall(f *ir.Func, v ir.ValueID, with ir.Operand) {
	f.ReplaceAllUses(v, with)
	f.Erase(v)
}

// getFunction resolves a descriptor to a callable symbol. In pre-link mode
// unresolved library symbols may be declared on demand; otherwise they must
// pre-exist in the module.
func (s *Simplifier) getFunction(d Descriptor) (string, bool) {
	name := d.Mangle()
	decl := ir.FuncDecl{Name: name, Params: d.ParamTypes(), Result: d.ResultType()}
	if _, ok := s.mod.GetOrInsert(decl, s.cfg.PreLink); !ok {
		return "", false
	}
	return name, true
}

// Run applies the fold cascade to every call site of f in forward order and
// reports whether anything changed. The iterator is advanced past the
// current site before it is mutated: each block's instruction list is
// snapshotted, and erased sites are skipped by kind.
func (s *Simplifier) Run(f *ir.Func) bool {
	changed := false
	for bi := range f.Blocks {
		ids := slices.Clone(f.Blocks[bi].Instrs)
		for _, v := range ids {
			ins := f.Instr(v)
			if ins == nil || ins.Kind != ir.InstrCall {
				continue
			}
			if s.fold(f, v) {
				changed = true
			}
		}
	}
	return changed
}

// fold tries the ordered rewrite cascade on one call site. It returns false
// when no rule applies; at most one rewrite happens per visit.
func (s *Simplifier) fold(f *ir.Func, v ir.ValueID) bool {
	ins := f.Instr(v)
	if ins == nil || ins.Kind != ir.InstrCall {
		return false
	}
	call := &ins.Call

	// Ignore indirect calls, intrinsics, and sites marked no-builtin.
	if call.Callee.Kind != ir.CalleeSym || call.Callee.IsIntrinsic() ||
		call.Attrs&ir.AttrNoBuiltin != 0 {
		return false
	}

	d, err := Parse(call.Callee.Sym)
	if err != nil {
		return false
	}
	if !d.Compatible(call.Args, ins.Type) {
		return false
	}

	if s.tdoFold(f, v, d) {
		return true
	}

	if !ins.Type.IsFloat() {
		switch d.ID {
		case FuncReadPipe2, FuncReadPipe4, FuncWritePipe2, FuncWritePipe4:
			return s.foldReadWritePipe(f, v, d)
		}
		return false
	}

	// Under unsafe math, evaluate calls whose operands are all constants in
	// elevated precision.
	if s.canIncreasePrecisionOfConstantFold(call.FMF) && s.evaluateCall(f, v, d) {
		return true
	}

	b := ir.NewBuilder(f)
	b.SetInsertBefore(v)
	b.FMF = call.FMF
	b.Accuracy = call.Accuracy
	b.Loc = ins.Loc

	fmf := call.FMF
	switch d.ID {
	case FuncExp:
		if fmf&ir.FMApproxFunc == 0 {
			return false
		}
		return s.tryIntrinsic(f, v, "exp", true, false, false)
	case FuncExp2:
		if fmf&ir.FMApproxFunc == 0 {
			return false
		}
		return s.tryIntrinsic(f, v, "exp2", true, false, false)
	case FuncLog:
		if fmf&ir.FMApproxFunc == 0 {
			return false
		}
		return s.tryIntrinsic(f, v, "log", true, false, false)
	case FuncLog2:
		if fmf&ir.FMApproxFunc == 0 {
			return false
		}
		return s.tryIntrinsic(f, v, "log2", true, false, false)
	case FuncLog10:
		if fmf&ir.FMApproxFunc == 0 {
			return false
		}
		return s.tryIntrinsic(f, v, "log10", true, false, false)
	case FuncFmin:
		return s.tryIntrinsic(f, v, "minnum", true, true, false)
	case FuncFmax:
		return s.tryIntrinsic(f, v, "maxnum", true, true, false)
	case FuncFma:
		return s.tryIntrinsic(f, v, "fma", true, true, false)
	case FuncMad:
		return s.tryIntrinsic(f, v, "fmuladd", true, true, false)
	case FuncFabs:
		return s.tryIntrinsic(f, v, "fabs", true, true, true)
	case FuncCopysign:
		return s.tryIntrinsic(f, v, "copysign", true, true, true)
	case FuncFloor:
		return s.tryIntrinsic(f, v, "floor", true, true, false)
	case FuncCeil:
		return s.tryIntrinsic(f, v, "ceil", true, true, false)
	case FuncTrunc:
		return s.tryIntrinsic(f, v, "trunc", true, true, false)
	case FuncRint:
		return s.tryIntrinsic(f, v, "rint", true, true, false)
	case FuncRound:
		return s.tryIntrinsic(f, v, "round", true, true, false)
	case FuncLdexp:
		return s.tryLdexpIntrinsic(f, v)
	case FuncPow, FuncPowr, FuncPown:
		return s.foldPow(f, v, d, b)
	case FuncRootn:
		return s.foldRootn(f, v, d, b)
	case FuncSqrt:
		return s.foldSqrt(f, v, d, b)
	case FuncCos, FuncSin:
		return s.foldSinCos(f, v, d, b)
	}

	return false
}
