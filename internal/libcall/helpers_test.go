package libcall_test

import (
	"helios/internal/ir"
)

// libCall builds a call instruction to a library symbol.
func libCall(name string, args []ir.Operand, result ir.Type, fmf ir.FastMath) ir.Instr {
	return ir.Instr{
		Kind: ir.InstrCall,
		Type: result,
		Call: ir.CallInstr{
			Callee: ir.Callee{Kind: ir.CalleeSym, Sym: name},
			Args:   args,
			FMF:    fmf,
		},
	}
}

// retOf appends a return of the given value so replacements are observable.
func retOf(f *ir.Func, v ir.ValueID, t ir.Type) ir.ValueID {
	return f.Append(f.Entry, ir.Instr{
		Kind: ir.InstrRet,
		Ret:  ir.RetInstr{HasValue: true, Value: ir.ValueOp(v, t)},
	})
}

// moduleOf wraps functions in a module.
func moduleOf(funcs ...*ir.Func) *ir.Module {
	return &ir.Module{Funcs: funcs}
}

// retValue extracts the operand returned by the function's single ret.
func retValue(f *ir.Func, ret ir.ValueID) ir.Operand {
	return f.Instr(ret).Ret.Value
}

// callCount counts live call instructions to the named symbol.
func callCount(f *ir.Func, name string) int {
	n := 0
	for i := range f.Arena {
		ins := &f.Arena[i]
		if ins.Kind == ir.InstrCall && ins.Call.Callee.Kind == ir.CalleeSym &&
			ins.Call.Callee.Sym == name {
			n++
		}
	}
	return n
}

// kindCount counts live instructions of one kind.
func kindCount(f *ir.Func, kind ir.InstrKind) int {
	n := 0
	for i := range f.Arena {
		if f.Arena[i].Kind == kind {
			n++
		}
	}
	return n
}
