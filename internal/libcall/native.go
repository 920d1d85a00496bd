package libcall

import (
	"slices"

	"helios/internal/ir"
)

// The native_ variants trade accuracy for speed. Substitution only happens
// for functions on an opt-in list, and never for f64, where the native
// implementations do not exist.

// getNativeFunction resolves the native_ variant of a descriptor.
func (s *Simplifier) getNativeFunction(d Descriptor) (string, bool) {
	d.Prefix = PrefixNative
	return s.getFunction(d)
}

// foldSqrt substitutes native_sqrt for scalar f32 sqrt under unsafe math.
func (s *Simplifier) foldSqrt(f *ir.Func, v ir.ValueID, d Descriptor, b *ir.Builder) bool {
	ins := f.Instr(v)
	if !s.isUnsafeMath(ins.Call.FMF) {
		return false
	}

	lead := d.Lead()
	if lead.Elem != ir.ScalarF32 || lead.Lanes != 1 || d.Prefix == PrefixNative {
		return false
	}
	name, ok := s.getNativeFunction(d.WithID(FuncSqrt))
	if !ok {
		return false
	}
	opr0 := ins.Call.Args[0]
	nval := b.Call(name, []ir.Operand{opr0}, ins.Type)
	s.replaceCall(f, v, nval)
	return true
}

// sincosUseNative splits sincos into separate native sin and cos calls, with
// the cosine stored through the original output pointer. Both halves must be
// on the opt-in list.
func (s *Simplifier) sincosUseNative(f *ir.Func, v ir.ValueID, d Descriptor) bool {
	if !s.cfg.UseNativeFunc("sin") || !s.cfg.UseNativeFunc("cos") {
		return false
	}

	lead := d.Lead()
	sinName, sinOK := s.getNativeFunction(NewDescriptor(FuncSin, lead.Elem, lead.Lanes))
	cosName, cosOK := s.getNativeFunction(NewDescriptor(FuncCos, lead.Elem, lead.Lanes))
	if !sinOK || !cosOK {
		return false
	}

	ins := f.Instr(v)
	opr0 := ins.Call.Args[0]
	outPtr := ins.Call.Args[1]
	resType := d.LeadType()

	b := ir.NewBuilder(f)
	b.SetInsertBefore(v)
	b.Loc = ins.Loc

	sinval := b.Call(sinName, []ir.Operand{opr0}, resType)
	cosval := b.Call(cosName, []ir.Operand{opr0}, resType)
	b.Store(cosval, outPtr)

	s.replaceCall(f, v, sinval)
	return true
}

// useNative redirects one call site to its native_ variant when the function
// is on the opt-in list. f64 calls and already-native calls are left alone.
func (s *Simplifier) useNative(f *ir.Func, v ir.ValueID) bool {
	ins := f.Instr(v)
	if ins == nil || ins.Kind != ir.InstrCall {
		return false
	}
	call := &ins.Call
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
	if d.Prefix != PrefixNone || d.Lead().Elem == ir.ScalarF64 ||
		!HasNative(d.ID) || !s.cfg.UseNativeFunc(d.ID.Name()) {
		return false
	}

	if d.ID == FuncSincos {
		return s.sincosUseNative(f, v, d)
	}

	name, ok := s.getNativeFunction(d)
	if !ok {
		return false
	}
	call.Callee = ir.Callee{Kind: ir.CalleeSym, Sym: name}
	return true
}

// RunUseNative applies the native substitution pass to every call site of f
// and reports whether anything changed.
func (s *Simplifier) RunUseNative(f *ir.Func) bool {
	changed := false
	for bi := range f.Blocks {
		ids := slices.Clone(f.Blocks[bi].Instrs)
		for _, v := range ids {
			ins := f.Instr(v)
			if ins == nil || ins.Kind != ir.InstrCall {
				continue
			}
			if s.useNative(f, v) {
				changed = true
			}
		}
	}
	return changed
}
