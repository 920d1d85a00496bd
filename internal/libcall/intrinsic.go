package libcall

import "helios/internal/ir"

// Some library calls are just wrappers around IR intrinsics, but compiled
// conservatively. Substituting the intrinsic preserves the call site's
// fast-math flags while letting instruction selection pick the direct form.

// intrinsicName mangles an intrinsic symbol for a result type.
func intrinsicName(base string, t ir.Type) string {
	return ir.IntrinsicPrefix + base + "." + t.String()
}

// shouldReplaceWithIntrinsic applies the type and attribute constraints:
// f32 (and other reduced-precision formats) are always eligible, f64 only
// when the entry permits it; no-inline sites are skipped because the
// substitution implicitly inlines; strict-fp and, for f32, min-size need
// explicit permission.
func shouldReplaceWithIntrinsic(ins *ir.Instr, allowMinSizeF32, allowF64, allowStrictFP bool) bool {
	isF32 := ins.Type.Scalar == ir.ScalarF32
	if !isF32 && (!allowF64 || ins.Type.Scalar != ir.ScalarF64) {
		return false
	}
	if ins.Call.Attrs&ir.AttrNoInline != 0 {
		return false
	}
	if !allowStrictFP && ins.Call.Attrs&ir.AttrStrictFP != 0 {
		return false
	}
	if isF32 && !allowMinSizeF32 && ins.Call.Attrs&ir.AttrMinSize != 0 {
		return false
	}
	return true
}

// tryIntrinsic redirects the call site to the named intrinsic when the
// constraints allow it. The call's arguments, flags, and attributes stay in
// place; only the callee changes.
func (s *Simplifier) tryIntrinsic(f *ir.Func, v ir.ValueID, base string,
	allowMinSizeF32, allowF64, allowStrictFP bool) bool {
	ins := f.Instr(v)
	if !shouldReplaceWithIntrinsic(ins, allowMinSizeF32, allowF64, allowStrictFP) {
		return false
	}
	ins.Call.Callee = ir.Callee{Kind: ir.CalleeSym, Sym: intrinsicName(base, ins.Type)}
	return true
}

// tryLdexpIntrinsic handles ldexp's two-type intrinsic form.
func (s *Simplifier) tryLdexpIntrinsic(f *ir.Func, v ir.ValueID) bool {
	ins := f.Instr(v)
	if !shouldReplaceWithIntrinsic(ins, true, true, false) {
		return false
	}
	name := intrinsicName("ldexp", ins.Type) + "." + ins.Call.Args[1].Type.String()
	ins.Call.Callee = ir.Callee{Kind: ir.CalleeSym, Sym: name}
	return true
}
