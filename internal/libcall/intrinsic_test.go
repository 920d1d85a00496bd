package libcall_test

import (
	"testing"

	"helios/internal/ir"
	"helios/internal/libcall"
)

// TestIntrinsicFmin tests fmin redirecting to the minnum intrinsic with the
// call site otherwise intact.
func TestIntrinsicFmin(t *testing.T) {
	f32 := ir.Float32()
	f := ir.NewFunc("k", []ir.Param{{Name: "a", Type: f32}, {Name: "b", Type: f32}}, f32)
	v := f.Append(f.Entry, libCall("fmin_f32",
		[]ir.Operand{ir.ParamOp(0, f32), ir.ParamOp(1, f32)}, f32, ir.FMNoNaN))
	retOf(f, v, f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if !s.Run(f) {
		t.Fatalf("expected fmin to become an intrinsic")
	}
	ins := f.Instr(v)
	if ins.Call.Callee.Sym != "helios.minnum.f32" {
		t.Errorf("expected helios.minnum.f32, got %q", ins.Call.Callee.Sym)
	}
	if ins.Call.FMF != ir.FMNoNaN || len(ins.Call.Args) != 2 {
		t.Errorf("expected flags and arguments untouched, got %+v", ins.Call)
	}
}

// TestIntrinsicExpNeedsApproxFlag tests that exp requires the afn flag.
func TestIntrinsicExpNeedsApproxFlag(t *testing.T) {
	f32 := ir.Float32()
	f := ir.NewFunc("k", []ir.Param{{Name: "x", Type: f32}}, f32)
	v := f.Append(f.Entry, libCall("exp_f32", []ir.Operand{ir.ParamOp(0, f32)}, f32, 0))
	retOf(f, v, f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if s.Run(f) {
		t.Errorf("expected exp without afn to stay")
	}

	f2 := ir.NewFunc("k", []ir.Param{{Name: "x", Type: f32}}, f32)
	v2 := f2.Append(f2.Entry, libCall("exp_f32", []ir.Operand{ir.ParamOp(0, f32)}, f32, ir.FMApproxFunc))
	retOf(f2, v2, f32)

	if !s.Run(f2) {
		t.Fatalf("expected exp with afn to become an intrinsic")
	}
	if got := f2.Instr(v2).Call.Callee.Sym; got != "helios.exp.f32" {
		t.Errorf("expected helios.exp.f32, got %q", got)
	}
}

// TestIntrinsicF64Gate tests that f64 is rejected for the exp family but
// allowed for fabs.
func TestIntrinsicF64Gate(t *testing.T) {
	f64 := ir.Float64()
	f := ir.NewFunc("k", []ir.Param{{Name: "x", Type: f64}}, f64)
	ve := f.Append(f.Entry, libCall("exp_f64", []ir.Operand{ir.ParamOp(0, f64)}, f64, ir.FMApproxFunc))
	va := f.Append(f.Entry, libCall("fabs_f64", []ir.Operand{ir.ParamOp(0, f64)}, f64, 0))
	retOf(f, va, f64)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if !s.Run(f) {
		t.Fatalf("expected at least fabs to change")
	}
	if got := f.Instr(ve).Call.Callee.Sym; got != "exp_f64" {
		t.Errorf("expected exp_f64 to stay, got %q", got)
	}
	if got := f.Instr(va).Call.Callee.Sym; got != "helios.fabs.f64" {
		t.Errorf("expected helios.fabs.f64, got %q", got)
	}
}

// TestIntrinsicNoInlineRejected tests that no-inline call sites are skipped.
func TestIntrinsicNoInlineRejected(t *testing.T) {
	f32 := ir.Float32()
	f := ir.NewFunc("k", []ir.Param{{Name: "x", Type: f32}}, f32)
	ins := libCall("floor_f32", []ir.Operand{ir.ParamOp(0, f32)}, f32, 0)
	ins.Call.Attrs = ir.AttrNoInline
	v := f.Append(f.Entry, ins)
	retOf(f, v, f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if s.Run(f) {
		t.Errorf("expected no substitution for a no-inline site")
	}
}

// TestIntrinsicStrictFPGate tests that strict-fp is rejected except where
// explicitly permitted (fabs, copysign).
func TestIntrinsicStrictFPGate(t *testing.T) {
	f32 := ir.Float32()
	f := ir.NewFunc("k", []ir.Param{{Name: "x", Type: f32}}, f32)

	rnd := libCall("round_f32", []ir.Operand{ir.ParamOp(0, f32)}, f32, 0)
	rnd.Call.Attrs = ir.AttrStrictFP
	vr := f.Append(f.Entry, rnd)

	abs := libCall("fabs_f32", []ir.Operand{ir.ParamOp(0, f32)}, f32, 0)
	abs.Call.Attrs = ir.AttrStrictFP
	va := f.Append(f.Entry, abs)
	retOf(f, va, f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if !s.Run(f) {
		t.Fatalf("expected fabs to change")
	}
	if got := f.Instr(vr).Call.Callee.Sym; got != "round_f32" {
		t.Errorf("expected strict-fp round to stay, got %q", got)
	}
	if got := f.Instr(va).Call.Callee.Sym; got != "helios.fabs.f32" {
		t.Errorf("expected helios.fabs.f32, got %q", got)
	}
}

// TestIntrinsicLdexp tests ldexp's two-type intrinsic name.
func TestIntrinsicLdexp(t *testing.T) {
	f32 := ir.Float32()
	i32 := ir.Int32()
	f := ir.NewFunc("k", []ir.Param{{Name: "x", Type: f32}, {Name: "n", Type: i32}}, f32)
	v := f.Append(f.Entry, libCall("ldexp_f32",
		[]ir.Operand{ir.ParamOp(0, f32), ir.ParamOp(1, i32)}, f32, 0))
	retOf(f, v, f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if !s.Run(f) {
		t.Fatalf("expected ldexp to become an intrinsic")
	}
	if got := f.Instr(v).Call.Callee.Sym; got != "helios.ldexp.f32.i32" {
		t.Errorf("expected helios.ldexp.f32.i32, got %q", got)
	}
}

// TestIntrinsicIdempotent tests that a second run leaves the rewritten call
// alone: intrinsic callees are outside the library grammar.
func TestIntrinsicIdempotent(t *testing.T) {
	f32 := ir.Float32()
	f := ir.NewFunc("k", []ir.Param{{Name: "x", Type: f32}}, f32)
	v := f.Append(f.Entry, libCall("ceil_f32", []ir.Operand{ir.ParamOp(0, f32)}, f32, 0))
	retOf(f, v, f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if !s.Run(f) {
		t.Fatalf("expected ceil to become an intrinsic")
	}
	if s.Run(f) {
		t.Errorf("expected the second run to change nothing")
	}
	if got := f.Instr(v).Call.Callee.Sym; got != "helios.ceil.f32" {
		t.Errorf("expected helios.ceil.f32, got %q", got)
	}
}
