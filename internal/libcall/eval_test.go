package libcall_test

import (
	"math"
	"testing"

	"helios/internal/ir"
	"helios/internal/libcall"
)

// TestEvaluateScalarCall tests constant evaluation under unsafe math:
// exp2(3) = 8.
func TestEvaluateScalarCall(t *testing.T) {
	f32 := ir.Float32()
	f := ir.NewFunc("k", nil, f32)
	v := f.Append(f.Entry, libCall("exp2_f32", []ir.Operand{ir.FloatOp(f32, 3)}, f32, 0))
	ret := retOf(f, v, f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{UnsafeMath: true})
	if !s.Run(f) {
		t.Fatalf("expected exp2(3) to evaluate")
	}
	got := retValue(f, ret)
	if got.Kind != ir.OperandConst || got.Const.Float != 8.0 {
		t.Errorf("expected 8.0, got %+v", got)
	}
}

// TestEvaluateRequiresUnsafe tests that off-table constants stay put without
// unsafe math.
func TestEvaluateRequiresUnsafe(t *testing.T) {
	f32 := ir.Float32()
	f := ir.NewFunc("k", nil, f32)
	v := f.Append(f.Entry, libCall("exp2_f32", []ir.Operand{ir.FloatOp(f32, 3)}, f32, 0))
	retOf(f, v, f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if s.Run(f) {
		t.Errorf("expected no evaluation without unsafe math")
	}
}

// TestEvaluateFastFlagsSuffice tests that per-site fast flags enable
// evaluation even when the configuration is safe.
func TestEvaluateFastFlagsSuffice(t *testing.T) {
	f64 := ir.Float64()
	f := ir.NewFunc("k", nil, f64)
	v := f.Append(f.Entry, libCall("log_f64", []ir.Operand{ir.FloatOp(f64, 4)}, f64, ir.FMFast))
	ret := retOf(f, v, f64)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if !s.Run(f) {
		t.Fatalf("expected log(4) to evaluate under fast flags")
	}
	got := retValue(f, ret)
	if got.Const.Float != math.Log(4) {
		t.Errorf("expected log(4), got %v", got.Const.Float)
	}
}

// TestEvaluateVectorRounding tests per-lane evaluation with rounding to the
// declared element type.
func TestEvaluateVectorRounding(t *testing.T) {
	v4f32 := ir.Vec(ir.ScalarF32, 4)
	f := ir.NewFunc("k", nil, v4f32)
	arg := ir.ConstOp(v4f32, ir.Const{Kind: ir.ConstVecFloat, Lanes: []float64{0.5, 1.5, 2.5, 3.5}})
	v := f.Append(f.Entry, libCall("exp2_v4f32", []ir.Operand{arg}, v4f32, 0))
	ret := retOf(f, v, v4f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{UnsafeMath: true})
	if !s.Run(f) {
		t.Fatalf("expected vector exp2 to evaluate")
	}
	got := retValue(f, ret)
	if got.Const.Kind != ir.ConstVecFloat || len(got.Const.Lanes) != 4 {
		t.Fatalf("expected a 4-lane constant, got %+v", got.Const)
	}
	for i, in := range []float64{0.5, 1.5, 2.5, 3.5} {
		want := float64(float32(math.Pow(2, in)))
		if got.Const.Lanes[i] != want {
			t.Errorf("lane %d: expected %v, got %v", i, want, got.Const.Lanes[i])
		}
	}
}

// TestEvaluatePown tests the integer-exponent form.
func TestEvaluatePown(t *testing.T) {
	f64 := ir.Float64()
	i32 := ir.Int32()
	f := ir.NewFunc("k", nil, f64)
	v := f.Append(f.Entry, libCall("pown_f64",
		[]ir.Operand{ir.FloatOp(f64, 3), ir.IntOp(i32, 4)}, f64, 0))
	ret := retOf(f, v, f64)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{UnsafeMath: true})
	if !s.Run(f) {
		t.Fatalf("expected pown(3, 4) to evaluate")
	}
	if got := retValue(f, ret); got.Const.Float != 81.0 {
		t.Errorf("expected 81.0, got %v", got.Const.Float)
	}
}

// TestEvaluateSincos tests the joint evaluation: the sine is returned, the
// cosine is stored through the output pointer.
func TestEvaluateSincos(t *testing.T) {
	f64 := ir.Float64()
	f := ir.NewFunc("k", []ir.Param{{Name: "out", Type: ir.Pointer(ir.AddrSpacePrivate)}}, f64)
	v := f.Append(f.Entry, libCall("sincos_f64_p5",
		[]ir.Operand{ir.FloatOp(f64, 1), ir.ParamOp(0, ir.Pointer(ir.AddrSpacePrivate))}, f64, 0))
	ret := retOf(f, v, f64)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{UnsafeMath: true})
	if !s.Run(f) {
		t.Fatalf("expected sincos(1) to evaluate")
	}
	if got := retValue(f, ret); got.Const.Float != math.Sin(1) {
		t.Errorf("expected sin(1) as the result, got %v", got.Const.Float)
	}

	stores := 0
	for i := range f.Arena {
		ins := &f.Arena[i]
		if ins.Kind != ir.InstrStore {
			continue
		}
		stores++
		if ins.Store.Val.Const.Float != math.Cos(1) {
			t.Errorf("expected cos(1) stored, got %v", ins.Store.Val.Const.Float)
		}
		if ins.Store.Ptr.Kind != ir.OperandParam {
			t.Errorf("expected the original output pointer, got %+v", ins.Store.Ptr)
		}
	}
	if stores != 1 {
		t.Errorf("expected exactly one store, got %d", stores)
	}
}

// TestEvaluateMixedConstNonConst tests that one non-constant operand blocks
// evaluation.
func TestEvaluateMixedConstNonConst(t *testing.T) {
	f32 := ir.Float32()
	f := ir.NewFunc("k", []ir.Param{{Name: "y", Type: f32}}, f32)
	v := f.Append(f.Entry, libCall("pow_f32",
		[]ir.Operand{ir.FloatOp(f32, 3), ir.ParamOp(0, f32)}, f32, 0))
	retOf(f, v, f32)
	arenaBefore := len(f.Arena)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{UnsafeMath: true, PreLink: true})
	// pow(3, y) has a constant, positive base, so lowering may proceed, but
	// evaluation itself must not have fired: the result is calls, not a
	// constant.
	changed := s.Run(f)
	if !changed {
		t.Fatalf("expected pow(3, y) to lower")
	}
	if callCount(f, "exp2_f32") != 1 {
		t.Errorf("expected exp2 lowering, got arena %d -> %d", arenaBefore, len(f.Arena))
	}
}
