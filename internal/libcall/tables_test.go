package libcall_test

import (
	"math"
	"testing"

	"helios/internal/ir"
	"helios/internal/libcall"
)

// TestTableFoldCosZero tests that cos(0) folds to 1.0 with no fast-math
// flags and no unsafe-math configuration.
func TestTableFoldCosZero(t *testing.T) {
	f32 := ir.Float32()
	f := ir.NewFunc("k", nil, f32)
	v := f.Append(f.Entry, libCall("cos_f32", []ir.Operand{ir.FloatOp(f32, 0)}, f32, 0))
	ret := retOf(f, v, f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if !s.Run(f) {
		t.Fatalf("expected cos(0) to fold")
	}

	got := retValue(f, ret)
	if got.Kind != ir.OperandConst || got.Const.Float != 1.0 {
		t.Errorf("expected returned constant 1.0, got %+v", got)
	}
	if f.Instr(v).Kind != ir.InstrNop {
		t.Errorf("expected the call to be erased")
	}
}

// TestTableFoldSignedZero tests that +0 and -0 hit distinct rows: sin(-0)
// folds to -0, not +0.
func TestTableFoldSignedZero(t *testing.T) {
	f64 := ir.Float64()
	negZero := math.Copysign(0, -1)
	f := ir.NewFunc("k", nil, f64)
	v := f.Append(f.Entry, libCall("sin_f64", []ir.Operand{ir.FloatOp(f64, negZero)}, f64, 0))
	ret := retOf(f, v, f64)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if !s.Run(f) {
		t.Fatalf("expected sin(-0) to fold")
	}

	got := retValue(f, ret)
	if got.Kind != ir.OperandConst || !math.Signbit(got.Const.Float) || got.Const.Float != 0 {
		t.Errorf("expected returned constant -0, got %+v", got)
	}
}

// TestTableFoldVector tests that a vector folds only when every lane matches
// some table row.
func TestTableFoldVector(t *testing.T) {
	v2f32 := ir.Vec(ir.ScalarF32, 2)
	f := ir.NewFunc("k", nil, v2f32)
	arg := ir.ConstOp(v2f32, ir.Const{Kind: ir.ConstVecFloat, Lanes: []float64{0, 1}})
	v := f.Append(f.Entry, libCall("exp_v2f32", []ir.Operand{arg}, v2f32, 0))
	ret := retOf(f, v, v2f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if !s.Run(f) {
		t.Fatalf("expected exp(<0, 1>) to fold")
	}

	got := retValue(f, ret)
	if got.Kind != ir.OperandConst || got.Const.Kind != ir.ConstVecFloat {
		t.Fatalf("expected vector constant, got %+v", got)
	}
	wantE := float64(float32(math.E))
	if got.Const.Lanes[0] != 1.0 || got.Const.Lanes[1] != wantE {
		t.Errorf("expected <1, e>, got %v", got.Const.Lanes)
	}
}

// TestTableFoldNoPartialLanes tests that one uncovered lane blocks the whole
// fold.
func TestTableFoldNoPartialLanes(t *testing.T) {
	v2f32 := ir.Vec(ir.ScalarF32, 2)
	f := ir.NewFunc("k", nil, v2f32)
	arg := ir.ConstOp(v2f32, ir.Const{Kind: ir.ConstVecFloat, Lanes: []float64{0, 0.3}})
	v := f.Append(f.Entry, libCall("cos_v2f32", []ir.Operand{arg}, v2f32, 0))
	retOf(f, v, v2f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if s.Run(f) {
		t.Errorf("expected no fold with an uncovered lane")
	}
	if f.Instr(v).Kind != ir.InstrCall {
		t.Errorf("expected the call to survive")
	}
}

// TestTableFoldZeroAggregate tests that an all-zero aggregate constant reads
// as +0 in every lane.
func TestTableFoldZeroAggregate(t *testing.T) {
	v4f32 := ir.Vec(ir.ScalarF32, 4)
	f := ir.NewFunc("k", nil, v4f32)
	arg := ir.ConstOp(v4f32, ir.Const{Kind: ir.ConstZeroAggregate})
	v := f.Append(f.Entry, libCall("cos_v4f32", []ir.Operand{arg}, v4f32, 0))
	ret := retOf(f, v, v4f32)

	s := libcall.NewSimplifier(moduleOf(f), libcall.Config{})
	if !s.Run(f) {
		t.Fatalf("expected cos(zeroinitializer) to fold")
	}
	got := retValue(f, ret)
	for i, lane := range got.Const.Lanes {
		if lane != 1.0 {
			t.Errorf("lane %d: expected 1.0, got %v", i, lane)
		}
	}
}
