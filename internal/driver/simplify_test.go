package driver_test

import (
	"context"
	"testing"

	"helios/internal/driver"
	"helios/internal/ir"
	"helios/internal/libcall"
)

func cosZeroFunc(name string) *ir.Func {
	f32 := ir.Float32()
	f := ir.NewFunc(name, nil, f32)
	v := f.Append(f.Entry, ir.Instr{
		Kind: ir.InstrCall, Type: f32,
		Call: ir.CallInstr{
			Callee: ir.Callee{Kind: ir.CalleeSym, Sym: "cos_f32"},
			Args:   []ir.Operand{ir.FloatOp(f32, 0)},
		},
	})
	f.Append(f.Entry, ir.Instr{
		Kind: ir.InstrRet,
		Ret:  ir.RetInstr{HasValue: true, Value: ir.ValueOp(v, f32)},
	})
	return f
}

// TestSimplifyModule tests the parallel driver over several functions.
func TestSimplifyModule(t *testing.T) {
	mod := &ir.Module{Funcs: []*ir.Func{
		cosZeroFunc("a"), cosZeroFunc("b"), cosZeroFunc("c"), cosZeroFunc("d"),
	}}

	changed, err := driver.SimplifyModule(context.Background(), mod, driver.Options{Jobs: 2})
	if err != nil {
		t.Fatalf("SimplifyModule failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected the module to change")
	}
	for _, f := range mod.Funcs {
		ret := f.Instr(f.Blocks[f.Entry].Instrs[len(f.Blocks[f.Entry].Instrs)-1])
		if ret.Ret.Value.Kind != ir.OperandConst || ret.Ret.Value.Const.Float != 1.0 {
			t.Errorf("%s: expected folded return of 1.0, got %+v", f.Name, ret.Ret.Value)
		}
	}
}

// TestSimplifyModuleUnchanged tests the changed flag stays false for an
// already-simplified module.
func TestSimplifyModuleUnchanged(t *testing.T) {
	f32 := ir.Float32()
	f := ir.NewFunc("a", []ir.Param{{Name: "x", Type: f32}}, f32)
	f.Append(f.Entry, ir.Instr{
		Kind: ir.InstrRet,
		Ret:  ir.RetInstr{HasValue: true, Value: ir.ParamOp(0, f32)},
	})
	mod := &ir.Module{Funcs: []*ir.Func{f}}

	changed, err := driver.SimplifyModule(context.Background(), mod, driver.Options{})
	if err != nil {
		t.Fatalf("SimplifyModule failed: %v", err)
	}
	if changed {
		t.Errorf("expected no change")
	}
}

// TestSimplifyModuleEmpty tests the trivial module.
func TestSimplifyModuleEmpty(t *testing.T) {
	changed, err := driver.SimplifyModule(context.Background(), &ir.Module{}, driver.Options{})
	if err != nil || changed {
		t.Errorf("expected (false, nil), got (%v, %v)", changed, err)
	}
}

// TestSimplifyModuleCanceled tests cancellation surfacing from the group.
func TestSimplifyModuleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mod := &ir.Module{Funcs: []*ir.Func{cosZeroFunc("a"), cosZeroFunc("b")}}
	if _, err := driver.SimplifyModule(ctx, mod, driver.Options{Jobs: 1}); err == nil {
		t.Errorf("expected a cancellation error")
	}
}

// TestUseNativeModule tests the native pass entry point with concurrent
// on-demand declarations.
func TestUseNativeModule(t *testing.T) {
	f32 := ir.Float32()
	mkSin := func(name string) *ir.Func {
		f := ir.NewFunc(name, []ir.Param{{Name: "x", Type: f32}}, f32)
		v := f.Append(f.Entry, ir.Instr{
			Kind: ir.InstrCall, Type: f32,
			Call: ir.CallInstr{
				Callee: ir.Callee{Kind: ir.CalleeSym, Sym: "sin_f32"},
				Args:   []ir.Operand{ir.ParamOp(0, f32)},
			},
		})
		f.Append(f.Entry, ir.Instr{
			Kind: ir.InstrRet,
			Ret:  ir.RetInstr{HasValue: true, Value: ir.ValueOp(v, f32)},
		})
		return f
	}
	mod := &ir.Module{Funcs: []*ir.Func{mkSin("a"), mkSin("b"), mkSin("c")}}

	opts := driver.Options{Config: libcall.Config{PreLink: true, UseNative: []string{"all"}}}
	changed, err := driver.UseNativeModule(context.Background(), mod, opts)
	if err != nil {
		t.Fatalf("UseNativeModule failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected the module to change")
	}
	for _, f := range mod.Funcs {
		call := f.Instr(f.Blocks[f.Entry].Instrs[0])
		if call.Call.Callee.Sym != "native_sin_f32" {
			t.Errorf("%s: expected native_sin_f32, got %q", f.Name, call.Call.Callee.Sym)
		}
	}
	if _, ok := mod.Lookup("native_sin_f32"); !ok {
		t.Errorf("expected native_sin_f32 declared in the module")
	}
}
