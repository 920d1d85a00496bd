package libcall

import (
	"strconv"

	"helios/internal/ir"
)

// Pipe read/write builtins are emitted with trailing packet size and
// alignment arguments. The library carries specialized entry points for
// packets whose alignment equals their size; those drop the trailing pair
// and encode the size in the symbol instead.

// foldReadWritePipe rewrites __read_pipe_N/__write_pipe_N to the
// size-suffixed specialization when the packet size and alignment are equal
// compile-time constants. The callee must still be a plain declaration.
func (s *Simplifier) foldReadWritePipe(f *ir.Func, v ir.ValueID, d Descriptor) bool {
	ins := f.Instr(v)
	call := &ins.Call
	if s.mod.IsDefined(call.Callee.Sym) {
		return false
	}

	numArg := len(call.Args)
	if numArg != 4 && numArg != 6 {
		return false
	}
	sizeOp := call.Args[numArg-2]
	alignOp := call.Args[numArg-1]
	if sizeOp.Kind != ir.OperandConst || sizeOp.Const.Kind != ir.ConstInt ||
		alignOp.Kind != ir.OperandConst || alignOp.Const.Kind != ir.ConstInt {
		return false
	}

	size := sizeOp.Const.Int
	align := alignOp.Const.Int
	if size <= 0 || align != size {
		return false
	}

	ptrLoc := numArg - 3
	ptrArg := call.Args[ptrLoc]

	name := call.Callee.Sym + "_" + strconv.FormatInt(size, 10)
	params := make([]ir.Type, 0, ptrLoc+1)
	for i := 0; i < ptrLoc; i++ {
		params = append(params, call.Args[i].Type)
	}
	params = append(params, ptrArg.Type)
	decl := ir.FuncDecl{Name: name, Params: params, Result: ins.Type}
	if _, ok := s.mod.GetOrInsert(decl, true); !ok {
		return false
	}

	attrs := call.Attrs
	result := ins.Type

	b := ir.NewBuilder(f)
	b.SetInsertBefore(v)
	b.Loc = ins.Loc

	args := make([]ir.Operand, 0, ptrLoc+1)
	args = append(args, call.Args[:ptrLoc]...)
	args = append(args, b.AddrSpaceCast(ptrArg, ir.Pointer(ptrArg.Type.AddrSpace)))

	nval := b.Call(name, args, result)
	f.Instr(nval.Value).Call.Attrs = attrs
	s.replaceCall(f, v, nval)
	return true
}
