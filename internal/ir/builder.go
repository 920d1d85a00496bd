package ir

// Builder inserts instructions at a tracked position, stamping each with the
// builder's fast-math flags, accuracy metadata, and debug location.
type Builder struct {
	F *Func

	block BlockID
	idx   int

	FMF      FastMath
	Accuracy float32
	Loc      Loc
}

// NewBuilder returns a builder positioned at the end of f's entry block.
func NewBuilder(f *Func) *Builder {
	return &Builder{F: f, block: f.Entry, idx: len(f.Blocks[f.Entry].Instrs)}
}

// SetInsertBefore positions the builder directly before instruction v.
func (b *Builder) SetInsertBefore(v ValueID) {
	if blk, idx, ok := b.F.Position(v); ok {
		b.block, b.idx = blk, idx
	}
}

// SetInsertAfter positions the builder directly after instruction v.
func (b *Builder) SetInsertAfter(v ValueID) {
	if blk, idx, ok := b.F.Position(v); ok {
		b.block, b.idx = blk, idx+1
	}
}

// SetInsertPastAllocas positions the builder in the entry block just past
// the leading allocas.
func (b *Builder) SetInsertPastAllocas() {
	b.block = b.F.Entry
	b.idx = b.F.EntryInsertIndex()
}

func (b *Builder) insert(ins Instr) ValueID {
	ins.Loc = b.Loc
	v := b.F.InsertAt(b.block, b.idx, ins)
	b.idx++
	return v
}

func (b *Builder) bin(op BinOp, l, r Operand, t Type) Operand {
	v := b.insert(Instr{Kind: InstrBin, Type: t, Bin: BinInstr{Op: op, L: l, R: r}})
	return ValueOp(v, t)
}

// FMul builds a floating multiply.
func (b *Builder) FMul(l, r Operand) Operand { return b.bin(BinFMul, l, r, l.Type) }

// FDiv builds a floating divide.
func (b *Builder) FDiv(l, r Operand) Operand { return b.bin(BinFDiv, l, r, l.Type) }

// Shl builds a left shift by a constant amount.
func (b *Builder) Shl(l Operand, amount int64) Operand {
	return b.bin(BinShl, l, IntOp(l.Type.Elem(), amount), l.Type)
}

// And builds a bitwise and.
func (b *Builder) And(l, r Operand) Operand { return b.bin(BinAnd, l, r, l.Type) }

// Or builds a bitwise or.
func (b *Builder) Or(l, r Operand) Operand { return b.bin(BinOr, l, r, l.Type) }

func (b *Builder) cast(op CastOp, val Operand, t Type) Operand {
	v := b.insert(Instr{Kind: InstrCast, Type: t, Cast: CastInstr{Op: op, Val: val}})
	return ValueOp(v, t)
}

// Bitcast reinterprets val's bits as type t.
func (b *Builder) Bitcast(val Operand, t Type) Operand {
	if val.Type == t {
		return val
	}
	return b.cast(CastBit, val, t)
}

// AddrSpaceCast converts a pointer to another address space.
func (b *Builder) AddrSpaceCast(val Operand, t Type) Operand {
	if val.Type == t {
		return val
	}
	return b.cast(CastAddrSpace, val, t)
}

// SIToFP converts a signed integer to floating point.
func (b *Builder) SIToFP(val Operand, t Type) Operand { return b.cast(CastSIToFP, val, t) }

// FPToSI converts floating point to a signed integer.
func (b *Builder) FPToSI(val Operand, t Type) Operand { return b.cast(CastFPToSI, val, t) }

// ZExtOrBitcast widens an integer to t, or reinterprets it when the widths
// already agree.
func (b *Builder) ZExtOrBitcast(val Operand, t Type) Operand {
	if val.Type == t {
		return val
	}
	if val.Type.ScalarBits() == t.ScalarBits() && val.Type.Lanes == t.Lanes {
		return b.cast(CastBit, val, t)
	}
	return b.cast(CastZExt, val, t)
}

// Call builds a direct call carrying the builder's fast-math state.
func (b *Builder) Call(callee string, args []Operand, result Type) Operand {
	v := b.insert(Instr{
		Kind: InstrCall,
		Type: result,
		Call: CallInstr{
			Callee:   Callee{Kind: CalleeSym, Sym: callee},
			Args:     args,
			FMF:      b.FMF,
			Accuracy: b.Accuracy,
		},
	})
	return ValueOp(v, result)
}

// Alloca reserves a scratch slot of elem type; the result is a private
// address space pointer.
func (b *Builder) Alloca(elem Type) Operand {
	t := Pointer(AddrSpacePrivate)
	v := b.insert(Instr{Kind: InstrAlloca, Type: t, Alloca: AllocaInstr{Elem: elem}})
	return ValueOp(v, t)
}

// Load reads a value of type t through ptr.
func (b *Builder) Load(ptr Operand, t Type) Operand {
	v := b.insert(Instr{Kind: InstrLoad, Type: t, Load: LoadInstr{Ptr: ptr}})
	return ValueOp(v, t)
}

// Store writes val through ptr.
func (b *Builder) Store(val, ptr Operand) {
	b.insert(Instr{Kind: InstrStore, Store: StoreInstr{Val: val, Ptr: ptr}})
}
