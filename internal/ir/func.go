package ir

// BlockID identifies a basic block within a function.
type BlockID int32

// Param is a function parameter.
type Param struct {
	Name string
	Type Type
}

// Block holds an ordered list of instruction IDs.
type Block struct {
	ID     BlockID
	Instrs []ValueID
}

// Func is a function body. Instructions live in a stable arena; blocks order
// them. Erasing an instruction empties its arena slot without shifting IDs,
// so in-flight iteration over a copied ID list stays valid.
type Func struct {
	Name   string
	Params []Param
	Result Type
	Entry  BlockID
	Blocks []Block
	Arena  []Instr
}

// NewFunc creates a function with a single entry block.
func NewFunc(name string, params []Param, result Type) *Func {
	return &Func{
		Name:   name,
		Params: params,
		Result: result,
		Entry:  0,
		Blocks: []Block{{ID: 0}},
	}
}

// Instr returns the instruction defining v, or nil for out-of-range IDs.
func (f *Func) Instr(v ValueID) *Instr {
	if v < 0 || int(v) >= len(f.Arena) {
		return nil
	}
	return &f.Arena[v]
}

func (f *Func) alloc(ins Instr) ValueID {
	f.Arena = append(f.Arena, ins)
	return ValueID(len(f.Arena) - 1)
}

// Append adds an instruction at the end of block b.
func (f *Func) Append(b BlockID, ins Instr) ValueID {
	v := f.alloc(ins)
	blk := &f.Blocks[b]
	blk.Instrs = append(blk.Instrs, v)
	return v
}

// InsertAt places an instruction at position idx within block b.
func (f *Func) InsertAt(b BlockID, idx int, ins Instr) ValueID {
	v := f.alloc(ins)
	blk := &f.Blocks[b]
	if idx < 0 {
		idx = 0
	}
	if idx > len(blk.Instrs) {
		idx = len(blk.Instrs)
	}
	blk.Instrs = append(blk.Instrs, 0)
	copy(blk.Instrs[idx+1:], blk.Instrs[idx:])
	blk.Instrs[idx] = v
	return v
}

// Position locates the block and index holding v.
func (f *Func) Position(v ValueID) (BlockID, int, bool) {
	for bi := range f.Blocks {
		for idx, id := range f.Blocks[bi].Instrs {
			if id == v {
				return f.Blocks[bi].ID, idx, true
			}
		}
	}
	return 0, 0, false
}

// Erase removes v from its block and empties its arena slot. Erasing an
// already-erased instruction is a no-op.
func (f *Func) Erase(v ValueID) {
	ins := f.Instr(v)
	if ins == nil || ins.Kind == InstrNop {
		return
	}
	if b, idx, ok := f.Position(v); ok {
		blk := &f.Blocks[b]
		blk.Instrs = append(blk.Instrs[:idx], blk.Instrs[idx+1:]...)
	}
	*ins = Instr{Kind: InstrNop}
}

// ReplaceAllUses redirects every operand referencing instruction result old
// to the replacement operand. Returns the number of operand slots rewritten.
func (f *Func) ReplaceAllUses(old ValueID, with Operand) int {
	n := 0
	for i := range f.Arena {
		for _, op := range f.Arena[i].Operands() {
			if op.Kind == OperandValue && op.Value == old {
				*op = with
				n++
			}
		}
	}
	return n
}

// UsersOf returns the IDs of live instructions consuming the given value, in
// arena order. This is a bounded scan over one function, not a graph search.
func (f *Func) UsersOf(val Operand) []ValueID {
	var users []ValueID
	for i := range f.Arena {
		ins := &f.Arena[i]
		if ins.Kind == InstrNop {
			continue
		}
		for _, op := range ins.Operands() {
			if SameValue(*op, val) {
				users = append(users, ValueID(i))
				break
			}
		}
	}
	return users
}

// EntryInsertIndex returns the position in the entry block just past any
// leading allocas, the canonical spot for new scratch slots.
func (f *Func) EntryInsertIndex() int {
	blk := &f.Blocks[f.Entry]
	for idx, id := range blk.Instrs {
		if f.Arena[id].Kind != InstrAlloca {
			return idx
		}
	}
	return len(blk.Instrs)
}
