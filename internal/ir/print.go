package ir

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// DumpModule writes a human-readable representation of a module.
func DumpModule(w io.Writer, m *Module) error {
	if w == nil || m == nil {
		return nil
	}

	if len(m.Decls) > 0 {
		decls := slices.Clone(m.Decls)
		slices.SortStableFunc(decls, func(a, b FuncDecl) int {
			return strings.Compare(a.Name, b.Name)
		})
		fmt.Fprintf(w, "decls=%d\n", len(decls))
		for _, d := range decls {
			params := make([]string, len(d.Params))
			for i, p := range d.Params {
				params[i] = p.String()
			}
			fmt.Fprintf(w, "  declare %s @%s(%s)\n", d.Result, d.Name, strings.Join(params, ", "))
		}
	}

	funcs := slices.Clone(m.Funcs)
	slices.SortStableFunc(funcs, func(a, b *Func) int {
		return strings.Compare(a.Name, b.Name)
	})

	fmt.Fprintf(w, "funcs=%d\n", len(funcs))
	for _, f := range funcs {
		if err := DumpFunc(w, f); err != nil {
			return err
		}
	}
	return nil
}

// DumpFunc writes a human-readable representation of one function.
func DumpFunc(w io.Writer, f *Func) error {
	if w == nil || f == nil {
		return nil
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("p%d", i)
		}
		params[i] = fmt.Sprintf("%s %%%s", p.Type, name)
	}
	fmt.Fprintf(w, "\nfn %s(%s) -> %s:\n", f.Name, strings.Join(params, ", "), f.Result)

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		fmt.Fprintf(w, "  bb%d:\n", bb.ID)
		for _, id := range bb.Instrs {
			fmt.Fprintf(w, "    %s\n", formatInstr(f, id))
		}
	}
	return nil
}

func formatInstr(f *Func, id ValueID) string {
	ins := f.Instr(id)
	switch ins.Kind {
	case InstrNop:
		return fmt.Sprintf("%%v%d = nop", id)
	case InstrCall:
		args := make([]string, len(ins.Call.Args))
		for i, a := range ins.Call.Args {
			args[i] = formatOperand(a)
		}
		callee := ins.Call.Callee.Sym
		if ins.Call.Callee.Kind == CalleeValue {
			callee = formatOperand(ins.Call.Callee.Value)
		}
		s := fmt.Sprintf("%%v%d = call %s @%s(%s)", id, ins.Type, callee, strings.Join(args, ", "))
		if fmf := ins.Call.FMF.String(); fmf != "" {
			s += " [" + fmf + "]"
		}
		if ins.Call.Accuracy != 0 {
			s += fmt.Sprintf(" !acc=%g", ins.Call.Accuracy)
		}
		return s
	case InstrBin:
		op := [...]string{"fmul", "fdiv", "shl", "and", "or"}[ins.Bin.Op]
		return fmt.Sprintf("%%v%d = %s %s %s, %s", id, op, ins.Type,
			formatOperand(ins.Bin.L), formatOperand(ins.Bin.R))
	case InstrCast:
		op := [...]string{"bitcast", "addrspacecast", "sitofp", "fptosi", "zext"}[ins.Cast.Op]
		return fmt.Sprintf("%%v%d = %s %s to %s", id, op, formatOperand(ins.Cast.Val), ins.Type)
	case InstrLoad:
		return fmt.Sprintf("%%v%d = load %s, %s", id, ins.Type, formatOperand(ins.Load.Ptr))
	case InstrStore:
		return fmt.Sprintf("store %s, %s", formatOperand(ins.Store.Val), formatOperand(ins.Store.Ptr))
	case InstrAlloca:
		return fmt.Sprintf("%%v%d = alloca %s", id, ins.Alloca.Elem)
	case InstrRet:
		if ins.Ret.HasValue {
			return "ret " + formatOperand(ins.Ret.Value)
		}
		return "ret"
	}
	return fmt.Sprintf("%%v%d = ?", id)
}

func formatOperand(op Operand) string {
	switch op.Kind {
	case OperandConst:
		return formatConst(op.Type, op.Const)
	case OperandParam:
		return fmt.Sprintf("%%p%d", op.Param)
	case OperandValue:
		return fmt.Sprintf("%%v%d", op.Value)
	}
	return "?"
}

func formatConst(t Type, c Const) string {
	switch c.Kind {
	case ConstFloat:
		return fmt.Sprintf("%s %v", t, c.Float)
	case ConstInt:
		return fmt.Sprintf("%s %d", t, c.Int)
	case ConstVecFloat:
		parts := make([]string, len(c.Lanes))
		for i, v := range c.Lanes {
			parts[i] = fmt.Sprintf("%v", v)
		}
		return fmt.Sprintf("%s <%s>", t, strings.Join(parts, ", "))
	case ConstVecInt:
		parts := make([]string, len(c.IntLanes))
		for i, v := range c.IntLanes {
			parts[i] = fmt.Sprintf("%d", v)
		}
		return fmt.Sprintf("%s <%s>", t, strings.Join(parts, ", "))
	case ConstZeroAggregate:
		return fmt.Sprintf("%s zeroinitializer", t)
	}
	return "?"
}
