package libcall

import (
	"helios/internal/ir"
)

// mergeAccuracy combines fpmath accuracy bounds of fused call sites. Zero
// means unconstrained, and any unconstrained site makes the merge
// unconstrained; otherwise the loosest bound wins.
func mergeAccuracy(a, b float32) float32 {
	if a == 0 || b == 0 {
		return 0
	}
	if b > a {
		return b
	}
	return a
}

// insertSinCos materializes one fused sincos call over arg: a scratch slot
// past the entry allocas, the call right after arg's definition (or past the
// allocas when arg is a parameter or constant), and a load of the cosine
// back out of the slot. Returns the sine and cosine values.
func (s *Simplifier) insertSinCos(f *ir.Func, arg ir.Operand, name string, d Descriptor,
	b *ir.Builder) (sinVal, cosVal ir.Operand) {
	b.SetInsertPastAllocas()
	alloc := b.Alloca(arg.Type)

	if arg.Kind == ir.OperandValue {
		// The argument's definition dominates every matched call, so the
		// fused call can sit right after it.
		b.SetInsertAfter(arg.Value)
	}

	// The alloca lives in the private address space; the callee may expect a
	// generic pointer instead.
	castAlloc := b.AddrSpaceCast(alloc, d.ParamTypes()[1])

	sinVal = b.Call(name, []ir.Operand{arg, castAlloc}, d.ResultType())
	cosVal = b.Load(alloc, arg.Type)
	return sinVal, cosVal
}

// foldSinCos merges sin and cos calls that share an argument into one sincos
// call. The sine comes back as the call result and the cosine through the
// output pointer; both sides must have at least one call site or nothing
// happens. Every matched call, including pre-existing sincos calls over the
// same argument, is replaced and deleted.
func (s *Simplifier) foldSinCos(f *ir.Func, v ir.ValueID, d Descriptor, b *ir.Builder) bool {
	if d.Prefix != PrefixNone {
		return false
	}
	isSin := d.ID == FuncSin

	ins := f.Instr(v)
	arg := ins.Call.Args[0]

	// Prefer the private-pointer form of sincos when it resolves; fall back
	// to the generic one.
	lead := d.Lead()
	dPrivate := NewDescriptorPtr(FuncSincos, lead.Elem, lead.Lanes, ir.AddrSpacePrivate)
	dGeneric := NewDescriptorPtr(FuncSincos, lead.Elem, lead.Lanes, ir.AddrSpaceGeneric)
	privateName, privateOK := s.getFunction(dPrivate)
	genericName, genericOK := s.getFunction(dGeneric)

	dSinCos, sincosName := dPrivate, privateName
	if !privateOK {
		if !genericOK {
			return false
		}
		dSinCos, sincosName = dGeneric, genericName
	}

	partnerName := d.WithID(FuncCos).Mangle()
	if !isSin {
		partnerName = d.WithID(FuncSin).Mangle()
	}
	sinName, cosName := ins.Call.Callee.Sym, partnerName
	if !isSin {
		sinName, cosName = partnerName, ins.Call.Callee.Sym
	}
	sincosPrivateName := dPrivate.Mangle()
	sincosGenericName := dGeneric.Mangle()

	// Collect the call sites over the same argument and intersect their
	// fast-math state. The site being folded shows up in its own set.
	fmf := ins.Call.FMF
	acc := ins.Call.Accuracy
	locs := []ir.Loc{ins.Loc}

	var sinCalls, cosCalls, sincosCalls []ir.ValueID
	for _, u := range f.UsersOf(arg) {
		xi := f.Instr(u)
		if xi.Kind != ir.InstrCall || xi.Call.Callee.Kind != ir.CalleeSym ||
			xi.Call.Attrs&ir.AttrNoBuiltin != 0 {
			continue
		}

		handled := true
		switch xi.Call.Callee.Sym {
		case sinName:
			sinCalls = append(sinCalls, u)
		case cosName:
			cosCalls = append(cosCalls, u)
		case sincosPrivateName, sincosGenericName:
			sincosCalls = append(sincosCalls, u)
		default:
			handled = false
		}

		if handled {
			fmf &= xi.Call.FMF
			acc = mergeAccuracy(acc, xi.Call.Accuracy)
			locs = append(locs, xi.Loc)
		}
	}

	if len(sinCalls) == 0 || len(cosCalls) == 0 {
		return false
	}

	b.FMF = fmf
	b.Accuracy = acc
	b.Loc = ir.MergeLocs(locs)

	sinVal, cosVal := s.insertSinCos(f, arg, sincosName, dSinCos, b)

	for _, c := range sinCalls {
		f.ReplaceAllUses(c, sinVal)
	}
	for _, c := range cosCalls {
		f.ReplaceAllUses(c, cosVal)
	}
	for _, c := range sincosCalls {
		// A pre-existing sincos also delivered its cosine through memory;
		// keep that slot current before the call goes away. The store sits at
		// the old call site so its pointer operand is already defined.
		ptr := f.Instr(c).Call.Args[1]
		sb := ir.NewBuilder(f)
		sb.SetInsertBefore(c)
		sb.Loc = b.Loc
		sb.Store(cosVal, ptr)
		f.ReplaceAllUses(c, sinVal)
	}

	for _, c := range sinCalls {
		f.Erase(c)
	}
	for _, c := range cosCalls {
		f.Erase(c)
	}
	for _, c := range sincosCalls {
		f.Erase(c)
	}
	f.Erase(v)
	return true
}
