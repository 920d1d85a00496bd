package ir

import "sync"

// FuncDecl declares an external function signature.
type FuncDecl struct {
	Name   string
	Params []Type
	Result Type
}

// Module holds function bodies and external declarations. Declarations are
// guarded so passes may run concurrently at function granularity while
// declaring replacement symbols on demand.
type Module struct {
	Funcs []*Func
	Decls []FuncDecl

	mu sync.RWMutex
}

// Lookup finds a declaration or a defined function's signature by symbol.
func (m *Module) Lookup(name string) (FuncDecl, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookupLocked(name)
}

func (m *Module) lookupLocked(name string) (FuncDecl, bool) {
	for i := range m.Decls {
		if m.Decls[i].Name == name {
			return m.Decls[i], true
		}
	}
	for _, f := range m.Funcs {
		if f.Name == name {
			params := make([]Type, len(f.Params))
			for i, p := range f.Params {
				params[i] = p.Type
			}
			return FuncDecl{Name: name, Params: params, Result: f.Result}, true
		}
	}
	return FuncDecl{}, false
}

// IsDefined reports whether the symbol has a body in this module.
func (m *Module) IsDefined(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.Funcs {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Declare adds an external declaration if the symbol is not already known.
func (m *Module) Declare(d FuncDecl) FuncDecl {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.lookupLocked(d.Name); ok {
		return existing
	}
	m.Decls = append(m.Decls, d)
	return d
}

// GetOrInsert resolves a symbol, declaring it on demand when insert is set
// (pre-link mode). Reports whether the symbol is available.
func (m *Module) GetOrInsert(d FuncDecl, insert bool) (FuncDecl, bool) {
	if existing, ok := m.Lookup(d.Name); ok {
		return existing, true
	}
	if !insert {
		return FuncDecl{}, false
	}
	return m.Declare(d), true
}
