package ir

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the payload format changes
const moduleSchemaVersion uint16 = 1

type modulePayload struct {
	Schema uint16
	Funcs  []*Func
	Decls  []FuncDecl
}

// EncodeModule serializes a module to its binary interchange form.
func EncodeModule(w io.Writer, m *Module) error {
	payload := modulePayload{
		Schema: moduleSchemaVersion,
		Funcs:  m.Funcs,
		Decls:  m.Decls,
	}
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&payload)
}

// DecodeModule reads a module from its binary interchange form.
func DecodeModule(r io.Reader) (*Module, error) {
	var payload modulePayload
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode module: %w", err)
	}
	if payload.Schema != moduleSchemaVersion {
		return nil, fmt.Errorf("unsupported module schema %d (want %d)",
			payload.Schema, moduleSchemaVersion)
	}
	return &Module{Funcs: payload.Funcs, Decls: payload.Decls}, nil
}
