package codegen

import (
	"strings"

	"pseudogo/internal/ast"
)

// typeEnv tracks declared basic/array types for the sole purpose of
// resolving an INPUT target's coercion type name; it is intentionally
// function-scoped like the Python it emits into, not block-scoped like the
// pseudocode source.
type typeEnv struct {
	types map[string]ast.Type
}

func newTypeEnv() *typeEnv {
	return &typeEnv{types: make(map[string]ast.Type)}
}

func (e *typeEnv) define(name string, t ast.Type) {
	e.types[strings.ToUpper(name)] = t
}

func (e *typeEnv) lookup(name string) (ast.Type, bool) {
	t, ok := e.types[strings.ToUpper(name)]
	return t, ok
}
