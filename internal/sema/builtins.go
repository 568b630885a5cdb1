package sema

import "pseudogo/internal/ast"

// builtinSig describes a fixed built-in routine's positional parameter
// types and return type.
type builtinSig struct {
	params []ast.BasicName
	ret    ast.BasicName
}

var builtins = map[string]builtinSig{
	"DIV":       {params: []ast.BasicName{ast.TInteger, ast.TInteger}, ret: ast.TInteger},
	"MOD":       {params: []ast.BasicName{ast.TInteger, ast.TInteger}, ret: ast.TInteger},
	"LENGTH":    {params: []ast.BasicName{ast.TString}, ret: ast.TInteger},
	"LCASE":     {params: []ast.BasicName{ast.TString}, ret: ast.TString},
	"UCASE":     {params: []ast.BasicName{ast.TString}, ret: ast.TString},
	"SUBSTRING": {params: []ast.BasicName{ast.TString, ast.TInteger, ast.TInteger}, ret: ast.TString},
	"ROUND":     {params: []ast.BasicName{ast.TReal, ast.TInteger}, ret: ast.TReal},
	"RANDOM":    {ret: ast.TReal},
}
