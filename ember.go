// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ember is the top-level entry point (spec §6): it re-exports the
// handful of functions a host application calls to compile and run a
// program, wiring together the five core layers (value, env, pattern,
// effect, eval) and the external collaborators (ast.Parser,
// modiface.ModuleLoader/Prelude/Prototypes) that lexing/parsing, module
// resolution, and the surface standard library are delegated to (all three
// are Non-goals of the core itself).
package ember

import (
	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/diag"
	"code.hybscloud.com/ember/eval"
	"code.hybscloud.com/ember/modiface"
	"code.hybscloud.com/ember/value"
)

// Program is a compiled, ready-to-run AST (spec §6); see eval.Program.
type Program = *eval.Program

// Re-export eval's functional options so a host application configuring
// a run never needs to import package eval directly.
type Option = eval.Option

var (
	WithLogger     = eval.WithLogger
	WithPrelude    = eval.WithPrelude
	WithPrototypes = eval.WithPrototypes
	WithLoader     = eval.WithLoader
	WithMaxSteps   = eval.WithMaxSteps
)

// Parser is the lexer/parser collaborator CompileScriptString stubs over.
// A host application sets this once during startup; ember itself ships no
// lexer or parser (spec §1 Non-goals), only the ast.Parser interface and
// ast/asttest's hand-built test double.
var Parser ast.Parser

// CompileScriptString parses src via Parser and compiles the resulting
// tree, without running it.
func CompileScriptString(src string, fileName string, opts ...Option) (Program, []*diag.Diagnostic) {
	if Parser == nil {
		return nil, []*diag.Diagnostic{diag.New(diag.ErrRuntime, fileName, diag.Pos{}, "ember.Parser is not configured")}
	}
	tree, provider, err := Parser.Parse(src, fileName)
	if err != nil {
		return nil, []*diag.Diagnostic{diag.New(diag.ErrRuntime, fileName, diag.Pos{}, "parsing %s: %s", fileName, err.Error())}
	}
	return CompileScript(tree, provider, fileName, opts...)
}

// CompileScript compiles an already-parsed tree, without running it.
func CompileScript(tree ast.Node, provider ast.PositionProvider, fileName string, opts ...Option) (Program, []*diag.Diagnostic) {
	return eval.NewProgram(tree, provider, fileName, opts...), nil
}

// EvaluateModuleString parses, compiles, and runs src as a module: the
// result is the record of the names its `export` bindings introduced.
// Other declarations are not included, and no default-export entry is
// added.
func EvaluateModuleString(src string, fileName string, loader modiface.ModuleLoader, opts ...Option) (value.Value, []*diag.Diagnostic) {
	p, diags := CompileScriptString(src, fileName, opts...)
	if diags != nil {
		return value.Nil, diags
	}
	return p.RunModule(loader, opts...)
}

// EvaluateModule compiles and runs an already-parsed tree as a module.
func EvaluateModule(tree ast.Node, provider ast.PositionProvider, fileName string, loader modiface.ModuleLoader, opts ...Option) (value.Value, []*diag.Diagnostic) {
	p, _ := CompileScript(tree, provider, fileName, opts...)
	return p.RunModule(loader, opts...)
}

// EvaluateEntryFile resolves path through loader.Load (spec §6's
// `getModule`), then dispatches on the record shape the loader returned:
// an already-computed script value is returned as-is; an already-built
// module record is returned as-is; raw source (the "buffer" shape) is
// compiled and run as a module in its own right, recursing through
// EvaluateModuleString. ember never touches the filesystem itself — module
// resolution and file I/O are the loader's job end to end (spec §1
// Non-goals), including for the entry file.
func EvaluateEntryFile(path string, loader modiface.ModuleLoader, opts ...Option) (value.Value, []*diag.Diagnostic) {
	rec, err := loader.Load(modiface.ModuleRequest{Name: path})
	if err != nil {
		return value.Nil, []*diag.Diagnostic{diag.New(diag.ErrImportResolve, path, diag.Pos{}, "loading entry file %q: %s", path, err.Error())}
	}
	return unpackEntry(rec, path, loader, opts...)
}

func unpackEntry(rec *value.Record, path string, loader modiface.ModuleLoader, opts ...Option) (value.Value, []*diag.Diagnostic) {
	if v, ok := rec.Get(modiface.ShapeScript); ok {
		return v, nil
	}
	if v, ok := rec.Get(modiface.ShapeModule); ok {
		mod, ok := v.(*value.Record)
		if !ok {
			return value.Nil, []*diag.Diagnostic{diag.New(diag.ErrImportResolve, path, diag.Pos{}, "module shape's payload is not a record")}
		}
		return mod, nil
	}
	if v, ok := rec.Get(modiface.ShapeBuffer); ok {
		src, ok := v.(value.String)
		if !ok {
			return value.Nil, []*diag.Diagnostic{diag.New(diag.ErrImportResolve, path, diag.Pos{}, "buffer shape's payload is not a string")}
		}
		return EvaluateModuleString(string(src), path, loader, opts...)
	}
	return value.Nil, []*diag.Diagnostic{diag.New(diag.ErrImportResolve, path, diag.Pos{}, "loader returned a record with no recognised shape key")}
}
