// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ashl provides a Pure Go compiler for the ash shader language.
//
// ash is a GLSL superset with includes, defines, named stage scopes
// (@Vertex, @Fragment), push constant blocks and arrow functions. ashl
// compiles one stage of an ash file to Vulkan GLSL:
//   - Parse: tokenize and parse source to an ash.Module
//   - ResolveIncludes: splice #include targets into the module
//   - ExtractScope: keep the statements live for one stage
//   - ResolveStructReferences: bind struct declarations to definitions
//   - ExtractFunctionWithDependencies: prune to an entry point
//   - Generate: emit GLSL
//
// Example usage:
//
//	source := `
//	@Fragment {
//	layout(location = 0) out float4 color;
//	void main() { color = float4(1.0, 0.0, 0.0, 1.0); }
//	}
//	`
//	code, err := ashl.Compile(source, "red.ash", ashl.Options{Stage: ash.StageFragment})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The individual stages are exported for tools that need the tree between
// passes.
package ashl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/ashl/ash"
	"github.com/gogpu/ashl/glsl"
	"github.com/gogpu/ashl/resolve"
)

// ErrEntryPointNotFound is returned when the stage has no function with the
// requested entry point name.
var ErrEntryPointNotFound = errors.New("entry point not found")

// Options configures shader compilation.
type Options struct {
	// Stage selects the named scope to compile.
	Stage ash.Stage

	// EntryPoint is the function kept by dependency pruning. Pruning is
	// skipped when empty.
	EntryPoint string

	// IncludeDirs are searched, in order, for includes not found next to
	// the including file.
	IncludeDirs []string

	// Resolver and Loader override file system include handling. Defaults
	// are resolve.DirResolver(IncludeDirs...) and resolve.FileLoader(nil).
	Resolver resolve.PathResolver
	Loader   resolve.Loader

	// GLSL configures the output header.
	GLSL glsl.Options
}

// DefaultOptions returns options for the vertex stage of "main" with the
// Vulkan GLSL 4.50 header.
func DefaultOptions() Options {
	return Options{
		Stage:      ash.StageVertex,
		EntryPoint: "main",
		GLSL:       glsl.DefaultOptions(),
	}
}

// Compile compiles ash source to GLSL for one stage.
//
// The compilation pipeline is:
//  1. Parse source to a module
//  2. Resolve includes (file itself counts as already included)
//  3. Extract the statements of opts.Stage
//  4. Bind struct references
//  5. Prune to opts.EntryPoint (if set)
//  6. Generate GLSL
func Compile(source, file string, opts Options) (string, error) {
	module, err := Parse(source, file)
	if err != nil {
		return "", err
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = resolve.DirResolver(opts.IncludeDirs...)
	}
	loader := opts.Loader
	if loader == nil {
		loader = resolve.FileLoader(nil)
	}
	var preincluded []string
	if file != "" {
		if abs, err := filepath.Abs(file); err == nil {
			preincluded = append(preincluded, abs)
		}
	}
	module, err = ResolveIncludes(module, resolver, loader, preincluded...)
	if err != nil {
		return "", err
	}

	module = ExtractScope(module, opts.Stage)
	ResolveStructReferences(module)

	if opts.EntryPoint != "" {
		pruned, ok := ExtractFunctionWithDependencies(module, opts.EntryPoint)
		if !ok {
			return "", fmt.Errorf("%s stage: %q: %w", opts.Stage, opts.EntryPoint, ErrEntryPointNotFound)
		}
		module = pruned
	}

	code, err := glsl.Compile(module, opts.GLSL)
	if err != nil {
		return "", fmt.Errorf("generation error: %w", err)
	}
	return code, nil
}

// CompileFile reads and compiles the ash file at path.
func CompileFile(path string, opts Options) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	return Compile(string(source), path, opts)
}

// Tokenize splits source into tokens. file is recorded in every span.
func Tokenize(source, file string) []ash.Token {
	return ash.Tokenize(source, file)
}

// Parse parses ash source to a module.
func Parse(source, file string) (*ash.Module, error) {
	module, err := ash.ParseSource(source, file)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return module, nil
}

// ResolveIncludes returns a copy of m with includes spliced in.
// See resolve.ResolveIncludes.
func ResolveIncludes(m *ash.Module, resolver resolve.PathResolver, loader resolve.Loader, preincluded ...string) (*ash.Module, error) {
	out, err := resolve.ResolveIncludes(m, resolver, loader, preincluded...)
	if err != nil {
		return nil, fmt.Errorf("include error: %w", err)
	}
	return out, nil
}

// ResolveStructReferences binds struct declarations in m and returns the
// struct table.
func ResolveStructReferences(m *ash.Module) *ash.StructTable {
	return resolve.ResolveStructReferences(m)
}

// ExtractScope returns the statements of m live for stage.
func ExtractScope(m *ash.Module, stage ash.Stage) *ash.Module {
	return resolve.ExtractScope(m, stage)
}

// ExtractFunctionWithDependencies prunes m to entry and what it uses.
func ExtractFunctionWithDependencies(m *ash.Module, entry string) (*ash.Module, bool) {
	return resolve.ExtractFunctionWithDependencies(m, entry)
}

// Generate renders nodes as GLSL without a version header.
func Generate(nodes []ash.Node) (string, error) {
	return glsl.Generate(nodes)
}
