// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ashl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/ashl/ash"
	"github.com/gogpu/ashl/glsl"
)

// stagedShader has a shared preamble and one scope per stage.
const stagedShader = `#define SCALE 2.0
struct Vertex { float3 position; float2 uv; };
layout(buffer_reference, scalar) buffer Vertices { Vertex vertices[]; };
push(scalar) { Vertices data; float4 tint; };
float4 unused() -> float4(0.0);

@Vertex {
layout(location = 0) out float2 outUV;
void main()
{
	Vertex v = push.data.vertices[gl_VertexIndex];
	outUV = v.uv;
	gl_Position = float4(v.position * SCALE, 1.0);
}
}

@Fragment {
layout(location = 0) in float2 inUV;
layout(location = 0) out float4 color;
void main()
{
	color = push.tint * float4(inUV, 0.0, 1.0);
}
}
`

const sharedGLSL = "struct Vertex {\n" +
	"\tvec3 position;\n" +
	"\tvec2 uv;\n" +
	"};\n" +
	"layout(buffer_reference, scalar) buffer Vertices {\n" +
	"\tVertex vertices[];\n" +
	"};\n" +
	"layout(push_constant, scalar) uniform constant {\n" +
	"\tVertices data;\n" +
	"\tvec4 tint;\n" +
	"} push;\n"

// TestCompileVertexStage tests the full pipeline for the vertex scope.
func TestCompileVertexStage(t *testing.T) {
	opts := Options{Stage: ash.StageVertex, EntryPoint: "main"}
	got, err := Compile(stagedShader, "staged.ash", opts)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	want := "#define SCALE 2.0\n" + sharedGLSL +
		"layout(location = 0) out vec2 outUV;\n" +
		"void main()\n" +
		"{\n" +
		"\tVertex v = push.data.vertices[gl_VertexIndex];\n" +
		"\toutUV = v.uv;\n" +
		"\tgl_Position = vec4(v.position * SCALE, 1.0);\n" +
		"}\n"
	if got != want {
		t.Errorf("vertex output mismatch:\n%s", diffLines(want, got))
	}
}

// TestCompileFragmentStage tests that unused defines are pruned per stage.
func TestCompileFragmentStage(t *testing.T) {
	opts := Options{Stage: ash.StageFragment, EntryPoint: "main"}
	got, err := Compile(stagedShader, "staged.ash", opts)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	want := sharedGLSL +
		"layout(location = 0) in vec2 inUV;\n" +
		"layout(location = 0) out vec4 color;\n" +
		"void main()\n" +
		"{\n" +
		"\tcolor = push.tint * vec4(inUV, 0.0, 1.0);\n" +
		"}\n"
	if got != want {
		t.Errorf("fragment output mismatch:\n%s", diffLines(want, got))
	}
}

// TestCompileWithoutPruning keeps every statement of the stage.
func TestCompileWithoutPruning(t *testing.T) {
	got, err := Compile(stagedShader, "staged.ash", Options{Stage: ash.StageFragment})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	for _, want := range []string{"#define SCALE 2.0", "vec4 unused()"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(got, "outUV") {
		t.Error("fragment output contains vertex scope statements")
	}
}

// TestCompileDefaultHeader checks the version and extension header.
func TestCompileDefaultHeader(t *testing.T) {
	got, err := Compile(stagedShader, "staged.ash", DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	header := "#version 450\n" +
		"#extension GL_GOOGLE_include_directive : enable\n" +
		"#extension GL_EXT_buffer_reference : enable\n" +
		"#extension GL_EXT_scalar_block_layout : enable\n"
	if !strings.HasPrefix(got, header) {
		t.Errorf("missing header, got:\n%s", got)
	}
}

// TestCompileFile tests include resolution from disk.
func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	shared := t.TempDir()
	writeTestFile(t, filepath.Join(shared, "color.ash"), "float4 red() -> float4(1.0, 0.0, 0.0, 1.0);\n")
	writeTestFile(t, filepath.Join(dir, "lib", "common.ash"), "#include \"../shader.ash\"\n#define STRENGTH 0.5\n")
	path := writeTestFile(t, filepath.Join(dir, "shader.ash"), `#include "lib/common.ash"
#include "color.ash"
@Fragment {
layout(location = 0) out float4 color;
void main() { color = red() * STRENGTH; }
}
`)

	opts := Options{
		Stage:       ash.StageFragment,
		EntryPoint:  "main",
		IncludeDirs: []string{shared},
	}
	got, err := CompileFile(path, opts)
	if err != nil {
		t.Fatalf("CompileFile failed: %v", err)
	}

	want := "#define STRENGTH 0.5\n" +
		"vec4 red()\n" +
		"{\n" +
		"\treturn vec4(1.0, 0.0, 0.0, 1.0);\n" +
		"}\n" +
		"layout(location = 0) out vec4 color;\n" +
		"void main()\n" +
		"{\n" +
		"\tcolor = red() * STRENGTH;\n" +
		"}\n"
	if got != want {
		t.Errorf("output mismatch:\n%s", diffLines(want, got))
	}
}

// TestCompileErrors tests that typed errors survive the pipeline wrappers.
func TestCompileErrors(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		_, err := Compile("struct { float x; };", "bad.ash", Options{})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.HasPrefix(err.Error(), "parse error: ") {
			t.Errorf("error not wrapped: %v", err)
		}
		var srcErr *ash.SourceError
		if !errors.As(err, &srcErr) {
			t.Fatalf("expected *ash.SourceError, got %T", err)
		}
		if srcErr.Span.Start.Line != 1 || srcErr.Span.Start.Column != 8 {
			t.Errorf("error span = %v, want bad.ash:1:8", srcErr.Span)
		}
	})

	t.Run("entry point", func(t *testing.T) {
		_, err := Compile(stagedShader, "staged.ash", Options{Stage: ash.StageVertex, EntryPoint: "vsMain"})
		if !errors.Is(err, ErrEntryPointNotFound) {
			t.Fatalf("expected ErrEntryPointNotFound, got %v", err)
		}
	})

	t.Run("include", func(t *testing.T) {
		_, err := Compile("#include \"nowhere.ash\"\n", filepath.Join(t.TempDir(), "a.ash"), Options{})
		if err == nil || !strings.HasPrefix(err.Error(), "include error: ") {
			t.Fatalf("expected include error, got %v", err)
		}
	})

	t.Run("generation", func(t *testing.T) {
		_, err := Compile("void main() { a = b ! c; }", "not.ash", Options{})
		var genErr *glsl.Error
		if !errors.As(err, &genErr) {
			t.Fatalf("expected *glsl.Error, got %v", err)
		}
		if genErr.Kind != glsl.ErrUnsupportedNode {
			t.Errorf("kind = %v, want UnsupportedNode", genErr.Kind)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := CompileFile(filepath.Join(t.TempDir(), "missing.ash"), Options{})
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected os.ErrNotExist, got %v", err)
		}
	})
}

// TestCompileConcurrent runs independent compilations in parallel.
func TestCompileConcurrent(t *testing.T) {
	want, err := Compile(stagedShader, "staged.ash", DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Compile(stagedShader, "staged.ash", DefaultOptions())
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if results[i] != want {
			t.Errorf("worker %d produced different output", i)
		}
	}
}

// TestPipelineStages drives the exported stages one at a time.
func TestPipelineStages(t *testing.T) {
	if tokens := Tokenize("float4 x;", "x.ash"); len(tokens) != 3 {
		t.Fatalf("Tokenize returned %d tokens, want 3", len(tokens))
	}

	module, err := Parse(stagedShader, "staged.ash")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	vertex := ExtractScope(module, ash.StageVertex)
	table := ResolveStructReferences(vertex)
	if _, ok := table.Lookup("Vertex"); !ok {
		t.Error("struct Vertex not registered")
	}

	pc := vertex.Statements[3].(*ash.PushConstant)
	size, err := table.PushConstantSize(pc)
	if err != nil {
		t.Fatalf("PushConstantSize failed: %v", err)
	}
	if size != 24 {
		t.Errorf("push constant size = %d, want 24", size)
	}

	pruned, ok := ExtractFunctionWithDependencies(vertex, "main")
	if !ok {
		t.Fatal("main not found")
	}
	code, err := Generate(pruned.Statements)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(code, "unused") {
		t.Error("pruned output contains unused function")
	}
}

func writeTestFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// diffLines reports the first differing line of two outputs.
func diffLines(want, got string) string {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")
	for i := 0; i < len(wantLines) || i < len(gotLines); i++ {
		var w, g string
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if w != g {
			return fmt.Sprintf("line %d:\n  want: %s\n  got:  %s\n\nfull output:\n%s", i+1, w, g, got)
		}
	}
	return got
}
