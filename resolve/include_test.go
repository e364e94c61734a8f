// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ashl/ash"
)

func TestResolveIncludesSplicesDepthFirst(t *testing.T) {
	fs := newMemoryFiles(map[string]string{
		"a.ash": "#include \"b.ash\"\n#define A 1\n",
		"b.ash": "#define B 2\n",
	})
	m := parse(t, "#include \"a.ash\"\nvoid main() {}\n")

	got, err := ResolveIncludes(m, fs.resolve, fs.load)
	require.NoError(t, err)
	assert.Equal(t, []string{"define B", "define A", "func main"}, describe(got.Statements))

	// The input module is left untouched.
	assert.Equal(t, []string{"include a.ash", "func main"}, describe(m.Statements))
}

func TestResolveIncludesOncePerPath(t *testing.T) {
	fs := newMemoryFiles(map[string]string{
		"common.ash": "#define COMMON 1\n",
		"light.ash":  "#include \"common.ash\"\nstruct Light { float3 color; };\n",
	})
	m := parse(t, "#include \"common.ash\"\n#include \"light.ash\"\n#include \"common.ash\"\nvoid main() {}\n")

	got, err := ResolveIncludes(m, fs.resolve, fs.load)
	require.NoError(t, err)
	assert.Equal(t, []string{"define COMMON", "struct Light", "func main"}, describe(got.Statements))
	assert.Equal(t, 1, fs.loads["common.ash"])
}

func TestResolveIncludesCycle(t *testing.T) {
	fs := newMemoryFiles(map[string]string{
		"a.ash": "#include \"b.ash\"\n#define A 1\n",
		"b.ash": "#include \"a.ash\"\n#define B 1\n",
	})
	m := parse(t, "#include \"a.ash\"\n")

	got, err := ResolveIncludes(m, fs.resolve, fs.load)
	require.NoError(t, err)
	assert.Equal(t, []string{"define B", "define A"}, describe(got.Statements))
}

func TestResolveIncludesPreincluded(t *testing.T) {
	fs := newMemoryFiles(map[string]string{
		"main.ash": "void main() {}\n",
		"lib.ash":  "#include \"main.ash\"\n#define LIB 1\n",
	})
	m := parse(t, "#include \"lib.ash\"\nvoid main() {}\n")

	got, err := ResolveIncludes(m, fs.resolve, fs.load, "main.ash")
	require.NoError(t, err)
	assert.Equal(t, []string{"define LIB", "func main"}, describe(got.Statements))
	assert.Zero(t, fs.loads["main.ash"])
}

func TestResolveIncludesIdempotent(t *testing.T) {
	fs := newMemoryFiles(map[string]string{
		"a.ash": "#define A 1\n",
	})
	m := parse(t, "#include \"a.ash\"\n@Vertex {\n#include \"a.ash\"\nvoid main() {}\n}\n")

	once, err := ResolveIncludes(m, fs.resolve, fs.load)
	require.NoError(t, err)
	twice, err := ResolveIncludes(once, fs.resolve, fs.load)
	require.NoError(t, err)
	assert.Equal(t, describe(once.Statements), describe(twice.Statements))
}

func TestResolveIncludesInsideNamedScope(t *testing.T) {
	fs := newMemoryFiles(map[string]string{
		"vertex.ash": "#define VERTEX 1\n",
		"shared.ash": "#define SHARED 1\n",
	})
	m := parse(t, "#include \"shared.ash\"\n@Vertex {\n#include \"shared.ash\"\n#include \"vertex.ash\"\nvoid main() {}\n}\n")

	got, err := ResolveIncludes(m, fs.resolve, fs.load)
	require.NoError(t, err)
	require.Equal(t, []string{"define SHARED", "@Vertex"}, describe(got.Statements))

	scope := got.Statements[1].(*ash.NamedScope)
	assert.Equal(t, []string{"define VERTEX", "func main"}, describe(scope.Statements))

	// The original scope still holds its includes.
	orig := m.Statements[1].(*ash.NamedScope)
	assert.Equal(t, []string{"include shared.ash", "include vertex.ash", "func main"}, describe(orig.Statements))
}

func TestResolveIncludesRejectsNestedScopes(t *testing.T) {
	fs := newMemoryFiles(map[string]string{
		"stage.ash": "@Fragment {\nvoid main() {}\n}\n",
	})
	m := parse(t, "@Vertex {\n#include \"stage.ash\"\n}\n")

	_, err := ResolveIncludes(m, fs.resolve, fs.load)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "@Fragment scope inside @Vertex")
}

func TestResolveIncludesScopeAtModuleLevel(t *testing.T) {
	fs := newMemoryFiles(map[string]string{
		"stages.ash": "@Fragment {\nvoid main() {}\n}\n",
	})
	m := parse(t, "#include \"stages.ash\"\n")

	got, err := ResolveIncludes(m, fs.resolve, fs.load)
	require.NoError(t, err)
	assert.Equal(t, []string{"@Fragment"}, describe(got.Statements))
}

func TestResolveIncludesNotFound(t *testing.T) {
	fs := newMemoryFiles(map[string]string{})
	m := parse(t, "#include \"missing.ash\"\n")

	_, err := ResolveIncludes(m, fs.resolve, fs.load)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `include "missing.ash"`)
	assert.Contains(t, err.Error(), "missing.ash not found")
}

func TestResolveIncludesParseError(t *testing.T) {
	fs := newMemoryFiles(map[string]string{
		"broken.ash": "struct {\n",
	})
	m := parse(t, "#include \"broken.ash\"\n")

	_, err := ResolveIncludes(m, fs.resolve, fs.load)
	require.Error(t, err)
	var srcErr *ash.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "broken.ash", srcErr.Span.File)
}
