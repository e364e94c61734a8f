// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ashl/ash"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return abs
}

func TestDirResolver(t *testing.T) {
	dir := t.TempDir()
	shared := t.TempDir()

	mainPath := writeFile(t, filepath.Join(dir, "main.ash"), "")
	libPath := writeFile(t, filepath.Join(dir, "lib", "common.ash"), "")
	sharedPath := writeFile(t, filepath.Join(shared, "noise.ash"), "")
	// A file next to the includer shadows one under a root.
	writeFile(t, filepath.Join(shared, "lib", "common.ash"), "")

	resolve := DirResolver(shared)
	owner := &ash.Module{File: mainPath}

	tests := []struct {
		name    string
		include *ash.Include
		want    string
	}{
		{"relative to includer", &ash.Include{SourceFile: mainPath, Target: "lib/common.ash"}, libPath},
		{"relative to owner", &ash.Include{Target: "lib/common.ash"}, libPath},
		{"under root", &ash.Include{SourceFile: mainPath, Target: "noise.ash"}, sharedPath},
		{"absolute", &ash.Include{Target: filepath.Join(dir, "lib", "..", "main.ash")}, mainPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolve(tt.include, owner)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := resolve(&ash.Include{SourceFile: mainPath, Target: "missing.ash"}, owner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.ash not found")
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	mainPath := writeFile(t, filepath.Join(dir, "main.ash"),
		"#include \"lib/common.ash\"\nvoid main() { float x = common(); }\n")
	writeFile(t, filepath.Join(dir, "lib", "common.ash"),
		"#include \"../main.ash\"\n#include \"common.ash\"\nfloat common() -> 1.0;\n")

	load := FileLoader(nil)
	m, err := load(mainPath)
	require.NoError(t, err)
	assert.Equal(t, mainPath, m.File)

	got, err := ResolveIncludes(m, DirResolver(), load, mainPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"func common", "func main"}, describe(got.Statements))
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	load := FileLoader(nil)

	_, err := load(filepath.Join(dir, "absent.ash"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "read ")

	broken := writeFile(t, filepath.Join(dir, "broken.ash"), "layout(set = 0) sideways float x;\n")
	_, err = load(broken)
	require.Error(t, err)
	var srcErr *ash.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, ash.ErrUnexpectedToken, srcErr.Kind)
	assert.Contains(t, err.Error(), "parse "+broken)
}

func TestFileLoaderCustomReader(t *testing.T) {
	files := map[string]string{"/virtual/a.ash": "#define A 1\n"}
	load := FileLoader(func(path string) ([]byte, error) {
		src, ok := files[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return []byte(src), nil
	})

	m, err := load("/virtual/a.ash")
	require.NoError(t, err)
	assert.Equal(t, []string{"define A"}, describe(m.Statements))
}
