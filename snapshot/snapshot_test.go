// Package snapshot_test provides golden snapshot tests for the GLSL output.
//
// Every ash file in testdata/in/ is compiled once per stage scope it
// declares, with testdata/include/ on the include path, and the output is
// compared with testdata/golden/<name>.<stage>.glsl.
//
// To regenerate golden files after intentional changes:
//
//	UPDATE_GOLDEN=1 go test ./snapshot/...
package snapshot_test

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ashl"
	"github.com/gogpu/ashl/ash"
)

// shaderFile is an input shader and the stages it declares.
type shaderFile struct {
	name   string // base name without extension (e.g., "triangle")
	path   string
	stages []ash.Stage
}

func TestSnapshots(t *testing.T) {
	shaders := loadInputShaders(t, filepath.Join("testdata", "in"))
	require.NotEmpty(t, shaders, "no input shaders found in testdata/in/")

	for _, shader := range shaders {
		t.Run(shader.name, func(t *testing.T) {
			for _, stage := range shader.stages {
				stageName := strings.ToLower(stage.String())
				t.Run(stageName, func(t *testing.T) {
					opts := ashl.DefaultOptions()
					opts.Stage = stage
					opts.IncludeDirs = []string{filepath.Join("testdata", "include")}

					code, err := ashl.CompileFile(shader.path, opts)
					require.NoError(t, err)
					compareGolden(t, filepath.Join("testdata", "golden", shader.name+"."+stageName+".glsl"), code)
				})
			}
		})
	}
}

// loadInputShaders parses every .ash file in dir to find its stage scopes.
// A file without scopes is compiled as a vertex shader.
func loadInputShaders(t *testing.T, dir string) []shaderFile {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "read input directory")

	var shaders []shaderFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".ash" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		module, err := ashl.Parse(string(data), path)
		require.NoError(t, err, "parse %s", path)

		shaders = append(shaders, shaderFile{
			name:   strings.TrimSuffix(entry.Name(), ".ash"),
			path:   path,
			stages: declaredStages(module),
		})
	}

	sort.Slice(shaders, func(i, j int) bool {
		return shaders[i].name < shaders[j].name
	})
	return shaders
}

func declaredStages(m *ash.Module) []ash.Stage {
	seen := make(map[ash.Stage]bool)
	var stages []ash.Stage
	for _, stmt := range m.Statements {
		if ns, ok := stmt.(*ash.NamedScope); ok && !seen[ns.Stage] {
			seen[ns.Stage] = true
			stages = append(stages, ns.Stage)
		}
	}
	if len(stages) == 0 {
		stages = append(stages, ash.StageVertex)
	}
	return stages
}

// compareGolden compares actual output with the golden file at path.
// If UPDATE_GOLDEN is set, writes actual output as the new golden file.
func compareGolden(t *testing.T, path, actual string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDEN") != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(actual), 0o644))
		t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Fatalf("golden file missing: %s\nRun with UPDATE_GOLDEN=1 to create.\n\nActual output:\n%s", path, actual)
	}
	require.NoError(t, err)

	// Git may check out golden files with \r\n on Windows.
	want := strings.ReplaceAll(string(expected), "\r\n", "\n")
	if want != actual {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(want),
			B:        difflib.SplitLines(actual),
			FromFile: path,
			ToFile:   "actual",
			Context:  3,
		})
		t.Errorf("output differs from golden %s:\n%s", path, diff)
	}
}
