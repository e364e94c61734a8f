package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ashl/ash"
	"github.com/gogpu/ashl/glsl"
)

func TestIncludeDirsFlag(t *testing.T) {
	var dirs includeDirs
	fs := flag.NewFlagSet("ashlc", flag.ContinueOnError)
	fs.Var(&dirs, "I", "")
	require.NoError(t, fs.Parse([]string{"-I", "a", "-I", "b/c", "in.ash"}))

	assert.Equal(t, includeDirs{"a", "b/c"}, dirs)
	assert.Equal(t, "a,b/c", dirs.String())
	assert.Equal(t, []string{"in.ash"}, fs.Args())
}

func TestOptions(t *testing.T) {
	defer func(s, e, v string, n bool) {
		*stage, *entry, *langVer, *noHeader = s, e, v, n
	}(*stage, *entry, *langVer, *noHeader)

	*stage, *entry, *langVer, *noHeader = "frag", "shade", "310 es", false
	opts, err := options()
	require.NoError(t, err)
	assert.Equal(t, ash.StageFragment, opts.Stage)
	assert.Equal(t, "shade", opts.EntryPoint)
	assert.Equal(t, glsl.VersionES310, opts.GLSL.LangVersion)
	assert.Equal(t, glsl.DefaultExtensions, opts.GLSL.Extensions)

	*noHeader = true
	opts, err = options()
	require.NoError(t, err)
	assert.Equal(t, glsl.Options{}, opts.GLSL)

	*stage = "compute"
	_, err = options()
	assert.ErrorContains(t, err, "invalid -stage")

	*stage, *noHeader, *langVer = "vertex", false, "abc"
	_, err = options()
	assert.ErrorContains(t, err, "invalid -glsl")
}
