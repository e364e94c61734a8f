// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/ashl/ash"
)

// Version represents a GLSL version.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool // true for GLSL ES (OpenGL ES / WebGL)
}

// Common GLSL versions.
var (
	// Desktop OpenGL / Vulkan versions
	Version430 = Version{Major: 4, Minor: 30, ES: false}
	Version450 = Version{Major: 4, Minor: 50, ES: false}
	Version460 = Version{Major: 4, Minor: 60, ES: false}

	// OpenGL ES versions
	VersionES310 = Version{Major: 3, Minor: 10, ES: true}
	VersionES320 = Version{Major: 3, Minor: 20, ES: true}
)

// String returns the version as a #version directive value.
func (v Version) String() string {
	if v.ES {
		return v.VersionNumber() + " es"
	}
	return v.VersionNumber()
}

// VersionNumber returns just the numeric version (e.g., "450", "310").
func (v Version) VersionNumber() string {
	return fmt.Sprintf("%d%02d", v.Major, v.Minor)
}

// ParseVersion parses "450", "460", "310 es" or "310es".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	es := strings.HasSuffix(s, "es")
	num := strings.TrimSpace(strings.TrimSuffix(s, "es"))
	var n int
	if _, err := fmt.Sscanf(num, "%d", &n); err != nil || n < 100 || n > 999 {
		return Version{}, fmt.Errorf("invalid GLSL version %q", s)
	}
	return Version{Major: uint8(n / 100), Minor: uint8(n % 100), ES: es}, nil
}

// DefaultExtensions are enabled by DefaultOptions: the include directive plus the
// buffer reference and scalar layouts that ash push constants and
// buffer_reference blocks rely on.
var DefaultExtensions = []string{
	"GL_GOOGLE_include_directive",
	"GL_EXT_buffer_reference",
	"GL_EXT_scalar_block_layout",
}

// Options configures GLSL code generation.
type Options struct {
	// LangVersion is the #version written at the top of the output.
	// No directive is written if zero.
	LangVersion Version

	// Extensions are enabled with #extension lines after the version.
	Extensions []string
}

// DefaultOptions returns the Vulkan GLSL 4.50 header options.
func DefaultOptions() Options {
	return Options{
		LangVersion: Version450,
		Extensions:  append([]string(nil), DefaultExtensions...),
	}
}

// Compile generates a complete GLSL translation unit from a module whose
// named scopes have already been extracted: the optional header followed by
// the module's statements.
func Compile(module *ash.Module, options Options) (string, error) {
	var w Writer
	if options.LangVersion.Major != 0 {
		w.writeLine(0, "#version "+options.LangVersion.String())
	}
	for _, ext := range options.Extensions {
		w.writeLine(0, "#extension "+ext+" : enable")
	}
	if err := w.writeNodes(module.Statements, 0); err != nil {
		return "", fmt.Errorf("glsl: %w", err)
	}
	return w.String(), nil
}
