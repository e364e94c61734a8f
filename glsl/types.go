// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/ashl/ash"
)

// typeNames maps builtin declaration types to GLSL type keywords.
var typeNames = map[ash.DeclType]string{
	ash.DeclFloat:     "float",
	ash.DeclInt:       "int",
	ash.DeclFloat2:    "vec2",
	ash.DeclInt2:      "ivec2",
	ash.DeclFloat3:    "vec3",
	ash.DeclInt3:      "ivec3",
	ash.DeclFloat4:    "vec4",
	ash.DeclInt4:      "ivec4",
	ash.DeclMat3:      "mat3",
	ash.DeclMat4:      "mat4",
	ash.DeclBool:      "bool",
	ash.DeclVoid:      "void",
	ash.DeclSampler2D: "sampler2D",
}

// constructorNames renames builtin type names used as constructors,
// e.g. float4(...) becomes vec4(...).
var constructorNames = map[string]string{
	"float2": "vec2",
	"int2":   "ivec2",
	"float3": "vec3",
	"int3":   "ivec3",
	"float4": "vec4",
	"int4":   "ivec4",
}

func identifierName(name string) string {
	if mapped, ok := constructorNames[name]; ok {
		return mapped
	}
	return name
}

// TypeName returns the GLSL keyword for a builtin declaration type.
func TypeName(t ash.DeclType) (string, bool) {
	name, ok := typeNames[t]
	return name, ok
}

// arraySuffix renders a declaration count: [] for 0, nothing for 1, [N] above.
func arraySuffix(count int) string {
	switch count {
	case 0:
		return "[]"
	case 1:
		return ""
	default:
		return "[" + strconv.Itoa(count) + "]"
	}
}

// formatFloat renders f as a GLSL float literal, always with a decimal point.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 32)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// layoutTags and pushTags are the qualifiers emitted for layout and push
// constant declarations. Other tags are dropped.
var (
	layoutTags = map[string]bool{
		"set":                    true,
		"location":               true,
		"binding":                true,
		"scalar":                 true,
		"std140":                 true,
		"std430":                 true,
		"push_constant":          true,
		"buffer_reference":       true,
		"buffer_reference_align": true,
		"input_attachment_index": true,
		"readonly":               true,
	}
	pushTags = map[string]bool{
		"scalar": true,
		"std140": true,
		"std430": true,
	}
)

// qualifiers renders the allowed tags as "key = value" or a bare key.
func qualifiers(tags ash.Tags, allowed map[string]bool) []string {
	var out []string
	for _, tag := range tags {
		if !allowed[tag.Key] {
			continue
		}
		if tag.Value == "" {
			out = append(out, tag.Key)
		} else {
			out = append(out, tag.Key+" = "+tag.Value)
		}
	}
	return out
}

// indentTable covers typical nesting without allocating.
var indentTable = [...]string{
	"",
	"\t",
	"\t\t",
	"\t\t\t",
	"\t\t\t\t",
	"\t\t\t\t\t",
	"\t\t\t\t\t\t",
	"\t\t\t\t\t\t\t",
	"\t\t\t\t\t\t\t\t",
}

// indent returns depth tab characters.
func indent(depth int) string {
	if depth < 0 {
		return ""
	}
	if depth < len(indentTable) {
		return indentTable[depth]
	}
	return strings.Repeat("\t", depth)
}
