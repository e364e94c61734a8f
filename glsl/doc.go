// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

/*
Package glsl generates GLSL source code from ash syntax trees.

The generator walks the tree depth first and writes text directly: ash is
a GLSL superset, so generation maps names and qualifiers rather than
lowering semantics.

# Output

  - Builtin types are renamed (float3 to vec3, int4 to ivec4, and the same
    for constructor calls).
  - Layout qualifiers are filtered through an allow-list; unknown tags are
    dropped.
  - Push constant blocks become a push_constant uniform block named push.
  - Float literals always carry a decimal point.

Generate emits statements only. Compile also writes a #version line and
#extension pragmas:

	code, err := glsl.Compile(module, glsl.DefaultOptions())

The module passed to Compile must not contain named scopes; extract one
stage with resolve.ExtractScope first.
*/
package glsl
