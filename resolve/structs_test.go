// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ashl/ash"
)

// structDecls returns every struct declaration in m in pre-order.
func structDecls(m *ash.Module) []*ash.StructDeclaration {
	var decls []*ash.StructDeclaration
	ash.InspectAll(m.Statements, func(n ash.Node) bool {
		if d, ok := n.(*ash.StructDeclaration); ok {
			decls = append(decls, d)
		}
		return true
	})
	return decls
}

func TestResolveStructReferencesBeforeDefinition(t *testing.T) {
	m := parse(t, `
void main()
{
	Light light;
	Missing other;
}
struct Light { float3 color; float intensity; };
`)
	table := ResolveStructReferences(m)
	assert.Same(t, table, m.Structs)

	decls := structDecls(m)
	require.Len(t, decls, 2)

	require.NotNil(t, decls[0].Struct)
	assert.Equal(t, "Light", table.Get(*decls[0].Struct).Name)
	assert.Nil(t, decls[1].Struct, "unknown names stay unbound")

	size, err := table.SizeOf(decls[0])
	require.NoError(t, err)
	assert.Equal(t, 16, size)
}

func TestResolveStructReferencesNested(t *testing.T) {
	m := parse(t, `
struct Material { float4 albedo; };
struct Light { float3 color; };
struct Scene { Light lights[4]; Material material; };
@Fragment {
void main() { Scene scene; }
}
`)
	table := ResolveStructReferences(m)
	for _, d := range structDecls(m) {
		require.NotNil(t, d.Struct, "%s %s", d.StructName, d.Name)
		assert.Equal(t, d.StructName, table.Get(*d.Struct).Name)
	}

	h, ok := table.Lookup("Scene")
	require.True(t, ok)
	size, err := table.StructSize(table.Get(h))
	require.NoError(t, err)
	assert.Equal(t, 4*12+16, size)
}

func TestResolveStructReferencesBufferReference(t *testing.T) {
	m := parse(t, `
layout(buffer_reference, scalar) buffer Vertices { float3 positions[]; };
push(scalar) { Vertices vertices; float4 tint; };
`)
	table := ResolveStructReferences(m)
	assert.True(t, table.IsPointer("Vertices"))

	pc := m.Statements[1].(*ash.PushConstant)
	size, err := table.PushConstantSize(pc)
	require.NoError(t, err)
	assert.Equal(t, 8+16, size)
}

func TestResolveStructReferencesFirstDefinitionWins(t *testing.T) {
	m := parse(t, `
struct Pair { float a; };
struct Pair { float4 a; float4 b; };
void main() { Pair p; }
`)
	table := ResolveStructReferences(m)
	decls := structDecls(m)
	require.Len(t, decls, 1)
	require.NotNil(t, decls[0].Struct)

	size, err := table.SizeOf(decls[0])
	require.NoError(t, err)
	assert.Equal(t, 4, size)
}

func TestResolveStructReferencesRebinds(t *testing.T) {
	m := parse(t, "struct A { float x; };\nvoid main() { A a; }\n")
	ResolveStructReferences(m)

	// Dropping the definition and resolving again unbinds the declaration.
	m.Statements = m.Statements[1:]
	table := ResolveStructReferences(m)
	assert.Zero(t, table.Len())
	assert.Nil(t, structDecls(m)[0].Struct)
}
