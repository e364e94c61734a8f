// Package ash provides the front end of the ash shader language: tokens,
// the lexer, the AST, the parser and the struct arena used for size
// queries.
//
// ash is a GLSL superset. On top of GLSL-like functions and statements it
// adds #include, typed push constant blocks, layout-qualified I/O and
// named stage scopes:
//
//	#include "common.ash"
//
//	push(scalar) {
//	    mat4 transform;
//	};
//
//	@Vertex {
//	    layout(location = 0) in float3 inPosition;
//
//	    void main() {
//	        gl_Position = push.transform * float4(inPosition, 1.0);
//	    }
//	}
//
// Parse a file with ParseSource, or run the two stages separately:
//
//	tokens := ash.Tokenize(source, "shader.ash")
//	module, err := ash.Parse(tokens)
package ash
