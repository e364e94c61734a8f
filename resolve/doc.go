// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package resolve implements the passes that run between parsing and GLSL
// generation:
//
//   - ResolveIncludes splices #include targets into a module.
//   - ResolveStructReferences binds struct declarations to their definitions.
//   - ExtractScope flattens one stage's named scope into the module.
//   - ExtractFunctionWithDependencies prunes a module down to what one
//     entry function reaches.
//
// File system policy stays outside the passes: includes are located by a
// PathResolver and read by a Loader, both supplied by the caller.
// DirResolver and FileLoader are the file system implementations used by
// the ashlc command.
package resolve
