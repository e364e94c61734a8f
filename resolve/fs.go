// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/gogpu/ashl/ash"
)

// DirResolver returns a PathResolver for files on disk. An absolute target
// is used as is. A relative target is looked up next to the including file,
// then under each root in order; the first existing file wins.
func DirResolver(roots ...string) PathResolver {
	return func(inc *ash.Include, owner *ash.Module) (string, error) {
		if filepath.IsAbs(inc.Target) {
			return filepath.Clean(inc.Target), nil
		}

		source := inc.SourceFile
		if source == "" && owner != nil {
			source = owner.File
		}
		var dirs []string
		if source != "" {
			dirs = append(dirs, filepath.Dir(source))
		}
		dirs = append(dirs, roots...)

		for _, dir := range dirs {
			candidate := filepath.Join(dir, inc.Target)
			if _, err := os.Stat(candidate); err == nil {
				abs, err := filepath.Abs(candidate)
				if err != nil {
					return "", errors.Wrapf(err, "resolve %s", candidate)
				}
				return abs, nil
			}
		}
		return "", errors.Errorf("%s not found in %v", inc.Target, dirs)
	}
}

// FileLoader returns a Loader that reads files with readFile, or
// os.ReadFile when readFile is nil, and parses them with the ash front end.
func FileLoader(readFile func(string) ([]byte, error)) Loader {
	if readFile == nil {
		readFile = os.ReadFile
	}
	return func(path string) (*ash.Module, error) {
		data, err := readFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		m, err := ash.ParseSource(string(data), path)
		if err != nil {
			return nil, errors.WithMessagef(err, "parse %s", path)
		}
		return m, nil
	}
}
