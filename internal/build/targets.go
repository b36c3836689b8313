// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.astrophena.name/base/logger"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Target is a named build: which template to rewrite, where to write it and
// which assets to copy afterwards.
type Target struct {
	Name     string
	Template string
	Output   string
	Assets   []Asset
}

// Builtin returns the targets available without a targets file.
func Builtin() []Target {
	return []Target{
		{
			Name:     "dist",
			Template: "index.html",
			Output:   filepath.Join("dist", "index.html"),
			Assets: []Asset{
				{Src: "style.css", Dst: filepath.Join("dist", "style.css")},
			},
		},
		{
			Name:     "inplace",
			Template: "index.html",
			Output:   "index.html",
		},
	}
}

// DefaultTarget is the name of the target built when none is requested.
const DefaultTarget = "dist"

// Find returns the first target in targets named name.
func Find(targets []Target, name string) (Target, error) {
	for _, t := range targets {
		if t.Name == name {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("%w %q", ErrUnknownTarget, name)
}

// Possible targets file errors, used in tests.
var (
	errTargetField     = errors.New("target must have non-empty name, template and output")
	errTargetDuplicate = errors.New("duplicate target")
	errAssetPath       = errors.New("asset paths must be non-empty strings")
)

/*
LoadTargets executes the Starlark file at path and returns the targets it
defines. The file declares targets by calling the predeclared target function:

	target(
	    name = "docs",
	    template = "docs/index.html",
	    output = "public/docs/index.html",
	    assets = {"docs/style.css": "public/docs/style.css"},
	)

Paths are used as written. Assets are copied in the order of their source
paths.
*/
func LoadTargets(ctx context.Context, path string) ([]Target, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingInput, err)
	}

	l := &targetLoader{seen: make(map[string]bool)}
	thread := &starlark.Thread{
		Name:  path,
		Print: func(_ *starlark.Thread, msg string) { logger.Info(ctx, msg) },
	}
	predeclared := starlark.StringDict{
		"target": starlark.NewBuiltin("target", l.target),
	}
	if _, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, path, src, predeclared); err != nil {
		return nil, err
	}
	return l.targets, nil
}

type targetLoader struct {
	targets []Target
	seen    map[string]bool
}

func (l *targetLoader) target(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		t      Target
		assets *starlark.Dict
	)
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &t.Name,
		"template", &t.Template,
		"output", &t.Output,
		"assets?", &assets,
	); err != nil {
		return nil, err
	}

	if t.Name == "" || t.Template == "" || t.Output == "" {
		return nil, fmt.Errorf("%s: %w", fn.Name(), errTargetField)
	}
	if l.seen[t.Name] {
		return nil, fmt.Errorf("%s: %w %q", fn.Name(), errTargetDuplicate, t.Name)
	}

	if assets != nil {
		for _, item := range assets.Items() {
			src, ok := starlark.AsString(item[0])
			if !ok || src == "" {
				return nil, fmt.Errorf("%s: %w", fn.Name(), errAssetPath)
			}
			dst, ok := starlark.AsString(item[1])
			if !ok || dst == "" {
				return nil, fmt.Errorf("%s: %w", fn.Name(), errAssetPath)
			}
			t.Assets = append(t.Assets, Asset{Src: src, Dst: dst})
		}
		sort.Slice(t.Assets, func(i, j int) bool {
			return t.Assets[i].Src < t.Assets[j].Src
		})
	}

	l.seen[t.Name] = true
	l.targets = append(l.targets, t)
	return starlark.None, nil
}
