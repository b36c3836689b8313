// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.astrophena.name/base/cli"

	"go.astrophena.name/htmlbuild/internal/build"
	"go.astrophena.name/htmlbuild/internal/env"
)

func main() { cli.Main(new(app)) }

type app struct {
	targets string
	minify  bool
	check   bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.Func("C", "Change to `dir` at startup.", os.Chdir)
	fs.StringVar(&a.targets, "targets", "", "Load additional targets from Starlark `file`.")
	fs.BoolVar(&a.minify, "minify", false, "In production, also minify main.js into main.min.js next to the built page.")
	fs.BoolVar(&a.check, "check", false, "Fail if the built page loads scripts that don't exist.")
}

func (a *app) Run(ctx context.Context) error {
	e := cli.GetEnv(ctx)
	if len(e.Args) > 1 {
		return fmt.Errorf("%w: want at most one target", cli.ErrInvalidArgs)
	}
	name := build.DefaultTarget
	if len(e.Args) == 1 {
		name = e.Args[0]
	}

	targets := build.Builtin()
	if a.targets != "" {
		loaded, err := build.LoadTargets(ctx, a.targets)
		if err != nil {
			return err
		}
		// Loaded targets take precedence over built-in ones.
		targets = append(loaded, targets...)
	}
	target, err := build.Find(targets, name)
	if err != nil {
		return err
	}

	return build.Run(ctx, target, build.Options{
		Env:          env.Lookup(e.Getenv),
		MinifyScript: a.minify,
		CheckScripts: a.check,
	})
}
