// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package build prepares the site's HTML for publishing.

A build reads the page template, points every reference to the page script at
the script suitable for the environment and writes the result out. Some targets
also copy static assets next to the built page.

# Targets

Two targets are built in:

	dist     Writes index.html into the dist directory and copies
	         style.css there.
	inplace  Rewrites index.html in place.

More targets can be loaded from a Starlark file with [LoadTargets].

# Environments

In production (NODE_ENV=production) every occurrence of "main.js" in the
template becomes "main.min.js". In any other environment the template is
written out unchanged.

Neither the output directory nor the directories of copied assets are created;
they must exist before the build.
*/
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.astrophena.name/base/logger"

	"go.astrophena.name/htmlbuild/internal/env"
)

// Marker is the text in the template that refers to the page script.
const Marker = "main.js"

// Possible errors.
var (
	// ErrMissingInput is returned when a template or asset can't be read.
	ErrMissingInput = errors.New("missing input file")
	// ErrUnwritableOutput is returned when a built file can't be written.
	ErrUnwritableOutput = errors.New("unwritable output location")
	// ErrUnknownTarget is returned when no target has the requested name.
	ErrUnknownTarget = errors.New("unknown target")
	// ErrDanglingScript is returned by CheckScripts when the built page refers
	// to scripts that don't exist.
	ErrDanglingScript = errors.New("dangling script reference")
)

var errNotRegular = errors.New("not a regular file")

// Context is the state of a single template rewrite. It is built once by
// NewContext and not changed after.
type Context struct {
	Env         env.Env
	Template    string // read from
	Output      string // written to, may be the same as Template
	Marker      string // text to replace
	Replacement string // what Marker becomes, derived from Env
}

// NewContext returns the Context for building t in environment e.
func NewContext(t Target, e env.Env) Context {
	return Context{
		Env:         e,
		Template:    t.Template,
		Output:      t.Output,
		Marker:      Marker,
		Replacement: e.ScriptName(),
	}
}

// Rewrite reads c.Template, replaces every occurrence of c.Marker with
// c.Replacement and writes the result to c.Output. It returns the number of
// occurrences that changed, which is zero when c.Marker and c.Replacement
// are equal.
//
// The template is read completely before anything is written, so a missing
// template leaves the output untouched.
func Rewrite(ctx context.Context, c Context) (int, error) {
	b, err := os.ReadFile(c.Template)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMissingInput, err)
	}

	s := string(b)
	var n int
	if c.Marker != c.Replacement {
		n = strings.Count(s, c.Marker)
		s = strings.ReplaceAll(s, c.Marker, c.Replacement)
	}

	if err := os.WriteFile(c.Output, []byte(s), 0o644); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnwritableOutput, err)
	}
	return n, nil
}

// Asset is a file copied verbatim during a build.
type Asset struct {
	Src string
	Dst string
}

// CopyAsset copies a.Src to a.Dst byte for byte, replacing whatever a.Dst
// contained before. Copying a file onto itself does nothing.
func CopyAsset(ctx context.Context, a Asset) error {
	from, err := os.Open(a.Src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	defer from.Close()

	// Both checks must happen before a.Dst is truncated.
	fi, err := from.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s: %w", ErrMissingInput, a.Src, errNotRegular)
	}
	if di, err := os.Stat(a.Dst); err == nil && os.SameFile(fi, di) {
		return nil
	}

	to, err := os.Create(a.Dst)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritableOutput, err)
	}
	defer to.Close()

	if _, err := io.Copy(to, from); err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritableOutput, err)
	}
	if err := to.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritableOutput, err)
	}
	return nil
}

// Options control a build.
type Options struct {
	// Env is the environment to build for. If empty, env.Dev is used.
	Env env.Env
	// MinifyScript determines if main.js next to the template should be
	// minified into main.min.js next to the output. Only has an effect in
	// production.
	MinifyScript bool
	// CheckScripts determines if the built page should be checked for
	// references to scripts that don't exist.
	CheckScripts bool
}

func (o *Options) setDefaults() {
	if o.Env == "" {
		o.Env = env.Dev
	}
}

// Run builds the target t. The steps are performed in order and the first
// failure stops the build.
func Run(ctx context.Context, t Target, o Options) error {
	o.setDefaults()
	c := NewContext(t, o.Env)

	n, err := Rewrite(ctx, c)
	if err != nil {
		return err
	}
	logger.Info(ctx, "rewrote template",
		slog.String("target", t.Name),
		slog.String("env", string(c.Env)),
		slog.String("output", c.Output),
		slog.Int("replaced", n),
	)

	for _, a := range t.Assets {
		if err := CopyAsset(ctx, a); err != nil {
			return err
		}
		logger.Info(ctx, "copied asset", slog.String("src", a.Src), slog.String("dst", a.Dst))
	}

	if o.MinifyScript && c.Env == env.Prod {
		if err := minifyScript(ctx, c); err != nil {
			return err
		}
	}

	if o.CheckScripts {
		return CheckScripts(ctx, c.Output)
	}
	return nil
}
