// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Build prepares the site's HTML for publishing.

# Usage

	$ go tool build [flags] [target]

Builds the target named target, "dist" by default. The "dist" target writes
dist/index.html and copies style.css into dist. The "inplace" target rewrites
index.html in place. The dist directory must exist.

When the NODE_ENV environment variable is set to "production", the built page
refers to main.min.js instead of main.js.

Additional targets can be defined in a Starlark file passed with -targets:

	target(
	    name = "docs",
	    template = "docs/index.html",
	    output = "public/docs/index.html",
	    assets = {"docs/style.css": "public/docs/style.css"},
	)
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
