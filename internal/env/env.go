// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package env contains definitions for the environments in which the site can
// be built.
package env

// Env is the environment in which the site is built.
type Env string

// Available environments.
const (
	// Dev references the unminified script.
	Dev = Env("development")
	// Prod references the minified script.
	Prod = Env("production")
)

// Variable is the environment variable that selects the environment.
const Variable = "NODE_ENV"

// Lookup returns Prod if the Variable reported by getenv is exactly
// "production", and Dev otherwise.
func Lookup(getenv func(string) string) Env {
	if getenv == nil {
		return Dev
	}
	if Env(getenv(Variable)) == Prod {
		return Prod
	}
	return Dev
}

// ScriptName returns the name of the script the built page should load.
func (e Env) ScriptName() string {
	if e == Prod {
		return "main.min.js"
	}
	return "main.js"
}
