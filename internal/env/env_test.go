// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package env

import (
	"testing"

	"go.astrophena.name/base/testutil"
)

func TestLookup(t *testing.T) {
	cases := map[string]struct {
		value      string
		want       Env
		wantScript string
	}{
		"production":  {value: "production", want: Prod, wantScript: "main.min.js"},
		"development": {value: "development", want: Dev, wantScript: "main.js"},
		"unset":       {value: "", want: Dev, wantScript: "main.js"},
		"other value": {value: "staging", want: Dev, wantScript: "main.js"},
		"wrong case":  {value: "Production", want: Dev, wantScript: "main.js"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := Lookup(func(key string) string {
				if key != Variable {
					t.Fatalf("unexpected lookup of %q", key)
				}
				return tc.value
			})
			testutil.AssertEqual(t, got, tc.want)
			testutil.AssertEqual(t, got.ScriptName(), tc.wantScript)
		})
	}
}

func TestLookupNil(t *testing.T) {
	testutil.AssertEqual(t, Lookup(nil), Dev)
}
