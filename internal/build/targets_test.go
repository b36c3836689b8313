// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package build

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBuiltin(t *testing.T) {
	dist, err := Find(Builtin(), DefaultTarget)
	if err != nil {
		t.Fatal(err)
	}
	assertTargets(t, []Target{dist}, []Target{{
		Name:     "dist",
		Template: "index.html",
		Output:   filepath.Join("dist", "index.html"),
		Assets: []Asset{
			{Src: "style.css", Dst: filepath.Join("dist", "style.css")},
		},
	}})

	inplace, err := Find(Builtin(), "inplace")
	if err != nil {
		t.Fatal(err)
	}
	assertTargets(t, []Target{inplace}, []Target{{
		Name:     "inplace",
		Template: "index.html",
		Output:   "index.html",
	}})
}

func TestFindUnknown(t *testing.T) {
	_, err := Find(Builtin(), "staging")
	if !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("want ErrUnknownTarget, got %v", err)
	}
}

func TestLoadTargets(t *testing.T) {
	targets, err := LoadTargets(context.Background(), filepath.Join("testdata", "targets.star"))
	if err != nil {
		t.Fatal(err)
	}
	assertTargets(t, targets, []Target{
		{
			Name:     "docs",
			Template: "docs/index.html",
			Output:   "public/docs/index.html",
			Assets: []Asset{
				{Src: "docs/print.css", Dst: "public/docs/print.css"},
				{Src: "docs/style.css", Dst: "public/docs/style.css"},
			},
		},
		{
			Name:     "root",
			Template: "index.html",
			Output:   "public/index.html",
		},
	})
}

func TestLoadTargetsErrors(t *testing.T) {
	cases := map[string]struct {
		src     string
		wantErr error
	}{
		"empty output": {
			src:     `target(name = "a", template = "index.html", output = "")`,
			wantErr: errTargetField,
		},
		"duplicate": {
			src: `target(name = "a", template = "index.html", output = "a.html")
target(name = "a", template = "index.html", output = "b.html")`,
			wantErr: errTargetDuplicate,
		},
		"bad asset": {
			src:     `target(name = "a", template = "index.html", output = "a.html", assets = {"style.css": 1})`,
			wantErr: errAssetPath,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "targets.star")
			writeFile(t, path, tc.src)

			_, err := LoadTargets(context.Background(), path)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadTargetsSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.star")
	writeFile(t, path, `target(name = `)
	if _, err := LoadTargets(context.Background(), path); err == nil {
		t.Fatal("must fail on syntax error")
	}
}

func TestLoadTargetsMissingFile(t *testing.T) {
	_, err := LoadTargets(context.Background(), filepath.Join(t.TempDir(), "targets.star"))
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("want ErrMissingInput, got %v", err)
	}
}

func assertTargets(t *testing.T, got, want []Target) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want targets\n\t%+v,\ngot\n\t%+v", want, got)
	}
}
