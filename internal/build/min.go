// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/base/logger"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
)

const jsMediaType = "application/javascript"

type min struct {
	m *minify.M
}

func newMin() *min {
	m := minify.New()
	m.AddFunc(jsMediaType, js.Minify)
	return &min{m: m}
}

func (m *min) Bytes(mediaType string, b []byte) ([]byte, error) {
	return m.m.Bytes(mediaType, b)
}

// minifyScript writes the minified copy of the script next to the template
// into the output directory under the name the built page refers to.
func minifyScript(ctx context.Context, c Context) error {
	src := filepath.Join(filepath.Dir(c.Template), c.Marker)
	dst := filepath.Join(filepath.Dir(c.Output), c.Replacement)

	b, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	minified, err := newMin().Bytes(jsMediaType, b)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if err := os.WriteFile(dst, minified, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritableOutput, err)
	}

	logger.Info(ctx, "minified script",
		slog.String("src", src),
		slog.String("dst", dst),
		slog.Int("size", len(b)),
		slog.Int("minified_size", len(minified)),
	)
	return nil
}
