// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.astrophena.name/base/logger"

	"github.com/PuerkitoBio/goquery"
)

// CheckScripts parses the built page at path and reports scripts it loads by
// a relative path that don't exist relative to the page's directory. Scripts
// loaded from other hosts or from data URLs are not checked.
func CheckScripts(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var (
		dir     = filepath.Dir(path)
		checked int
		missing []string
		statErr error
	)
	doc.Find("script[src]").Each(func(i int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		p, ok := localScript(src)
		if !ok {
			return
		}
		checked++
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(p)))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, src)
		case err != nil && statErr == nil:
			statErr = err
		}
	})
	if statErr != nil {
		return statErr
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w: %s", path, ErrDanglingScript, strings.Join(missing, ", "))
	}

	logger.Info(ctx, "checked scripts", slog.String("page", path), slog.Int("scripts", checked))
	return nil
}

// localScript returns the path of the script referenced by src, relative to
// the page, and reports whether it should be looked for on disk.
func localScript(src string) (string, bool) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", false
	}
	u, err := url.Parse(src)
	if err != nil {
		// Let the browser deal with it.
		return "", false
	}
	if u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	return strings.TrimPrefix(u.Path, "/"), true
}
