package images

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// alternateExtensions are tried when the exact image file is missing.
const alternateExtensions = "{png,jpg,jpeg,webp,gif,svg}"

// FileProber checks images on the local filesystem. Primary paths are
// interpreted relative to Root after stripping URLPrefix.
type FileProber struct {
	Root      string
	URLPrefix string
}

// Probe implements Prober. When the exact file does not exist, a file with
// the same stem and another common image extension is accepted.
func (p FileProber) Probe(ctx context.Context, primary string) (string, bool) {
	rel := path.Clean(primary)
	if prefix := path.Clean(filepath.ToSlash(p.URLPrefix)); prefix != "." {
		rel = strings.TrimPrefix(rel, prefix)
	}
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || ctx.Err() != nil {
		return "", false
	}

	if info, err := os.Stat(filepath.Join(p.Root, filepath.FromSlash(rel))); err == nil && !info.IsDir() {
		return primary, true
	}

	dir, file := path.Split(rel)
	stem := strings.TrimSuffix(file, path.Ext(file))
	if stem == "" || strings.ContainsAny(stem, `*?[]{}\`) {
		return "", false
	}
	pattern := path.Join(dir, stem+"."+alternateExtensions)
	matches, err := doublestar.Glob(os.DirFS(p.Root), pattern)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return path.Join(p.URLPrefix, matches[0]), true
}

// HTTPProber checks images with a HEAD request against BaseURL.
type HTTPProber struct {
	BaseURL string
	Client  *http.Client
}

// Probe implements Prober.
func (p HTTPProber) Probe(ctx context.Context, primary string) (string, bool) {
	target := primary
	if p.BaseURL != "" && !strings.HasPrefix(primary, "http://") && !strings.HasPrefix(primary, "https://") {
		target = strings.TrimSuffix(p.BaseURL, "/") + "/" + strings.TrimPrefix(primary, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return "", false
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", false
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", false
	}
	return primary, true
}
