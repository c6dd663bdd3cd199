package site

import (
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/blake2b"
)

//go:embed static/css/*.css static/js/*.js
var staticFS embed.FS

type asset struct {
	name        string
	contentType string
	body        []byte
	etag        string
}

// Assets serves the embedded stylesheet and script with content-hash ETags.
type Assets struct {
	byName map[string]*asset
}

// LoadAssets reads and fingerprints every embedded asset.
func LoadAssets() (*Assets, error) {
	a := &Assets{byName: make(map[string]*asset)}
	err := fs.WalkDir(staticFS, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		body, err := staticFS.ReadFile(p)
		if err != nil {
			return err
		}
		sum := blake2b.Sum256(body)
		name := strings.TrimPrefix(p, "static/")
		ct := mime.TypeByExtension(path.Ext(name))
		if ct == "" {
			ct = "application/octet-stream"
		}
		a.byName[name] = &asset{
			name:        name,
			contentType: ct,
			body:        body,
			etag:        hex.EncodeToString(sum[:8]),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	return a, nil
}

// URL returns the cache-busting URL of an asset, e.g.
// /static/css/site.css?v=1a2b3c4d5e6f7a8b.
func (a *Assets) URL(name string) string {
	as, ok := a.byName[name]
	if !ok {
		return "/static/" + name
	}
	return "/static/" + name + "?v=" + as.etag
}

// Names returns the asset names in sorted order.
func (a *Assets) Names() []string {
	names := make([]string, 0, len(a.byName))
	for n := range a.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Body returns an asset's bytes.
func (a *Assets) Body(name string) ([]byte, bool) {
	as, ok := a.byName[name]
	if !ok {
		return nil, false
	}
	return as.body, true
}

// ServeHTTP serves /static/*. Versioned requests are cached for a year;
// everything honours If-None-Match.
func (a *Assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	as, ok := a.byName[chi.URLParam(r, "*")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	etag := `"` + as.etag + `"`
	w.Header().Set("ETag", etag)
	if r.URL.Query().Get("v") == as.etag {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		w.Header().Set("Cache-Control", "no-cache")
	}
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", as.contentType)
	_, _ = w.Write(as.body)
}
