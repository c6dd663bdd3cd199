package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/nav"
)

type recordingReporter struct {
	total    int
	updates  []string
	finished bool
}

func (r *recordingReporter) Start(total int)          { r.total = total }
func (r *recordingReporter) Update(_ int, msg string) { r.updates = append(r.updates, msg) }
func (r *recordingReporter) Finish()                  { r.finished = true }

func TestExport(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PublicDir, "logo.png"), []byte("png"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.PublicDir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PublicDir, "images", "people.png"), []byte("people"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PublicDir, ".DS_Store"), []byte("x"), 0o644))

	s, err := content.Default()
	require.NoError(t, err)
	rep := &recordingReporter{}
	exp, err := NewExporter(cfg, rep, nil)
	require.NoError(t, err)

	res, err := exp.Export(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, len(nav.All())+1, res.Pages)
	assert.Equal(t, 2, res.Assets)
	assert.Equal(t, 2, res.PublicFiles)
	assert.Equal(t, res.Files(), rep.total)
	assert.Len(t, rep.updates, res.Files())
	assert.True(t, rep.finished)

	for _, r := range nav.All() {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(r.OutputPath())))
		require.NoError(t, err, r)
		assert.Contains(t, string(data), `data-route="`+string(r)+`"`)
	}

	notFound, err := os.ReadFile(filepath.Join(cfg.OutputDir, "404.html"))
	require.NoError(t, err)
	assert.Contains(t, string(notFound), "The requested page could not be found.")

	for _, p := range []string{"static/css/site.css", "static/js/site.js", "sitemap.xml", "robots.txt", "logo.png", "images/people.png"} {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, filepath.FromSlash(p)))
	}
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, ".DS_Store"))

	people, err := os.ReadFile(filepath.Join(cfg.OutputDir, "images", "people.png"))
	require.NoError(t, err)
	assert.Equal(t, "people", string(people))
}

func TestExportHonoursCancellation(t *testing.T) {
	cfg := testConfig(t)
	s, err := content.Default()
	require.NoError(t, err)
	exp, err := NewExporter(cfg, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = exp.Export(ctx, s)
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportedPagesHaveNoLiveReload(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dev = true
	s, err := content.Default()
	require.NoError(t, err)
	exp, err := NewExporter(cfg, nil, nil)
	require.NoError(t, err)
	_, err = exp.Export(context.Background(), s)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "index.html"))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "data-livereload"))
}
