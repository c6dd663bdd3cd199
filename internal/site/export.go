package site

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BenedictTTM/qualipro/internal/config"
	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/nav"
	"github.com/BenedictTTM/qualipro/internal/progress"
)

// copyWorkers bounds concurrent public-file copies.
const copyWorkers = 8

// ExportResult summarises a finished export.
type ExportResult struct {
	Dir         string
	Pages       int
	Assets      int
	PublicFiles int
}

// Files is the total number of files written.
func (r *ExportResult) Files() int {
	// sitemap.xml and robots.txt
	return r.Pages + r.Assets + r.PublicFiles + 2
}

// Exporter writes the site as static files.
type Exporter struct {
	cfg      *config.Config
	renderer *Renderer
	assets   *Assets
	filter   *Filter
	reporter progress.Reporter
	log      *zap.Logger
}

// NewExporter prepares an export into cfg.OutputDir.
func NewExporter(cfg *config.Config, reporter progress.Reporter, log *zap.Logger) (*Exporter, error) {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	assets, err := LoadAssets()
	if err != nil {
		return nil, err
	}
	renderer, err := NewRenderer(cfg, assets)
	if err != nil {
		return nil, err
	}
	return &Exporter{
		cfg:      cfg,
		renderer: renderer,
		assets:   assets,
		filter:   NewFilter(cfg.Include, cfg.Exclude),
		reporter: reporter,
		log:      log,
	}, nil
}

type exportFile struct {
	path  string
	write func(io.Writer) error
}

// Export renders every route, the 404 page, the embedded assets, the
// sitemap and robots.txt, then copies the public directory.
func (e *Exporter) Export(ctx context.Context, s *content.Site) (*ExportResult, error) {
	out := e.cfg.OutputDir
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	public, err := e.filter.Files(e.cfg.PublicDir)
	if err != nil {
		return nil, fmt.Errorf("listing public files: %w", err)
	}

	var files []exportFile
	for _, route := range nav.All() {
		route := route
		files = append(files, exportFile{route.OutputPath(), func(w io.Writer) error {
			return e.renderer.Page(w, s, route, RenderOptions{})
		}})
	}
	files = append(files, exportFile{"404.html", func(w io.Writer) error {
		return e.renderer.Error(w, s, NotFound(), RenderOptions{})
	}})
	pages := len(files)

	for _, name := range e.assets.Names() {
		body, _ := e.assets.Body(name)
		files = append(files, exportFile{filepath.ToSlash(filepath.Join("static", name)), func(w io.Writer) error {
			_, err := w.Write(body)
			return err
		}})
	}
	files = append(files,
		exportFile{"sitemap.xml", func(w io.Writer) error {
			data, err := e.renderer.SEO().Sitemap()
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		}},
		exportFile{"robots.txt", func(w io.Writer) error {
			_, err := w.Write(e.renderer.SEO().Robots())
			return err
		}},
	)

	total := len(files) + len(public)
	e.reporter.Start(total)
	defer e.reporter.Finish()

	done := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := writeFile(filepath.Join(out, filepath.FromSlash(f.path)), f.write); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.path, err)
		}
		done++
		e.reporter.Update(done, f.path)
		e.log.Debug("exported", zap.String("file", f.path))
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(copyWorkers)
	for _, rel := range public {
		rel := rel
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := copyFile(filepath.Join(e.cfg.PublicDir, filepath.FromSlash(rel)), filepath.Join(out, filepath.FromSlash(rel))); err != nil {
				return fmt.Errorf("copying %s: %w", rel, err)
			}
			mu.Lock()
			done++
			e.reporter.Update(done, rel)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &ExportResult{
		Dir:         out,
		Pages:       pages,
		Assets:      len(e.assets.Names()),
		PublicFiles: len(public),
	}
	e.log.Info("site exported",
		zap.String("dir", out),
		zap.Int("pages", res.Pages),
		zap.Int("assets", res.Assets),
		zap.Int("public_files", res.PublicFiles),
	)
	return res, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
