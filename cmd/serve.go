package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/site"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort int
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	Long: `Starts the HTTP server for every page, the embedded assets, the public
directory, sitemap.xml and robots.txt. With --dev, edits to the content file
are reloaded and pushed to open browser tabs.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "development mode: live reload and error stacks")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("dev") {
		cfg.Dev = serveDev
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, err := loadSite(cfg)
	if err != nil {
		return err
	}
	store := content.NewStore(s)

	srv, err := site.New(cfg, store, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)

	if cfg.Dev && cfg.ContentFile != "" {
		g.Go(func() error {
			return content.NewWatcher(cfg.ContentFile, store, log).Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", zap.Error(err))
			return err
		}
		return nil
	})

	return g.Wait()
}
