package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/BenedictTTM/qualipro/internal/progress"
	"github.com/BenedictTTM/qualipro/internal/site"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the site as static files",
	Long: `Renders every page, the 404 page, the embedded assets, sitemap.xml and
robots.txt into the output directory and copies the public directory
alongside them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if exportOut != "" {
			cfg.OutputDir = exportOut
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

		exporter, err := site.NewExporter(cfg, progress.NewReporter(), log)
		if err != nil {
			return fmt.Errorf("creating exporter: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		res, err := exporter.Export(ctx, s)
		if err != nil {
			return fmt.Errorf("exporting site: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Exported %d files to %s in %s\n",
			res.Files(), res.Dir, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (overrides config)")
	rootCmd.AddCommand(exportCmd)
}
