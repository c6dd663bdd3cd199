package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BenedictTTM/qualipro/internal/nav"
	"github.com/BenedictTTM/qualipro/internal/preview"
	"github.com/BenedictTTM/qualipro/internal/site"
)

var (
	previewRoute   string
	previewOffline bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse the site in the terminal",
	Long: `Opens a terminal rendition of the site driven by the same interaction
rules as the browser: m toggles the menu, esc and b close it, 1-6 switch
pages, up/down and enter work the accordions, pgup/pgdown scroll and s
skips the intro video.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		route, err := nav.Parse(previewRoute)
		if err != nil {
			return err
		}

		s, err := loadSite(cfg)
		if err != nil {
			return err
		}
		s = site.WithIntroVideo(s, cfg.IntroVideoURL)

		probe := preview.HTTPProber(&http.Client{Timeout: preview.DefaultProbeTimeout})
		if previewOffline {
			probe = preview.OfflineProber()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		clock := preview.NewLoopClock()
		m := preview.New(preview.Options{
			Site:    s,
			UI:      cfg.UI,
			Route:   route,
			Clock:   clock,
			Probe:   probe,
			Context: ctx,
			// The alternate screen owns the terminal.
			Log: zap.NewNop(),
		})

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		clock.Attach(p.Send)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running preview: %w", err)
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewRoute, "route", "r", string(nav.Home), "page to open")
	previewCmd.Flags().BoolVar(&previewOffline, "offline", false, "do not fetch the intro video; assume it plays")
	rootCmd.AddCommand(previewCmd)
}
