package cmd

import (
	"github.com/spf13/cobra"

	"github.com/BenedictTTM/qualipro/internal/config"
)

var (
	cfgFile string
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "qualipro",
	Short: "The QualiPRO Consult marketing site",
	Long: `qualipro serves, exports and previews the QualiPRO Consult website:
the home, about, services, industries, tools and contact pages, with
structured data for search engines and an MCP server exposing the site
content to AI agents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(envFile)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
