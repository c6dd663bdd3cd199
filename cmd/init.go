package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BenedictTTM/qualipro/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize qualipro configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the site and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.RunWizard(cfgFile); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", cfgFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
