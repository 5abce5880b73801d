package main

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "A portfolio site engine built with Echo and templ",
	Long: `folio serves a portfolio website from a YAML content file: a home page
with tag filtering, case studies with galleries, a manifesto page, an admin
dashboard, RSS and a sitemap.

Settings come from folio.yml, overridden by FOLIO_* environment variables
(a .env file is loaded first when present).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "folio.yml", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}
