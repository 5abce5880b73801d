package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/content"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content file and its referenced assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgFile, envFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cat, err := content.LoadCatalog(cfg.ContentPath)
		if err != nil {
			return err
		}
		if err := content.Validate(cat, os.DirFS(cfg.StaticDir)); err != nil {
			return fmt.Errorf("%s has problems:\n%w", cfg.ContentPath, err)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: config is not ready to serve:\n%v\n", err)
		}

		drafts := 0
		for _, p := range cat.Projects {
			if !p.Published {
				drafts++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d projects (%d drafts), %d tags, %d phrases\n",
			cfg.ContentPath, len(cat.Projects), drafts, len(content.AllTags(cat.Projects)), len(cat.Phrases))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
