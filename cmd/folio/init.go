package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/scaffold"
)

var (
	initName   string
	initAuthor string
	initURL    string
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a starter config, content file and assets",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return runInit(cmd, dir)
	},
}

func runInit(cmd *cobra.Command, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return err
	}
	name := initName
	if name == "" {
		name = scaffold.ToTitle(filepath.Base(abs))
	}

	cfg := folio.DefaultConfig()
	cfg.Name = name
	cfg.Author = initAuthor
	if initURL != "" {
		cfg.URL = initURL
	}

	out := cmd.OutOrStdout()
	cfgPath := filepath.Join(abs, filepath.Base(cfgFile))
	if _, err := os.Stat(cfgPath); err == nil && !initForce {
		fmt.Fprintf(out, "  kept    %s\n", cfgPath)
	} else {
		if err := saveConfig(cfg, cfgPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "  created %s\n", cfgPath)
	}

	created, err := scaffold.Write(abs, scaffold.Data{
		SiteName: name,
		Author:   initAuthor,
		URL:      cfg.URL,
		Year:     time.Now().Year(),
	}, initForce)
	if err != nil {
		return err
	}
	for _, p := range created {
		fmt.Fprintf(out, "  created %s\n", p)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  cd %s\n", dir)
	fmt.Fprintln(out, "  cp .env.example .env   # set FOLIO_ADMIN_PASSWORD and FOLIO_SESSION_SECRET")
	fmt.Fprintln(out, "  folio check")
	fmt.Fprintln(out, "  folio serve")
	return nil
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "site name (default: directory name)")
	initCmd.Flags().StringVar(&initAuthor, "author", "", "author name")
	initCmd.Flags().StringVar(&initURL, "url", "", "canonical site URL")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
	rootCmd.AddCommand(initCmd)
}
