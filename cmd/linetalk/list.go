package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/linetalk/internal/config"
	"github.com/Zuo-Peng/linetalk/internal/index"
	"github.com/Zuo-Peng/linetalk/internal/search"
	"github.com/Zuo-Peng/linetalk/internal/tui"
)

func listCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse archived talks, most recently active first",
		Long:  `Opens a TUI panel listing every archived talk. Type to filter by title.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts, err := parseOptions(cfg)
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := index.IndexAll(db, cfg.ExportRoot, opts); err != nil {
				return err
			}

			return tui.RunList(db, search.Options{Limit: limit})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max talks (0 = no limit)")

	return cmd
}
