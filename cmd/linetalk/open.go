package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/linetalk/internal/config"
	"github.com/Zuo-Peng/linetalk/internal/index"
	"github.com/Zuo-Peng/linetalk/internal/open"
)

func openCmd() *cobra.Command {
	var hitCardID int

	cmd := &cobra.Command{
		Use:   "open <talkKey>",
		Short: "Open the source transcript in $EDITOR at the hit line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			return open.OpenTalk(db, args[0], hitCardID)
		},
	}

	cmd.Flags().IntVar(&hitCardID, "hit", -1, "Card ID to jump to")

	return cmd
}
