package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/linetalk/internal/config"
	"github.com/Zuo-Peng/linetalk/internal/index"
	"github.com/Zuo-Peng/linetalk/internal/render"
)

func previewCmd() *cobra.Command {
	var hitCardID int
	var context, width int
	var query string

	cmd := &cobra.Command{
		Use:   "preview <talkKey>",
		Short: "Preview an archived talk around a hit",
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

			out, _, err := render.RenderTalk(db, args[0], render.Options{
				HitCardID: hitCardID,
				Context:   context,
				Width:     width,
				Query:     query,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&hitCardID, "hit", -1, "Card ID to highlight")
	cmd.Flags().IntVar(&context, "context", 10, "Messages before/after hit to show (-1 = all)")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (0 = no wrap)")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")

	return cmd
}
