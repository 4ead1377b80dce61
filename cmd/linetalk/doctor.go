package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/linetalk/internal/config"
	"github.com/Zuo-Peng/linetalk/internal/index"
	"github.com/Zuo-Peng/linetalk/internal/scan"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, export root, DB and FTS5",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Fprintln(out, "=== Config ===")
			fmt.Fprintf(out, "  Format: %s\n", cfg.Format)
			fmt.Fprintf(out, "  Out dir: %s\n", cfg.OutDir)
			fmt.Fprintf(out, "  Saved-at header: %t\n", cfg.SavedAt)
			fmt.Fprintf(out, "  Date detection: %s\n", cfg.DateDetection)
			if _, err := parseOptions(cfg); err != nil {
				fmt.Fprintf(out, "  ERROR: %v\n", err)
			}

			fmt.Fprintln(out, "\n=== Export Root ===")
			checkDir(out, "Transcripts", cfg.ExportRoot)
			files, err := scan.ScanRoot(cfg.ExportRoot)
			if err != nil {
				fmt.Fprintf(out, "  scan error: %v\n", err)
			} else {
				fmt.Fprintf(out, "  Transcript files: %d\n", len(files))
			}

			fmt.Fprintln(out, "\n=== Database ===")
			fmt.Fprintf(out, "  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Fprintln(out, "  Status: NOT FOUND (run 'linetalk index' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			talkCount, err := db.TalkCount()
			if err != nil {
				return fmt.Errorf("count talks: %w", err)
			}
			cardCount, err := db.CardCount()
			if err != nil {
				return fmt.Errorf("count cards: %w", err)
			}
			fmt.Fprintf(out, "  Talks: %d\n", talkCount)
			fmt.Fprintf(out, "  Cards: %d\n", cardCount)

			fmt.Fprintln(out, "\n=== FTS5 ===")
			ftsCount, err := db.FTSCount()
			if err != nil {
				fmt.Fprintf(out, "  FTS5 error: %v\n", err)
			} else {
				fmt.Fprintf(out, "  FTS5 entries: %d\n", ftsCount)
				if ftsCount == cardCount {
					fmt.Fprintln(out, "  Status: OK (synced)")
				} else {
					fmt.Fprintf(out, "  Status: MISMATCH (cards=%d, fts=%d)\n", cardCount, ftsCount)
				}
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Fprintf(out, "\n=== DB Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}

func checkDir(w io.Writer, name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Fprintf(w, "  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Fprintf(w, "  %s: %s (OK)\n", name, path)
	}
}
