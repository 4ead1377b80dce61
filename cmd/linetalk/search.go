package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/linetalk/internal/config"
	"github.com/Zuo-Peng/linetalk/internal/index"
	"github.com/Zuo-Peng/linetalk/internal/search"
	"github.com/Zuo-Peng/linetalk/internal/tui"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorGreen   = "\033[1;32m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

// flatten makes a field safe for one TSV column.
func flatten(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ").Replace(s)
}

func searchCmd() *cobra.Command {
	var author, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across archived talks",
		Long: `Search archived messages using FTS5 (LIKE for Japanese/Chinese queries).
Output is TSV for fzf integration when stdout is not a terminal:
  talkKey, cardId, timestamp, title, author, snippet

Example shell function:
  ltf() {
    linetalk search "$*" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=3.. \
      --preview 'linetalk preview {1} --hit {2} --context 5 --query {q}' \
      --bind 'enter:execute(linetalk open {1} --hit {2})'
  }`,
		Args: cobra.ExactArgs(1),
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

			// refresh the archive before searching
			if _, err := index.IndexAll(db, cfg.ExportRoot, opts); err != nil {
				return err
			}

			searchOpts := search.Options{
				Author: author,
				Since:  since,
				Limit:  limit,
			}

			// interactive TUI when stdout is a terminal; TSV output for pipes
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(db, args[0], searchOpts)
			}

			searchOpts.Query = args[0]
			results, err := search.Search(db, searchOpts)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}
			writeTSV(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Only match messages from this author")
	cmd.Flags().StringVar(&since, "since", "", "Only match messages sent since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}

func writeTSV(w io.Writer, results []search.Result) {
	for _, r := range results {
		// first two fields (talkKey, cardID) stay plain for fzf {1} {2}
		fmt.Fprintf(w, "%s\t%d\t%s%s%s\t%s\t%s%s%s\t%s\n",
			r.TalkKey,
			r.CardID,
			sColorDim, r.Ts, sColorReset,
			flatten(r.Title),
			sColorGreen, flatten(r.Author), sColorReset,
			colorizeSnippet(flatten(r.Snippet)),
		)
	}
}
