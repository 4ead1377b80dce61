package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/linetalk/internal/config"
	"github.com/Zuo-Peng/linetalk/internal/emit"
	"github.com/Zuo-Peng/linetalk/internal/logger"
	"github.com/Zuo-Peng/linetalk/internal/talk"
)

func convertCmd() *cobra.Command {
	var file, format, outDir, detect string
	var savedAt bool

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a LINE transcript into a structured document",
		Long: `Parses an exported LINE transcript and writes "<title>.<format>" to the
output directory. Nothing is written if any line of the transcript is malformed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if file != "" {
					return errors.New("give the transcript either as an argument or with --file, not both")
				}
				file = args[0]
			}
			if file == "" {
				return errors.New("no transcript given")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}
			if cmd.Flags().Changed("out-dir") {
				cfg.OutDir = outDir
			}
			if cmd.Flags().Changed("saved-at") {
				cfg.SavedAt = savedAt
			}
			if cmd.Flags().Changed("detect") {
				cfg.DateDetection = detect
			}

			f, err := emit.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			opts, err := parseOptions(cfg)
			if err != nil {
				return err
			}

			result, err := talk.ParseFile(file, opts)
			if err != nil {
				return fmt.Errorf("convert %s: %w", file, err)
			}
			reportMeta(file, result.Meta)

			path, err := emit.Write(cfg.OutDir, &result.Talk, f)
			if err != nil {
				return err
			}
			logger.Info("wrote %d records", len(result.Talk.Cards))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Transcript to convert")
	cmd.Flags().StringVar(&format, "format", "toml", "Output format (toml/yaml/json)")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "Directory to write the document to")
	cmd.Flags().BoolVar(&savedAt, "saved-at", false, "Require and parse the saved-at header line")
	cmd.Flags().StringVar(&detect, "detect", "line", "Date separator detection (line/prefix)")

	return cmd
}

func reportMeta(file string, meta talk.Meta) {
	logger.Debug("%s: %d blocks, %d lines, %d messages, %d notices, %d continuations",
		file, meta.Blocks, meta.Lines, meta.Messages, meta.Notices, meta.Continuations)
	if meta.Orphans > 0 {
		logger.Debug("%s: dropped %d continuation lines with no preceding message", file, meta.Orphans)
	}
	for _, r := range meta.Regressions {
		logger.Warn("%s: line %d: date %s precedes %s", file, r.Line, r.Date, r.Prev)
	}
}
