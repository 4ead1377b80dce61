package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/linetalk/internal/config"
	"github.com/Zuo-Peng/linetalk/internal/logger"
	"github.com/Zuo-Peng/linetalk/internal/talk"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "linetalk",
		Short:         "Convert and search exported LINE chat transcripts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetVerbose(verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(indexCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseOptions builds the parser options configured for this run.
func parseOptions(cfg *config.Config) (talk.Options, error) {
	detect, err := talk.DetectorByName(cfg.DateDetection)
	if err != nil {
		return talk.Options{}, err
	}
	return talk.Options{SavedAt: cfg.SavedAt, Detection: detect}, nil
}
