/*
Copyright (c) 2026 moyaru <rbffo@icloud.com>
*/

package cmd

import (
	"os"

	"github.com/MOYARU/pubguard/internal/app/run"
	"github.com/MOYARU/pubguard/internal/app/ui"
	appver "github.com/MOYARU/pubguard/internal/version"
	"github.com/spf13/cobra"
)

var (
	version = appver.Value

	dryRun      bool
	skipPublish bool
	autoYes     bool
	remoteURL   string
	branch      string
)

var rootCmd = &cobra.Command{
	Use:   "pubguard",
	Short: "pubguard inspects the trading-bot project tree before publishing: it flags credential-shaped literals and live-trading configuration, normalizes the layout into its canonical structure, and drives git through init, stage, risk review, commit and push.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintGradientAsciiArt()
		err := run.Run(run.Options{
			Root:        ".",
			DryRun:      dryRun,
			SkipPublish: skipPublish,
			AutoYes:     autoYes,
			RemoteURL:   remoteURL,
			Branch:      branch,
		})
		if err != nil {
			os.Exit(1)
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
func init() {
	rootCmd.Version = version

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan layout moves and report findings without changing anything")
	rootCmd.Flags().BoolVar(&skipPublish, "skip-publish", false, "Scan and normalize only; do not touch git")
	rootCmd.Flags().BoolVar(&autoYes, "yes", false, "Accept residual risk at gates without prompting (CI use)")
	rootCmd.Flags().StringVar(&remoteURL, "remote", "", "Remote repository URL (overrides .pubguard.yaml)")
	rootCmd.Flags().StringVar(&branch, "branch", "", "Publish branch name (default: main)")

	rootCmd.Long = ui.AsciiArt + `
pubguard is the pre-publish guard for the trading-bot repository.

Usage:
   pubguard [flags]

Example:
  pubguard
  pubguard --dry-run
  pubguard --remote https://github.com/user/trading-bot.git

Run it from the project root. Exit code 0 means the tree was pushed
(or the dry run was clean); exit code 1 means a missing prerequisite,
a declined risk gate, or a push failure after one retry.
`
}
