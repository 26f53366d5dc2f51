// Command homeworkbot watches the review status of the latest Practicum
// homework and reports every change to a Telegram chat.
//
// Usage:
//
//	homeworkbot [run] [-c config.yaml] [--env-file .env]
//	homeworkbot validate -c config.yaml
//	homeworkbot history -c config.yaml -n 20
//	homeworkbot version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set via -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "homeworkbot",
	Short: "Telegram notifier for Practicum homework review status",
	Long: `homeworkbot polls the Practicum homework_statuses API and sends a
Telegram message whenever the review status of the latest homework changes.

Credentials come from the environment (or a .env file):
  PRACTICUM_TOKEN    Practicum OAuth token
  TELEGRAM_TOKEN     Telegram bot token
  TELEGRAM_CHAT_ID   chat that receives the messages

Without a subcommand the bot runs until interrupted.`,
	SilenceUsage: true,
	RunE:         runBot,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "homeworkbot %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().String("env-file", "", "dotenv file to load (default ./.env if present)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
