package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"homeworkbot/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot (default)",
	RunE:  runBot,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(app.Options{ConfigPath: configPath, EnvFile: envFile})
	if err != nil {
		return err
	}
	return a.Run(ctx)
}
