package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"homeworkbot/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check credentials and config without starting the bot",
	Long: `Load the environment and the config file, validate every field and
print the effective settings. Tokens are redacted.

Exit codes:
  0 - everything is valid
  1 - something is missing or invalid (details on stderr)`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	var errs []error
	if err := config.LoadDotEnv(envFile); err != nil {
		errs = append(errs, err)
	}
	creds, credErr := config.LoadCredentials()
	if credErr != nil {
		errs = append(errs, credErr)
	}
	cfg, err := config.NewConfigManager(configPath).Parse()
	if err != nil {
		return errors.Join(append(errs, fmt.Errorf("invalid config: %w", err))...)
	}
	set, err := cfg.Resolve()
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid config: %w", err))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	out := cmd.OutOrStdout()
	source := configPath
	if source == "" {
		source = "(built-in defaults)"
	}
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Config:          %s\n", source)
	fmt.Fprintf(out, "  Practicum token: %s\n", config.Redact(creds.PracticumToken))
	fmt.Fprintf(out, "  Telegram token:  %s\n", config.Redact(creds.TelegramToken))
	fmt.Fprintf(out, "  Chat id:         %d\n", creds.TelegramChatID)
	fmt.Fprintf(out, "  Endpoint:        %s\n", set.Endpoint)
	fmt.Fprintf(out, "  Poll schedule:   %s\n", set.ScheduleSpec)
	fmt.Fprintf(out, "  Lookback:        %s\n", set.Lookback)
	fmt.Fprintf(out, "  Locale:          %s\n", set.Locale)
	fmt.Fprintf(out, "  Storage:         %s\n", set.Storage.Driver)
	return nil
}
