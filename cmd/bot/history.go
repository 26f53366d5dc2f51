package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"homeworkbot/internal/config"
	"homeworkbot/internal/storage"
	logx "homeworkbot/pkg/logx"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently sent notifications from the journal",
	Long: `Print the newest entries of the notification journal configured under
storage in the config file. Requires storage.driver file or sqlite.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := config.NewConfigManager(configPath).Parse()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	set, err := cfg.Resolve()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	st, err := storage.Open(set.Storage, logx.Nop())
	if err != nil {
		return err
	}
	if st == nil {
		return storage.ErrDisabled
	}
	defer st.Close()

	recs, err := st.RecentNotifications(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "no notifications journaled yet")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tKIND\tOK\tHOMEWORK\tSTATUS\tTEXT")
	for _, r := range recs {
		ok := "yes"
		if !r.OK {
			ok = "no: " + r.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.At.Local().Format(time.DateTime), r.Kind, ok, dash(r.Homework), dash(r.Status), r.Text)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
