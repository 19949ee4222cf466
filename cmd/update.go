package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/notify"
	"github.com/ramanasai/diary/internal/version"
)

var checkUpdateNotify bool

var checkUpdateCmd = &cobra.Command{
	Use:   "check-update",
	Short: "Compare this build with the latest published version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		res, err := newChecker(cfg).Check(cmd.Context())
		if err != nil {
			return err
		}
		title, body := res.Message(version.ReleasesURL)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", title, body)
		if !res.UpToDate && checkUpdateNotify && cfg.Notifications.Enabled {
			_ = notify.UpdateAvailable(res.Current, res.Latest)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionInfo())
	},
}

func init() {
	checkUpdateCmd.Flags().BoolVar(&checkUpdateNotify, "notify", false, "Also show a desktop notification when an update exists")
}
