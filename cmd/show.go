package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/utils"
)

var (
	showNoColor bool
	deleteYes   bool
)

var showCmd = &cobra.Command{
	Use:   "show <date>",
	Short: "Print one entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer s.Close()

		date, err := utils.ParseDateKey(args[0], s.loc())
		if err != nil {
			return err
		}
		e, err := s.diary.Store().Get(date)
		if err != nil {
			return err
		}

		rc := utils.DefaultRenderConfig()
		rc.Color = !showNoColor
		fmt.Fprint(cmd.OutOrStdout(), utils.NewRenderer(rc).RenderEntry(e))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <date>",
	Aliases: []string{"rm"},
	Short:   "Delete the entry for a date",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer s.Close()

		date, err := utils.ParseDateKey(args[0], s.loc())
		if err != nil {
			return err
		}
		if _, err := s.diary.Store().Get(date); err != nil {
			return err
		}

		if !deleteYes {
			fmt.Fprintf(cmd.OutOrStdout(), "Delete the entry for %s? [y/N] ", date)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
				return nil
			}
		}

		if err := s.diary.Delete(cmd.Context(), date); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", date)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showNoColor, "no-color", false, "Disable colored output")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}
