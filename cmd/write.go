package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/journal"
	"github.com/ramanasai/diary/internal/utils"
)

var (
	writeDate string
	writeMood string
)

var writeCmd = &cobra.Command{
	Use:   "write [body...]",
	Short: "Write or replace the entry for a date",
	Long: `Examples:
	diary write "slept well, long walk" --mood rested
	diary write --date yesterday --mood tired "forgot to write"
	echo "from a pipe" | diary write -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer s.Close()

		date := journal.Today(s.loc())
		if writeDate != "" {
			if date, err = utils.ParseDateKey(writeDate, s.loc()); err != nil {
				return err
			}
		}

		body, err := bodyFromArgs(cmd, args)
		if err != nil {
			return err
		}

		e, err := s.diary.Save(cmd.Context(), journal.Input{Date: date, Mood: writeMood, Body: body})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s.\n", e.Date, s.diary.Location())
		return nil
	},
}

// bodyFromArgs joins args into the entry text; a single "-" reads stdin.
func bodyFromArgs(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		return readStdin(cmd)
	}
	return strings.Join(args, " "), nil
}

func readStdin(cmd *cobra.Command) (string, error) {
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func init() {
	writeCmd.Flags().StringVarP(&writeDate, "date", "d", "", "Entry date: YYYY-MM-DD, today, yesterday, monday, 3 days ago")
	writeCmd.Flags().StringVarP(&writeMood, "mood", "m", "", "Mood")
}
