package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/journal"
)

var summaryTop int

// summaryCmd prints totals, streaks and the mood breakdown.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals, streaks and moods",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer s.Close()

		today := journal.Today(s.loc())
		st := s.diary.Store().Summarize(today)

		title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
		label := lipgloss.NewStyle().Faint(true)
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, title.Render(fmt.Sprintf("Diary summary (%s)", today)))
		if st.Total == 0 {
			fmt.Fprintln(out, "  no entries yet")
			return nil
		}
		fmt.Fprintf(out, "  %s %d (%s .. %s)\n", label.Render("entries   "), st.Total, st.First, st.Last)
		fmt.Fprintf(out, "  %s %d\n", label.Render("this month"), st.ThisMonth)
		fmt.Fprintf(out, "  %s %d days (longest %d)\n", label.Render("streak    "), st.CurrentStreak, st.LongestStreak)
		fmt.Fprintf(out, "  %s today\n", label.Render(writtenLabel(s.diary.Store().Has(today))))

		fmt.Fprintln(out, title.Render("Moods"))
		for i, mc := range st.Moods {
			if summaryTop > 0 && i >= summaryTop {
				break
			}
			bar := strings.Repeat("▇", min(mc.Count, 30))
			fmt.Fprintf(out, "  %-16s %3d %s\n", mc.Mood, mc.Count, bar)
		}
		return nil
	},
}

func writtenLabel(written bool) string {
	if written {
		return "written   "
	}
	return "not yet   "
}

func init() {
	summaryCmd.Flags().IntVar(&summaryTop, "top", 10, "Show at most this many moods (0 = all)")
}
