package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/journal"
	"github.com/ramanasai/diary/internal/utils"
)

var (
	editMood string
	editBody string
)

var editCmd = &cobra.Command{
	Use:   "edit <date>",
	Short: "Change the mood or body of an existing entry",
	Long: `Examples:
	diary edit 2025-01-15 --mood happy
	diary edit yesterday --body "rewritten"
	cat notes.txt | diary edit today --body -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		moodSet := cmd.Flags().Changed("mood")
		bodySet := cmd.Flags().Changed("body")
		if !moodSet && !bodySet {
			return fmt.Errorf("nothing to update - specify --mood and/or --body")
		}

		s, err := openSession(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer s.Close()

		date, err := utils.ParseDateKey(args[0], s.loc())
		if err != nil {
			return err
		}
		existing, err := s.diary.Store().Get(date)
		if err != nil {
			return err
		}

		in := journal.Input{Date: date, Mood: existing.Mood, Body: existing.Body}
		if moodSet {
			in.Mood = editMood
		}
		if bodySet {
			in.Body = editBody
			if editBody == "-" {
				if in.Body, err = readStdin(cmd); err != nil {
					return err
				}
			}
		}

		if _, err := s.diary.Save(cmd.Context(), in); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Entry %s updated.\n", date)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editMood, "mood", "m", "", "New mood")
	editCmd.Flags().StringVarP(&editBody, "body", "b", "", "New body (- reads stdin)")
}
