package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/journal"
	"github.com/ramanasai/diary/internal/utils"
)

// listOptions are the filter and output flags shared by list and search.
type listOptions struct {
	since   string
	until   string
	preset  string
	limit   int
	page    int
	format  string
	noColor bool
	reverse bool
}

var (
	listOpts   listOptions
	searchOpts listOptions
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List entries",
	Long: `Examples:
	diary list                                  # everything, oldest first
	diary list --reverse --limit 10             # ten most recent
	diary list --since "2 weeks ago"
	diary list --preset month --format table
	diary list --since 2025-01-01 --until 2025-01-31 --format csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer s.Close()

		since, until, err := listOpts.dateRange(s.loc())
		if err != nil {
			return err
		}
		entries := s.diary.Store().Range(since, until)
		return listOpts.render(cmd, entries, "", since, until)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find entries whose mood or body contains the query",
	Long: `Examples:
	diary search river
	diary search "long walk" --since 2025-01-01
	diary search tired --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		s, err := openSession(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer s.Close()

		since, until, err := searchOpts.dateRange(s.loc())
		if err != nil {
			return err
		}
		var entries []journal.Entry
		for _, e := range s.diary.Store().Search(query) {
			if inRange(e.Date, since, until) {
				entries = append(entries, e)
			}
		}
		return searchOpts.render(cmd, entries, query, since, until)
	},
}

// dateRange resolves --preset or --since/--until to inclusive entry keys.
// Empty bounds are open.
func (o listOptions) dateRange(loc *time.Location) (since, until string, err error) {
	if o.preset != "" {
		since, until, err = utils.GetDateRange(o.preset, loc)
		if err != nil {
			return "", "", fmt.Errorf("invalid preset %q: %w", o.preset, err)
		}
		return since, until, nil
	}
	if o.since != "" {
		if since, err = utils.ParseDateKey(o.since, loc); err != nil {
			return "", "", fmt.Errorf("invalid --since date %q: %w", o.since, err)
		}
	}
	if o.until != "" {
		if until, err = utils.ParseDateKey(o.until, loc); err != nil {
			return "", "", fmt.Errorf("invalid --until date %q: %w", o.until, err)
		}
	}
	return since, until, nil
}

func inRange(date, since, until string) bool {
	return (since == "" || date >= since) && (until == "" || date <= until)
}

func (o listOptions) render(cmd *cobra.Command, entries []journal.Entry, query, since, until string) error {
	rc := utils.DefaultRenderConfig()
	rc.Color = !o.noColor
	f, err := utils.ParseOutputFormat(o.format)
	if err != nil {
		return err
	}
	rc.Format = f

	if o.reverse {
		entries = slices.Clone(entries)
		slices.Reverse(entries)
	}

	p := utils.NewPagination(len(entries), o.limit, o.page)
	start, end := p.Bounds()

	filters := map[string]string{}
	if since != "" {
		filters["since"] = since
	}
	if until != "" {
		filters["until"] = until
	}

	list := &utils.EntryList{
		Entries:    entries[start:end],
		Total:      p.Total,
		Page:       p.Current,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages,
		Query:      query,
		Filters:    filters,
	}
	if list.Entries == nil {
		list.Entries = []journal.Entry{}
	}

	out, err := utils.NewRenderer(rc).RenderEntryList(list)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func bindListFlags(cmd *cobra.Command, o *listOptions) {
	cmd.Flags().StringVarP(&o.since, "since", "s", "", "Earliest date: YYYY-MM-DD, yesterday, \"2 weeks ago\", monday")
	cmd.Flags().StringVarP(&o.until, "until", "u", "", "Latest date, same forms as --since")
	cmd.Flags().StringVar(&o.preset, "preset", "", "Date range: today|yesterday|week|month|year|last7days|last30days|last90days")
	cmd.Flags().IntVarP(&o.limit, "limit", "l", 50, "Entries per page (0 = all)")
	cmd.Flags().IntVarP(&o.page, "page", "p", 1, "Page number")
	cmd.Flags().StringVar(&o.format, "format", "default", "Output format: default|table|json|yaml|csv|compact|quiet")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&o.reverse, "reverse", "r", false, "Newest first")
}

func init() {
	bindListFlags(listCmd, &listOpts)
	bindListFlags(searchCmd, &searchOpts)
}
