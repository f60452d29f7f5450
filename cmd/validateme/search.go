package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <keywords...>",
	Short: "Search the configured subreddits and print ranked results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if channels, _ := cmd.Flags().GetStringSlice("channels"); len(channels) > 0 {
			cfg.Channels = channels
		}

		keywords := strings.Join(args, " ")
		outcome := newSearchService().SearchReport(cmd.Context(), keywords)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(outcome)
		}

		fmt.Printf("Found %d posts for %q\n\n", len(outcome.Results), keywords)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SCORE\tCOMMENTS\tDATE\tCHANNEL\tAUTHOR\tTITLE")
		for _, r := range outcome.Results {
			fmt.Fprintf(w, "%d\t%d\t%s\tr/%s\tu/%s\t%s\n",
				r.EngagementScore, r.ReplyCount, r.CreatedDate, r.Channel, r.AuthorHandle, r.Title)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		for _, failure := range outcome.Failures {
			fmt.Fprintf(os.Stderr, "r/%s skipped: %s\n", failure.Channel, failure.Reason)
		}
		if outcome.TotalOutage() {
			return fmt.Errorf("all %d channels failed", outcome.ChannelsAttempted)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().StringSlice("channels", nil, "override the channel list (comma-separated)")
	searchCmd.Flags().SortFlags = false

	rootCmd.AddCommand(searchCmd)
}
