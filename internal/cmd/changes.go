package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "List provider-side changes since a point in time",
	Long: `Query the provider's change feed and list changed movies. With a
library database configured, only movies present in the library are
shown, and --refresh re-fetches and stores their updated records.`,
	RunE: runChangesCommand,
}

var (
	changesSince   time.Duration
	changesRefresh bool
)

func init() {
	changesCmd.Flags().DurationVar(&changesSince, "since", 24*time.Hour, "How far back to look for changes")
	changesCmd.Flags().BoolVar(&changesRefresh, "refresh", false, "Re-fetch and store changed library movies")
	rootCmd.AddCommand(changesCmd)
}

func runChangesCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client := newClient()
	defer client.SaveCache()

	st, err := openStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	changed, err := client.GetChangedSince(ctx, time.Now().Add(-changesSince))
	if err != nil {
		return err
	}

	if st == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%d movies changed\n", len(changed))
		return nil
	}

	library, err := st.All(ctx)
	if err != nil {
		return err
	}

	mapper := newMapper()
	var hits int
	for _, m := range library {
		if _, ok := changed[m.TmdbID]; !ok {
			continue
		}
		hits++
		fmt.Fprintf(cmd.OutOrStdout(), "%7d  %s\n", m.TmdbID, m.Title)

		if !changesRefresh {
			continue
		}
		res, err := client.GetMovie(ctx, m.TmdbID)
		if err != nil {
			slog.Warn("could not refresh movie", "tmdb_id", m.TmdbID, "error", err)
			continue
		}
		updated := mapper.Movie(res)
		updated.Path = m.Path
		if err := st.Upsert(ctx, &updated); err != nil {
			slog.Warn("could not store refreshed movie", "tmdb_id", m.TmdbID, "error", err)
		}
	}

	if hits == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no library movies changed")
	}
	return nil
}
