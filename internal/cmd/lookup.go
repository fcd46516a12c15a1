package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <query>",
	Short: "Resolve a movie query against the metadata provider",
	Long: `Resolve a free-form query to movies. The query may be a plain title
("heat 1995"), a noisy release name, or an explicit id using the
imdb:/imdbid: or tmdb:/tmdbid: prefixes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookupCommand,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookupCommand(cmd *cobra.Command, args []string) error {
	client := newClient()
	defer client.SaveCache()

	st, err := openStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	resolver := newResolver(st, client)
	movies, err := resolver.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if len(movies) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no matches")
		return nil
	}

	for _, m := range movies {
		year := ""
		if m.Year > 0 {
			year = fmt.Sprintf(" (%d)", m.Year)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%7d  %s%s\n", m.TmdbID, m.Title, year)
	}
	return nil
}
