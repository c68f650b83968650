package cmd

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/malgo-cli/malgo/query"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("manga", "m", false, "Search the manga catalog instead of the anime catalog")
	searchCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

// searchCmd queries the catalog and prints the matches.
var searchCmd = &cobra.Command{
	Use:   "search <terms>...",
	Short: "Search the anime or manga catalog",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			manga  = lo.Must(cmd.Flags().GetBool("manga"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			terms  = strings.Join(args, " ")
		)

		_ = query.Remember(terms, 1)

		client := newClient()
		defer client.Close()

		search := client.SearchAnime
		if manga {
			search = client.SearchManga
		}

		items, err := search(terms)
		handleErr(err)

		if len(items) == 0 {
			if suggestion, ok := query.Suggest(terms).Get(); ok && suggestion != strings.ToLower(terms) {
				cmd.Printf("no results, did you mean %q?\n", suggestion)
				return
			}

			cmd.Println("no results")
			return
		}

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(items))
			return
		}

		for _, it := range items {
			season := it.SeriesBegin
			if len(season) >= 7 {
				season = season[:7]
			}

			cmd.Printf("%7d  %-50s %s  %s\n", it.SeriesID, it.Title, season, it.SeriesStatus)
		}
	},
}
