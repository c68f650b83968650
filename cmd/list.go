package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/malgo-cli/malgo/entry"
	"github.com/malgo-cli/malgo/key"
	"github.com/malgo-cli/malgo/util"
)

// statusNames maps the service's numeric list states to readable labels.
var statusNames = map[int]string{
	1: "current",
	2: "completed",
	3: "on hold",
	4: "dropped",
	6: "planned",
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("user", "u", "", "List owner, defaults to the configured account")
	listCmd.Flags().BoolP("manga", "m", false, "Fetch the manga list instead of the anime list")
	listCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

// listCmd fetches and prints a user's list, newest season first.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch a user's anime or manga list",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			user   = lo.Must(cmd.Flags().GetString("user"))
			manga  = lo.Must(cmd.Flags().GetBool("manga"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		if user == "" {
			user = viper.GetString(key.MALUsername)
		}

		client := newClient()
		defer client.Close()

		fetch := client.AnimeList
		if manga {
			fetch = client.MangaList
		}

		items, err := fetch(user)
		handleErr(err)

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(items))
			return
		}

		printItems(cmd, items, manga)
	},
}

func printItems(cmd *cobra.Command, items []entry.Item, manga bool) {
	for _, it := range items {
		total := it.SeriesEpisodes
		unit := "ep"
		if manga {
			total = it.SeriesChapters
			unit = "ch"
		}

		status := statusNames[it.MyStatus]
		if status == "" {
			status = fmt.Sprintf("status %d", it.MyStatus)
		}

		cmd.Printf("%7d  %-50s %4d/%-4d %s  %s\n",
			it.SeriesID,
			util.Truncate(it.Title, 50),
			it.Progress,
			total,
			unit,
			status,
		)
	}

	cmd.Printf("\n%s\n", util.Quantify(len(items), "entry", "entries"))
}
