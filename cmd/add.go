package cmd

import (
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/malgo-cli/malgo/entry"
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().BoolP("manga", "m", false, "Add to the manga list instead of the anime list")
	addCmd.Flags().IntP("id", "i", 0, "Series id, skips title resolution")
	addCmd.Flags().StringP("status", "s", "planned", "Initial list status")
	addCmd.Flags().IntP("progress", "p", 0, "Initial episodes watched or chapters read")
}

// addCmd puts a new series on the user's list.
var addCmd = &cobra.Command{
	Use:   "add [title]...",
	Short: "Add a series to your list",
	Run: func(cmd *cobra.Command, args []string) {
		manga := lo.Must(cmd.Flags().GetBool("manga"))

		client := newClient()
		defer client.Close()

		kind := entry.Anime
		find := client.FindClosestAnime
		push := client.AddAnime
		if manga {
			kind = entry.Manga
			find = client.FindClosestManga
			push = client.AddManga
		}

		var it entry.Item

		if id := lo.Must(cmd.Flags().GetInt("id")); id != 0 {
			it = entry.Item{Kind: kind, SeriesID: id}
		} else {
			if len(args) == 0 {
				handleErr(cmd.Help())
				return
			}

			found, err := find(strings.Join(args, " "))
			handleErr(err)
			it = found
		}

		status, err := parseStatus(lo.Must(cmd.Flags().GetString("status")))
		handleErr(err)

		it.MyStatus = status
		it.Progress = lo.Must(cmd.Flags().GetInt("progress"))

		handleErr(push(it))
		cmd.Printf("added %s (%d)\n", it.Title, it.SeriesID)
	},
}
