package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/malgo-cli/malgo/entry"
	"github.com/malgo-cli/malgo/mal"
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolP("manga", "m", false, "Update the manga list instead of the anime list")
	updateCmd.Flags().IntP("id", "i", 0, "Series id, skips title resolution")
	updateCmd.Flags().IntP("progress", "p", -1, "Episodes watched or chapters read")
	updateCmd.Flags().StringP("status", "s", "", "List status: current, completed, on hold, dropped, planned")
	updateCmd.Flags().Int("score", -1, "Score from 1 to 10, 0 clears it")
	updateCmd.Flags().StringSlice("tags", nil, "Replace the entry's tags")
	updateCmd.Flags().Bool("rewatching", false, "Mark the entry as being rewatched")
}

// updateCmd pushes new personal state for one list entry.
var updateCmd = &cobra.Command{
	Use:   "update [title]...",
	Short: "Update an entry on your list",
	Run: func(cmd *cobra.Command, args []string) {
		manga := lo.Must(cmd.Flags().GetBool("manga"))

		client := newClient()
		defer client.Close()

		it, err := resolveItem(cmd, client, args, manga)
		handleErr(err)

		applyFlags(cmd, &it)

		push := client.UpdateAnime
		if manga {
			push = client.UpdateManga
		}

		handleErr(push(it))
		cmd.Printf("updated %s (%d)\n", it.Title, it.SeriesID)
	},
}

// resolveItem locates the entry to change, either by explicit id in the
// user's list or by fuzzy title match against the catalog.
func resolveItem(cmd *cobra.Command, client *mal.Client, args []string, manga bool) (entry.Item, error) {
	kind := entry.Anime
	fetch := client.AnimeList
	if manga {
		kind = entry.Manga
		fetch = client.MangaList
	}

	id := lo.Must(cmd.Flags().GetInt("id"))

	if id != 0 {
		items, err := fetch("")
		if err != nil {
			return entry.Item{}, err
		}

		it, ok := lo.Find(items, func(it entry.Item) bool {
			return it.SeriesID == id
		})
		if !ok {
			return entry.Item{}, fmt.Errorf("no %s with id %d on your list", kind, id)
		}

		return it, nil
	}

	if len(args) == 0 {
		return entry.Item{}, fmt.Errorf("a title or --id is required")
	}

	title := strings.Join(args, " ")

	find := client.FindClosestAnime
	if manga {
		find = client.FindClosestManga
	}

	it, err := find(title)
	if err != nil {
		return entry.Item{}, err
	}

	// Prefer the list copy so untouched personal state survives the push.
	if items, err := fetch(""); err == nil {
		if mine, ok := lo.Find(items, func(candidate entry.Item) bool {
			return candidate.SeriesID == it.SeriesID
		}); ok {
			return mine, nil
		}
	}

	return it, nil
}

func applyFlags(cmd *cobra.Command, it *entry.Item) {
	if progress := lo.Must(cmd.Flags().GetInt("progress")); progress >= 0 {
		it.Progress = progress
	}

	if status := lo.Must(cmd.Flags().GetString("status")); status != "" {
		code, err := parseStatus(status)
		handleErr(err)
		it.MyStatus = code
	}

	if score := lo.Must(cmd.Flags().GetInt("score")); score >= 0 {
		it.Score = score
	}

	if cmd.Flags().Changed("tags") {
		it.Tags = lo.Must(cmd.Flags().GetStringSlice("tags"))
	}

	if cmd.Flags().Changed("rewatching") {
		it.Reconsuming = lo.Must(cmd.Flags().GetBool("rewatching"))
	}
}

func parseStatus(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if code, err := strconv.Atoi(s); err == nil {
		if _, ok := statusNames[code]; ok {
			return code, nil
		}
		return 0, fmt.Errorf("unknown status code %d", code)
	}

	for code, name := range statusNames {
		if name == s {
			return code, nil
		}
	}

	return 0, fmt.Errorf("unknown status %q, options: %s", s, strings.Join(lo.Values(statusNames), ", "))
}
