package cmd

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/malgo-cli/malgo/filesystem"
)

func init() {
	rootCmd.AddCommand(imageCmd)

	imageCmd.Flags().BoolP("manga", "m", false, "Fetch a manga cover instead of an anime cover")
	imageCmd.Flags().StringP("output", "o", "", "Write the image to this path instead of the working directory")
}

// imageCmd downloads a series cover image.
var imageCmd = &cobra.Command{
	Use:   "image <title>...",
	Short: "Download the cover image for a series",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			manga  = lo.Must(cmd.Flags().GetBool("manga"))
			output = lo.Must(cmd.Flags().GetString("output"))
		)

		client := newClient()
		defer client.Close()

		find := client.FindClosestAnime
		fetch := client.AnimeImage
		if manga {
			find = client.FindClosestManga
			fetch = client.MangaImage
		}

		it, err := find(strings.Join(args, " "))
		handleErr(err)

		data, err := fetch(it)
		handleErr(err)

		if output == "" {
			ext := filepath.Ext(it.ImageURL)
			if ext == "" {
				ext = ".jpg"
			}

			output = strconv.Itoa(it.SeriesID) + ext
		}

		handleErr(afero.WriteFile(filesystem.API(), output, data, 0o644))
		cmd.Printf("wrote %s cover to %s\n", it.Title, output)
	},
}
