// Package cmd implements the command-line interface for malgo.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/malgo-cli/malgo/constant"
	"github.com/malgo-cli/malgo/key"
	"github.com/malgo-cli/malgo/log"
	"github.com/malgo-cli/malgo/mal"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
}

// rootCmd defines the entry point for the malgo application.
var rootCmd = &cobra.Command{
	Use:   constant.Malgo,
	Short: "A command-line client for MyAnimeList lists, search and updates",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintln(os.Stderr, strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// newClient builds a catalog client, authenticated when credentials exist.
// The caller must Close it.
func newClient() *mal.Client {
	creds, err := mal.LoadCredentials()
	if err != nil {
		log.Warnf("running unauthenticated: %s", err)
	}

	client := mal.New(creds)
	client.CredentialsNeeded.Connect(func() {
		_, _ = fmt.Fprintf(os.Stderr, "credentials missing or rejected, run %s auth login\n", constant.Malgo)
	})

	return client
}
