package cmd

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/malgo-cli/malgo/key"
	"github.com/malgo-cli/malgo/mal"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}

// authCmd manages the stored MyAnimeList account credentials.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage MyAnimeList account credentials",
}

// authLoginCmd prompts for credentials and stores them. The username goes to
// the config file, the password to the system keyring.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store MyAnimeList credentials",
	Run: func(cmd *cobra.Command, args []string) {
		var creds mal.Credentials

		handleErr(survey.AskOne(&survey.Input{
			Message: "MyAnimeList username:",
			Default: viper.GetString(key.MALUsername),
		}, &creds.Username, survey.WithValidator(survey.Required)))

		handleErr(survey.AskOne(&survey.Password{
			Message: "MyAnimeList password:",
		}, &creds.Password, survey.WithValidator(survey.Required)))

		handleErr(mal.SaveCredentials(creds))

		viper.Set(key.MALUsername, creds.Username)
		switch err := viper.WriteConfig(); err.(type) {
		case viper.ConfigFileNotFoundError:
			handleErr(viper.SafeWriteConfig())
		default:
			handleErr(err)
		}

		cmd.Printf("stored credentials for %s\n", creds.Username)
	},
}

// authLogoutCmd removes the keyring entry for the configured account.
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored MyAnimeList credentials",
	Run: func(cmd *cobra.Command, args []string) {
		username := viper.GetString(key.MALUsername)
		if username == "" {
			handleErr(errors.New("no account configured"))
		}

		handleErr(mal.DeleteCredentials(username))
		cmd.Printf("removed credentials for %s\n", username)
	},
}

// authStatusCmd reports whether usable credentials are stored.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured MyAnimeList account",
	Run: func(cmd *cobra.Command, args []string) {
		creds, err := mal.LoadCredentials()
		if err != nil {
			cmd.Println("not logged in")
			return
		}

		cmd.Printf("logged in as %s\n", creds.Username)
	},
}
