package mal

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"

	"github.com/malgo-cli/malgo/key"
)

const keyringService = "malgo.myanimelist.net"

// Credentials is a MyAnimeList username and password pair.
// The password goes to the system keyring, never to the config file.
type Credentials struct {
	Username string
	Password string
}

// SaveCredentials stores the password in the keyring under the username.
func SaveCredentials(c Credentials) error {
	if c.Username == "" {
		return fmt.Errorf("save credentials: empty username")
	}

	if err := keyring.Set(keyringService, c.Username, c.Password); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	return nil
}

// LoadCredentials reads the configured username and its keyring password.
func LoadCredentials() (Credentials, error) {
	username := viper.GetString(key.MALUsername)
	if username == "" {
		return Credentials{}, fmt.Errorf("load credentials: no username configured, run the auth command first")
	}

	password, err := keyring.Get(keyringService, username)
	if err != nil {
		return Credentials{}, fmt.Errorf("load credentials for %q: %w", username, err)
	}

	return Credentials{Username: username, Password: password}, nil
}

// DeleteCredentials removes the keyring entry for the username.
func DeleteCredentials(username string) error {
	if err := keyring.Delete(keyringService, username); err != nil {
		return fmt.Errorf("delete credentials for %q: %w", username, err)
	}

	return nil
}
