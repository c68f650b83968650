package version

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/malgo-cli/malgo/constant"
	"github.com/malgo-cli/malgo/key"
)

// Notify prints a short notice when a newer release is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	latest, err := Latest()
	if err != nil {
		return
	}

	comp, err := Compare(latest, constant.Version)
	if err != nil || comp <= 0 {
		return
	}

	fmt.Printf("\nNew version available: %s (you're on %s)\nhttps://github.com/malgo-cli/malgo/releases/tag/v%s\n\n",
		latest, constant.Version, latest)
}
