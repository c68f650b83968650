// Package main is the entry point for the malgo application.
package main

import (
	"github.com/samber/lo"

	"github.com/malgo-cli/malgo/cmd"
	"github.com/malgo-cli/malgo/config"
	"github.com/malgo-cli/malgo/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
