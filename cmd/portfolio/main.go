// Command portfolio runs the portfolio API and its maintenance tasks.
//
// With no subcommand it serves HTTP. Configuration comes from the
// environment, optionally preloaded from a .env file.
//
// @title        Portfolio API
// @version      1.0
// @description  Guestbook, contact form and project catalog for the portfolio site.
// @BasePath     /api
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	if err := newCLIApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("portfolio failed")
	}
}
