// Package main is the learnfeed command line entry point.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/tesso57/learnfeed/internal/infrastructure/config"
)

// CLI is the command line surface.
type CLI struct {
	Config string `help:"Config file path" type:"path" short:"c"`

	Read   ReadCmd   `cmd:"" default:"1" help:"Open the learning feed"`
	Seed   SeedCmd   `cmd:"" help:"Ask the backend to seed its content catalog"`
	Whoami WhoamiCmd `cmd:"" help:"Print the local user id"`
}

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		log.Printf("config: %v", err)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("learnfeed"),
		kong.Description("A terminal client for a personalized learning feed."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
