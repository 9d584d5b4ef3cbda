package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/conduit-lang/sugar/internal/cli/commands"
)

func main() {
	// SUGAR_* overrides may come from a local .env file
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
