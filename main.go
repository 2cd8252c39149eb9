package main

import (
	"os"

	"github.com/ghaggin/tourpal/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// a .env file is optional
	_ = godotenv.Load()

	if err := cli.RootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
