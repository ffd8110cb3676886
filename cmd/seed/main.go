package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/cardwise-app/cardwise-backend/internal/cli"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/config"
)

func main() {
	_ = godotenv.Load()

	flags := cli.ParseSeedFlags()
	cfg := config.LoadOrEnv()

	if err := cli.RunSeed(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
