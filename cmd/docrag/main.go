package main

import (
	"github.com/joho/godotenv"

	"github.com/traceleaf/docrag/internal/adapters/driving/cli"
)

func main() {
	// A missing .env file is fine, environment may be set directly.
	_ = godotenv.Load()

	cli.Execute()
}
