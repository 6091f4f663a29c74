package main

import (
	"github.com/joho/godotenv"

	"github.com/iliyamo/frontdesk/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
