package main

import (
	"os"

	"github.com/mchmarny/navd/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
