package main

import (
	"os"

	"digital.vasic.gauntlet/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
