// Package main provides the entry point for the blox-fumen command.
package main

import (
	"log"
	"os"

	"blox-fumen/internal/cli"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	os.Exit(cli.Execute(cli.NewRootCommand()))
}
