// Command ninox is a command line client for the Ninox REST API.
package main

import (
	"os"

	"github.com/ninoxdb/ninox-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
