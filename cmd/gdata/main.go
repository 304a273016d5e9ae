// Command gdata queries Google Data API feeds from the command line.
package main

import (
	"os"

	"github.com/custodia-labs/gdata-go/internal/adapters/driving/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
