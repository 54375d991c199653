// Command docs-dataset builds a chunked dataset from repository documentation
// and publishes it to the Hugging Face hub.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/docs-dataset/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version string

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
