// querygen CLI - generates GraphQL operations and variables from a schema
package main

import (
	"os"

	"github.com/getmockd/querygen/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version, cli.Commit, cli.BuildDate = Version, Commit, BuildDate
	os.Exit(cli.Main())
}
