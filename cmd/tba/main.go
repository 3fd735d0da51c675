// Command tba queries The Blue Alliance from the command line.
package main

import "github.com/frc1418/go-tba/internal/cli"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.Execute(version)
}
