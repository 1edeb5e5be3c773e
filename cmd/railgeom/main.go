// Command railgeom validates, samples and bounds railway design plans.
package main

import (
	"os"

	"honnef.co/go/railgeom/internal/cli"
)

func main() {
	cfg := cli.InitializeConfig()
	if err := cfg.Root.Execute(); err != nil {
		os.Exit(1)
	}
}
