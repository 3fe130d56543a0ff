// Command zenecs is the demo host for the ecs package: a small cobra CLI,
// grounded on the surrounding pack's own command-tree style, with a `run`
// subcommand that drives the kernel's fixed-step loop on top of ebiten and
// an `inspect` subcommand that describes a saved snapshot file. It
// supersedes an earlier cmd/game/main.go that just constructed a bare
// core.Game and called Run.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zenecs",
		Short: "Demo host and tooling for the zenecs entity-component-system core",
	}
	root.PersistentFlags().String("config", "", "path to a TOML config file (optional)")
	root.AddCommand(runCmd())
	root.AddCommand(inspectCmd())
	return root
}
