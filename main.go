//go:build !(js && wasm)

package main

import (
	"os"

	"github.com/golemcloud/rib/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "rib [subcommand]",
	Short:        "rib type inference toolbox\n inspect how facts about Rib expressions unify",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.UnifyCmd)
	rootCmd.AddCommand(cmd.CheckCmd)
}
