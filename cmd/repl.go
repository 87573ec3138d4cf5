package cmd

import (
	"fmt"
	"os"

	"github.com/norn-lang/norn/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive prompt",
	Run: func(cmd *cobra.Command, args []string) {
		realm, err := newRealm()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		repl.Run(realm, "> ")
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
