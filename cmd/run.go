package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/norn-lang/norn/pkg/value"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run norn code",
	Long:  `Run norn code supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		srcs, err := runReadSources(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		realm, err := newRealm()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i := range srcs {
			v, err := realm.EvalString(string(srcs[i]))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if runPrint && !v.IsEmpty() {
				fmt.Println(value.DisplayString(v))
			}
		}
	},
}

func runReadSources(args []string) ([][]byte, error) {
	srcs := make([][]byte, len(args))
	if runExpression {
		for i := range args {
			srcs[i] = []byte(args[i])
		}
		return srcs, nil
	}
	for i, path := range args {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, err
		}
		srcs[i] = b
	}
	return srcs, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as norn expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print statement values to stdout")
}
