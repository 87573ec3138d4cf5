package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/norn-lang/norn/pkg/eval"
	"github.com/norn-lang/norn/repl"
	"github.com/spf13/cobra"
)

var (
	rootStrict   bool
	rootManifest string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "norn",
	Short: "An embeddable expression engine",
	Long: `Norn evaluates expressions against a global realm.  Without arguments it
starts an interactive prompt when stdin is a terminal and otherwise
evaluates a script read from stdin.`,
	Run: func(cmd *cobra.Command, args []string) {
		realm, err := newRealm()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			repl.Run(realm, "> ")
			return
		}
		src, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if _, err := realm.EvalString(string(src)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRealm builds a realm from the manifest and flags.  Flag options are
// applied after manifest options so the command line wins.
func newRealm(extra ...eval.Option) (*eval.Realm, error) {
	var opts []eval.Option
	if rootManifest != "" {
		f, err := os.Open(rootManifest)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		m, err := eval.LoadManifest(f)
		if err != nil {
			return nil, err
		}
		mopts, err := m.Options()
		if err != nil {
			return nil, err
		}
		opts = append(opts, mopts...)
	}
	if rootStrict {
		opts = append(opts, eval.WithStrict(true))
	}
	opts = append(opts, extra...)
	return eval.NewRealm(opts...), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootStrict, "strict", false,
		"Evaluate every program in strict mode")
	rootCmd.PersistentFlags().StringVar(&rootManifest, "manifest", "",
		"Seed the realm from a yaml manifest file")
}
