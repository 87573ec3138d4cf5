/*
Package repl provides the interactive norn prompt.
*/
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/norn-lang/norn/pkg/eval"
	"github.com/norn-lang/norn/pkg/parser"
	"github.com/norn-lang/norn/pkg/value"
)

// Run reads statements from the terminal and evaluates them in realm until
// EOF.  Input with unclosed brackets is buffered and evaluated once it
// completes.
func Run(realm *eval.Realm, prompt string) {
	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err != nil && err != readline.ErrInterrupt {
			break
		}
		if err == readline.ErrInterrupt {
			line = nil
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) == 0 {
			continue
		}
		if parser.Incomplete(line) {
			buf = line
			rl.SetPrompt(contPrompt)
			continue
		}
		v, err := realm.EvalString(string(line))
		if err != nil {
			errln(realm.Stderr(), err)
			continue
		}
		if !v.IsEmpty() {
			fmt.Println(value.DisplayString(v))
		}
	}
	if err != io.EOF && err != readline.ErrInterrupt {
		errln(realm.Stderr(), err)
	}
}

func errln(w io.Writer, v ...interface{}) {
	fmt.Fprintln(w, v...)
}
