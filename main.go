package main

import "github.com/norn-lang/norn/cmd"

func main() {
	cmd.Execute()
}
