package main

import "github.com/gaurav-prasanna/pygmalion/cmd"

func main() {
	cmd.Execute()
}
