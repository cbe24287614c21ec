package main

import (
	"github.com/jjtimmons/seqsign/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
