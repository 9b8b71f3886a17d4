// This program provides a command line client for the votes service.
package main

import "github.com/ardanlabs/voteledger/app/tooling/votes/cmd"

func main() {
	cmd.Execute()
}
