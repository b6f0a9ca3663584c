package main

import "github.com/itohio/quadled/cmd/relayctl/cmd"

func main() {
	cmd.Execute()
}
