package main

import "rcjobs/cmd/rcjobs-cli/cmd"

func main() {
	cmd.Execute()
}
