package main

import "github.com/branchpick/branchpick/cmd"

func main() {
	cmd.Execute()
}
