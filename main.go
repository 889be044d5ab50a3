package main

import "github.com/agentic-research/grimoire/cmd"

func main() {
	cmd.Execute()
}
