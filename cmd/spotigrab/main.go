package main

import "spotigrab/cmd/spotigrab/commands"

func main() {
	commands.Execute()
}
