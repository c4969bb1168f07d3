package main

import "github.com/Conceptual-Machines/fretlab-api/cmd"

func main() {
	cmd.Execute()
}
