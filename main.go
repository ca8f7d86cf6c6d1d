package main

import "nemoris-api/cmd"

func main() {
	cmd.Execute()
}
