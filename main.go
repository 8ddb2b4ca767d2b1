package main

import "github.com/kamusis/skilldex/cmd"

func main() {
	cmd.Execute()
}
