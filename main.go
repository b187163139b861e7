package main

import "github.com/pdxmods/modloc/cmd"

func main() {
	cmd.Execute()
}
