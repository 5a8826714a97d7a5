package main

import "github.com/prestafix/fixturedump/cmd"

func main() {
	cmd.Execute()
}
