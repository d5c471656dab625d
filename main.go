package main

import "github.com/yukesshwaran21/My-Portfolio/cmd"

func main() {
	cmd.Execute()
}
