package main

import "github.com/will-rowe/gani/cmd"

func main() {
	cmd.Execute()
}
