package main

import "github.com/unprompted/unprompted/cmd"

func main() {
	cmd.Execute()
}
