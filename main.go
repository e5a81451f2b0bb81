package main

import "github.com/chriserin/gospec/cmd"

func main() {
	cmd.Execute()
}
