package main

import "github.com/heliowatt/opsportal/cmd"

func main() {
	cmd.Execute()
}
