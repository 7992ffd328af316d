package main

import "github.com/stevehiehn/drt/cmd"

func main() {
	cmd.Execute()
}
