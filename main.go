package main

import "github.com/rctools/cmd"

func main() {
	cmd.Execute()
}
