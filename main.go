package main

import "github.com/kozaktomas/print-layout/cmd"

func main() {
	cmd.Execute()
}
