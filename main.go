package main

import "github.com/dsh2dsh/periods/cmd"

var version = "dev"

func main() {
	cmd.Execute(version)
}
