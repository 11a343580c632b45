package main

import "github.com/rdarder/modular/internal/cli"

func main() {
	cli.Execute()
}
