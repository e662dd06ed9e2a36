package main

import "github.com/UtpalJayNadiger/tf-dialect/internal/cli"

func main() {
	cli.Execute()
}
