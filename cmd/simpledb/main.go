package main

import "go.simpledb/internal/cli"

func main() {
	cli.Execute()
}
