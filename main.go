package main

import "rcfind/internal/cli"

func main() {
	cli.Execute()
}
