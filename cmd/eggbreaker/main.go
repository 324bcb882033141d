package main

import "github.com/mcoot/eggbreaker/internal/cli"

func main() {
	cli.Execute()
}
