package main

import "github.com/mcoot/cardgame-go/internal/cli"

func main() {
	cli.Execute()
}
