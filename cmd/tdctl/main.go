package main

import "github.com/mcoot/truthdare-go/internal/cli"

func main() {
	cli.Execute()
}
