package main

import "github.com/rustyeddy/tradebook/internal/cli"

func main() {
	cli.Execute()
}
