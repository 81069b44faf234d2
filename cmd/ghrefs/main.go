package main

import "github.com/cbout22/ghrefs/internal/cli"

func main() {
	cli.Execute()
}
