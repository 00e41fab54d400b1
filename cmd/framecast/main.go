package main

import "github.com/framecast/framecast/internal/cli"

func main() {
	cli.Execute()
}
