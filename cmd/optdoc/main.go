package main

import "github.com/optdoc/optdoc/internal/cli"

func main() {
	cli.Execute()
}
