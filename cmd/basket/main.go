package main

import "github.com/mchmarny/basket/pkg/cli"

func main() {
	cli.Execute()
}
