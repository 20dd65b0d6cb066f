package main

import "github.com/cema-health/program-manager/internal/cli"

func main() {
	cli.Execute()
}
