package main

import (
	"os"

	"github.com/gersh-io/gersh/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
