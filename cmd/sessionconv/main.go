// Copyright (c) 2025 @AmarnathCJD

package main

import (
	"os"

	"github.com/amarnathcjd/sessionconv/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.StdStreams(), os.Args[1:]))
}
