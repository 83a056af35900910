package main

import (
	"fmt"
	"os"

	"github.com/danli429/team-scheduling-system/internal/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
