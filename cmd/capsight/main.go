// main holds the entry logic for the capsight CLI.
package main

import (
	"fmt"
	"os"

	"github.com/capsight/capsight/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
