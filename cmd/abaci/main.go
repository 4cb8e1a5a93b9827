// Command abaci is the CLI entry point (spec §6 "External interfaces").
package main

import (
	"fmt"
	"os"

	"github.com/abacilang/abaci/cmd/abaci/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
