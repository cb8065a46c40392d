// Command sortplay records sorting algorithms as access logs and plays them back.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sortplay/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
