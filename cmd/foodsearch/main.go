// Package main is the entry point for the foodsearch line-mode CLI
package main

import (
	"os"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	rootCmd, c := newRootCmd()
	err := rootCmd.Execute()
	c.close()
	if err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
