// main is the entry point for the trekrank CLI.
package main

import (
	"github.com/huangsam/trekrank/cmd"
	"github.com/huangsam/trekrank/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("command failed", err)
	}
}
