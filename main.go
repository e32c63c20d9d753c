// Package main is the entry point for the remap CLI.
package main

import "remap.dev/pkg/remap/cmd"

func main() {
	cmd.Execute()
}
