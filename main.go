// Package main is the entry point for the torture CLI.
package main

import "torture.dev/pkg/torture/cmd"

func main() {
	cmd.Execute()
}
