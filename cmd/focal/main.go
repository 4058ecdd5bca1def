// Package main provides the entry point for the focal timer.
package main

import "github.com/ederavila/focal/internal/cli"

func main() {
	cli.Execute()
}
