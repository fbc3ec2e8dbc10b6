// Package main is the entry point of the studentbase command.
//
// Configuration comes from environment variables and an optional YAML file
// (--config); see the config package for the recognised keys.
package main

import "github.com/alem-hub/studentbase/internal/interface/cli"

func main() {
	cli.Execute()
}
