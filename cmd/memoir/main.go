// Package main is the single-binary entrypoint for Memoir: the CLI and
// the daemon behind the web dashboard.
package main

import "github.com/memoir-app/memoir/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
