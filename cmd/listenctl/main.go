// Command listenctl runs test execution listeners outside the engine.
//
// Usage:
//
//	listenctl replay EVENTS [--golden FILE] [-c CONFIG]
//	listenctl check -c CONFIG
//	listenctl shell [--trace] [-c CONFIG]
package main

import (
	"fmt"
	"os"

	"github.com/rickchristie/listen/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
