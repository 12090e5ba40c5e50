// Package main is the entry point for the widgethost tray application.
package main

import (
	"os"

	"github.com/watchfire-io/widgethost/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
