// Package main is the analyzer CLI.
//
// Usage:
//
//	go run ./cmd/analyzer analyze --ticker SHOP.TO --ticker RY.TO
//	go run ./cmd/analyzer serve
//	go run ./cmd/analyzer import --dir data
package main

import (
	"os"

	"github.com/mohamedkhairy/equity-signals/cmd/analyzer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
