// Package main is the entrypoint for the turnstile CLI.
package main

import (
	"github.com/stadiumlab/turnstile/cmd"
	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/internal/snapshot"
)

func main() {
	err := cmd.Execute()

	snapshot.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
