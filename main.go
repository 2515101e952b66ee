// main is the entry point for the debtengine CLI.
package main

import (
	"github.com/debtengine/debtengine/cmd"
	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/internal/store"
)

func main() {
	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}

	// Close before LogFatal, which exits the process.
	store.CloseStores()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
