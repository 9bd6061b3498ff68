package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/compozy/autotag/cmd"
	"github.com/compozy/autotag/internal/orchestrator"
)

func main() {
	if err := cmd.InitCommands(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize commands: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		// Run failures were already reported through the logger.
		if !errors.Is(err, orchestrator.ErrRunFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
