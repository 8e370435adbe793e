package main

import (
	"os"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/exitcode"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
