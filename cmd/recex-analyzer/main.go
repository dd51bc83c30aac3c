package main

import (
	"os"

	"github.com/RecursivePineapple/recex-analyzer/internal/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger := logging.NewLogger(logging.Config{
			Format: logging.HumanFormat,
			Level:  logging.InfoLevel,
		})
		logger.Error("analysis failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}
