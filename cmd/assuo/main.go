package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("assuo failed")
		os.Exit(1)
	}
}
