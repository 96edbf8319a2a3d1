package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

// ============================================================================
// CLAIMLENS CLI — Chart and table specs for claim-risk datasets
// ============================================================================

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
