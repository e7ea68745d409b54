package infra

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigurarLogger sets the global zerolog output and level. Development
// gets the pretty console writer; anything else logs JSON to stderr.
func ConfigurarLogger(env, nivel string) {
	level, err := zerolog.ParseLevel(nivel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
