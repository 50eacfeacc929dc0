package observability

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceLogger returns the global logger tagged with the service name.
func ServiceLogger(app string) zerolog.Logger {
	return log.Logger.With().Str("app", app).Logger()
}
