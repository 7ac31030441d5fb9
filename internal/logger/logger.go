// internal/logger/logger.go
package logger

import (
    "os"
    "time"

    "github.com/rs/zerolog"
)

// New builds the service-wide structured logger.
func New(service string) zerolog.Logger {
    zerolog.TimeFieldFormat = time.RFC3339
    return zerolog.New(os.Stdout).With().
        Timestamp().
        Str("service", service).
        Logger()
}
