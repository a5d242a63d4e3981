package logger

import (
	"io"
	"naturekids/config"
	"naturekids/shared/constant"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// InitLogger installs the global zerolog logger at trace level. SetLogLevel
// narrows it once the configured level is known.
func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = New(os.Stdout, cfg)
	log.Trace().Msg("Zerolog initialized.")
}

// New writes human-readable lines in development and JSON tagged with the
// service name anywhere else.
func New(out io.Writer, cfg *config.Config) zerolog.Logger {
	switch cfg.Server.Env {
	case constant.ServerEnvDevelopment, constant.Empty:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}

		return zerolog.New(out).With().Timestamp().Logger()
	default:
		return zerolog.New(out).With().Timestamp().Str("service", cfg.App.Name).Logger()
	}
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Stack().Err(errors.WithStack(err)).Msg("unexpected error")
}

func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.TraceLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Trace().Str("loglevel", level.String()).Str("configured", cfg.Server.LogLevel).Msg("Log level set.")
}
