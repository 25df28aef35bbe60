package logger

import (
	"io"
	"os"
	"time"

	"folio/config"
	"folio/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger writes JSON lines in production and a colored console everywhere else.
func InitLogger(cfg *config.Config) {
	InitLoggerTo(os.Stdout, cfg)
}

func InitLoggerTo(out io.Writer, cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Server.Env != constant.ServerEnvProduction {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("app", cfg.App.Name).Logger()
}

// SetLogLevel applies SERVER_LOG_LEVEL. Unset means info; an unknown name means trace so a
// typo never hides logs.
func SetLogLevel(cfg *config.Config) {
	if cfg.Server.LogLevel == "" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)

		return
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.Server.LogLevel).Msg("unknown log level, logging everything")

		level = zerolog.TraceLevel
	}

	zerolog.SetGlobalLevel(level)
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
