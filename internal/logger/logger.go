package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

var Logger zerolog.Logger

func Init() {
	InitWithWriter(os.Stdout)
}

func InitWithWriter(w io.Writer) {
	// ---- level ----
	level, err := zerolog.ParseLevel(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	// ---- format ----
	format := strings.TrimSpace(os.Getenv("LOG_FORMAT")) // "json" or "console"
	if format == "" {
		format = "console"
	}

	timeFormat := strings.TrimSpace(os.Getenv("LOG_TIME_FORMAT"))
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	// ---- base ----
	var base zerolog.Logger
	if format == "json" {
		base = zerolog.New(w)
	} else {
		cw := zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: timeFormat,
		}
		if strings.TrimSpace(os.Getenv("LOG_COLOR")) == "0" {
			cw.NoColor = true
		}
		base = zerolog.New(cw)
	}

	// ---- enrich ----
	l := base.With().
		Timestamp().
		Str("service", "volunteer-service").
		Logger().
		Level(level)

	if strings.TrimSpace(os.Getenv("LOG_CALLER")) == "1" {
		l = l.With().Caller().Logger()
	}

	Logger = l
	zlog.Logger = Logger
}
