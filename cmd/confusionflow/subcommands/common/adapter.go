package common

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	xe "github.com/opst/confusionflow/pkg/errors"
	kos "github.com/opst/confusionflow/pkg/utils/os"
	"github.com/rs/zerolog"
	"github.com/youta-t/flarc"
)

// ENV_LOGDIR names the directory of logs when --logdir is not given.
const ENV_LOGDIR = "CONFUSIONFLOW_LOGDIR"

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask adapts Task into flarc.Task, giving a logger prefixed with the command name.
func NewTask[T any](task Task[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], params []any) error {
		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))
		return task(ctx, logger, cl, params)
	}
}

// ResolveLogdir chooses the directory of logs.
//
// The first non-empty one of flag, configured and $CONFUSIONFLOW_LOGDIR is taken.
// When all of them are empty, it fails with ErrInvalidLogDir.
func ResolveLogdir(flag string, configured string) (string, error) {
	for _, d := range []string{flag, configured} {
		if d != "" {
			return d, nil
		}
	}
	if d, ok := kos.LookupEnv(ENV_LOGDIR); ok {
		return d, nil
	}
	return "", xe.Wrapf(
		xe.ErrInvalidLogDir,
		"please specify folder with the logs via --logdir or `export %s=<path to logdir>`", ENV_LOGDIR,
	)
}

// EventLogger is a logger for events of log store operations.
//
// Events are written in human readable form when verbose. Otherwise, only warnings and errors are.
func EventLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}
