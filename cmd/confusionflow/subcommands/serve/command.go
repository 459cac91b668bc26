package serve

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"

	"github.com/opst/confusionflow/cmd/confusionflow/subcommands/common"
	"github.com/opst/confusionflow/pkg/api"
	kcs "github.com/opst/confusionflow/pkg/configs/server"
	"github.com/opst/confusionflow/pkg/utils/filewatch"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Config   string `flag:"config" alias:"c" metavar:"path/to/config.yaml" help:"Server config file. When it is modified, the server stops to be restarted."`
	Logdir   string `flag:"logdir" metavar:"path/to/logdir" help:"Directory of logs. (default: logdir in --config, or $CONFUSIONFLOW_LOGDIR)"`
	Host     string `flag:"host" help:"Host to listen on. (default: host in --config, or localhost)"`
	Port     int    `flag:"port" alias:"p" help:"Port to listen on. (default: port in --config, or 8080)"`
	Static   string `flag:"static" metavar:"path/to/ui" help:"Directory of the web UI, served at /. (default: static in --config)"`
	LogLevel string `flag:"loglevel" metavar:"debug|info|warn|error|off" help:"Log level of the server. (default: loglevel in --config, or info)"`
	Strict   bool   `flag:"strict" help:"Answer missing resources with status 404. Otherwise, 200 with a message."`
}

// StartFunc starts the API service. See api.Start.
type StartFunc func(ctx context.Context, starter api.Starter, conf api.Config, opts ...api.Option) api.Server

// Settings are resolved from flags and the config file.
type Settings struct {
	Logdir   string
	Host     string
	Port     int
	LogLevel string
	Static   string
	Strict   bool
}

func (s Settings) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Resolve merges flags into the config file (or defaults). Flags have priority.
func Resolve(flags Flag) (Settings, error) {
	conf := kcs.Default()
	if flags.Config != "" {
		c, err := kcs.LoadServerConfig(flags.Config)
		if err != nil {
			return Settings{}, err
		}
		conf = c
	}

	logdir, err := common.ResolveLogdir(flags.Logdir, conf.Logdir)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{
		Logdir:   logdir,
		Host:     conf.Host,
		Port:     conf.Port,
		LogLevel: conf.LogLevel,
		Static:   conf.Static,
		Strict:   conf.StrictNotFound || flags.Strict,
	}
	if flags.Host != "" {
		s.Host = flags.Host
	}
	if flags.Port != 0 {
		s.Port = flags.Port
	}
	if flags.LogLevel != "" {
		s.LogLevel = flags.LogLevel
	}
	if flags.Static != "" {
		s.Static = flags.Static
	}
	return s, nil
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Serve logs over HTTP API.",
		Flag{},
		flarc.Args{},
		common.NewTask(Task(api.Start)),
		flarc.WithDescription(`
Serve logs in logdir over read-only HTTP API, at /api/ .

	{{ .Command }} --logdir ./logs

Directory of logs can also be given by environment variable.

	CONFUSIONFLOW_LOGDIR=./logs {{ .Command }}

With --config, settings are read from the file, and flags override them.
The server stops when the config file is modified, to be restarted by a supervisor.
`),
	)
}

func Task(start StartFunc) common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		cl flarc.Commandline[Flag],
		_ []any,
	) error {
		flags := cl.Flags()
		settings, err := Resolve(flags)
		if err != nil {
			return err
		}

		conf, err := api.NewConfig(
			settings.Logdir,
			api.WithStaticDir(settings.Static),
			api.WithStrictNotFound(settings.Strict),
		)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		if flags.Config != "" {
			wctx, wcancel, err := filewatch.UntilModifyContext(ctx, flags.Config)
			if err != nil {
				return fmt.Errorf("can not watch configuration: %w", err)
			}
			defer wcancel()
			ctx = wctx
		}

		server := start(
			ctx, api.OnAddress(settings.Host, settings.Port), conf,
			api.WithLogLevel(settings.LogLevel),
		)
		if server.Port == 0 {
			if err := <-server.ServerStop; err != nil {
				return fmt.Errorf("can not start server on %s: %w", settings.Address(), err)
			}
			return nil
		}
		logger.Printf(
			"serving %s on http://%s/",
			conf.Logdir(), net.JoinHostPort(settings.Host, strconv.Itoa(server.Port)),
		)

		err = <-server.ServerStop
		if cause := context.Cause(ctx); cause != nil && cause != context.Canceled {
			logger.Printf("server stopped: %s", cause)
		}
		return err
	}
}
