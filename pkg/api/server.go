package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/opst/confusionflow/pkg/echoutil"
	"github.com/opst/confusionflow/pkg/utils/retry"
)

type server struct {
	silent         bool
	loglevel       string
	gracefulPeriod time.Duration
}

func defaultServerConfig() server {
	return server{
		loglevel:       "info",
		gracefulPeriod: 15 * time.Second,
	}
}

type Option func(*server) *server

// set graceful period for shutdown.
//
// GracefulPeriod is 15 seconds by default.
func WithGracefulPeriod(d time.Duration) Option {
	return func(s *server) *server {
		s.gracefulPeriod = d
		return s
	}
}

// set log level of the server. See echoutil.SetLevel.
//
// It is "info" by default.
func WithLogLevel(level string) Option {
	return func(s *server) *server {
		s.loglevel = level
		return s
	}
}

// hide banner and listening address on start.
func Silent() Option {
	return func(s *server) *server {
		s.silent = true
		return s
	}
}

type Starter func(*echo.Echo) error

// start server on host:port.
//
// When port is 0, a free port is chosen.
func OnAddress(host string, port int) Starter {
	return func(e *echo.Echo) error {
		return e.Start(net.JoinHostPort(host, strconv.Itoa(port)))
	}
}

// start server on port number, listening on localhost only.
func OnLocalPort(p int) Starter {
	return OnAddress("localhost", p)
}

type Server struct {
	// Port where the server listens. 0 if the server could not start.
	Port int

	// ServerStop receives nil when the server is shut down,
	// or an error when the server fails.
	ServerStop <-chan error
}

var errStopped = errors.New("server stopped")

// Start starts the API service and returns after it starts listening (or fails to start).
//
// # Params
//
// - ctx context.Context: context to be used for server.
// To stop the server, cancel this context.
//
// - starter Starter: starter to be used for server.
//
// - conf Config: configuration of the API service.
//
// - opts ...Option: options to configure server.
func Start(ctx context.Context, starter Starter, conf Config, opts ...Option) Server {
	serverConfig := defaultServerConfig()
	for _, opt := range opts {
		serverConfig = *opt(&serverConfig)
	}

	e := echo.New()
	if serverConfig.silent {
		e.HideBanner = true
		e.HidePort = true
	}
	echoutil.SetLevel(e, serverConfig.loglevel)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		e.DefaultHTTPErrorHandler(err, c)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)
	Register(e, conf)

	closeServer := func() func() {
		o := sync.Once{}
		return func() {
			o.Do(func() {
				if 0 < serverConfig.gracefulPeriod {
					_ctx, _cancel := context.WithTimeout(context.Background(), serverConfig.gracefulPeriod)
					defer _cancel()
					if err := e.Shutdown(_ctx); err != nil { // try to shutdown gracefully
						e.Logger.Warnf("graceful shutdown failed: %s", err)
					}
				}
				e.Close() // close forcefully
			})
		}
	}()

	stopped := make(chan struct{})
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		err := starter(e)
		close(stopped)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		ch <- err
	}()

	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
		}
		closeServer()
	}()

	port, _ := retry.Blocking(
		ctx, retry.StaticBackoff(50*time.Millisecond),
		func() (int, error) {
			select {
			case <-stopped:
				return 0, errStopped
			default:
			}
			addr, ok := e.ListenerAddr().(*net.TCPAddr)
			if !ok {
				return 0, retry.ErrRetry
			}
			return addr.Port, nil
		},
	)

	return Server{Port: port, ServerStop: ch}
}
