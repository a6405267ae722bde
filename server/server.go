package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ec-win-24/nexuspoint/config"
	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type (
	// HandlerFunc is an http handler that can return an error. Returned
	// errors are passed to the server's error handler; handlers that speak
	// Result values write their own response and return nil.
	HandlerFunc func(w http.ResponseWriter, r *http.Request) error

	ErrorHandler func(cfg *config.Config, w http.ResponseWriter, r *http.Request, err error)
)

type Server struct {
	mux          *chi.Mux
	cfg          *config.Config
	logger       *slog.Logger
	errorHandler ErrorHandler
}

// New creates a new server with the specified configuration.
func New(cfg *config.Config) *Server {
	server := &Server{
		mux:          chi.NewMux(),
		cfg:          cfg,
		logger:       slog.Default(),
		errorHandler: DefaultErrorHandler,
	}

	server.mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, Problem{
			Status: http.StatusNotFound,
			Title:  fmt.Sprintf("Path %q not found", r.URL.Path),
		})
	})

	return server
}

func (server *Server) WithLogger(logger *slog.Logger) *Server {
	server.logger = logger
	return server
}

func (server *Server) WithErrorHandler(errorHandler ErrorHandler) *Server {
	server.errorHandler = errorHandler
	return server
}

// Use appends stdlib middleware handlers to the middleware stack.
func (server *Server) Use(middlewares ...func(http.Handler) http.Handler) *Server {
	server.mux.Use(middlewares...)
	return server
}

// AttachDefaultMiddleware attaches the default middleware stack: panic
// recovery, real-ip and request-id resolution, request logging and a
// request timeout.
func (server *Server) AttachDefaultMiddleware() {
	server.Use(
		middleware.Recoverer,
		middleware.RealIP,
		middleware.RequestID,
		HTTPLogger(server.cfg),
		middleware.Timeout(
			time.Duration(server.cfg.App.RequestTimeout)*time.Second,
		),
	)
}

// Get adds the route `pattern` that matches GET requests.
func (server *Server) Get(pattern string, handler HandlerFunc) {
	server.mux.Get(pattern, server.handle(handler))
}

// Route mounts a sub-router under `pattern`.
func (server *Server) Route(pattern string, fn func(r chi.Router)) {
	server.mux.Route(pattern, fn)
}

// Handle converts a HandlerFunc into a stdlib handler with the server's
// error handling attached.
func (server *Server) Handle(handler HandlerFunc) http.HandlerFunc {
	return server.handle(handler)
}

func (server *Server) handle(handler HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handler(w, r); err != nil {
			server.errorHandler(server.cfg, w, r, err)
		}
		_ = r.Body.Close()
	}
}

// ServeHTTP implements [net/http.Handler].
func (server *Server) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	server.mux.ServeHTTP(writer, request)
}

// Start runs the server until the context is cancelled or an interrupt
// signal arrives, then shuts down gracefully within the configured timeout.
// If no listener is provided, a new TCP listener will be created on the
// configured host and port.
func (server *Server) Start(ctx context.Context, listener *net.Listener) error {
	ctxServer, stopSignal := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignal()

	host := fmt.Sprintf("%v:%v", server.cfg.App.Host, server.cfg.App.Port)
	if listener != nil {
		host = (*listener).Addr().String()
	}
	httpServer := &http.Server{
		Addr:              host,
		Handler:           server,
		ReadHeaderTimeout: time.Duration(server.cfg.App.RequestTimeout) * time.Second,
	}

	errorCh := make(chan error)
	go func() {
		slog.Info("Starting server", "url", server.cfg.BaseURL(), "host", host)
		var err error
		if listener != nil {
			err = httpServer.Serve(*listener)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorCh <- err
		}
		close(errorCh)
	}()

	var errServer error

loop:
	for {
		select {
		case err := <-errorCh:
			errServer = err
			break loop

		case <-ctxServer.Done():
			slog.Info("Server interrupt received")
			break loop
		}
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(
		ctx,
		time.Duration(server.cfg.App.ShutdownTimeout)*time.Second,
	)
	defer cancelShutdown()

	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		slog.Error("Could not shut down the server gracefully", "error", err)
	}
	sentryTimeout := max(0, time.Duration(server.cfg.App.ShutdownTimeout-1))
	sentry.Flush(sentryTimeout * time.Second)

	return errServer
}
