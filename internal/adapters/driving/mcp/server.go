package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/BASILR00T/kawnhub-sub000/internal/logger"
)

// Version is reported to clients during initialisation.
const Version = "0.2.0"

// shutdownGrace bounds how long RunHTTP waits for open sessions on exit.
const shutdownGrace = 5 * time.Second

// Server exposes topic search to MCP clients.
type Server struct {
	ports  *Ports
	server *mcp.Server

	// exposed names every tool and resource registered, in order.
	exposed []string
}

// NewServer builds a server over ports. Tools and resources whose backing
// port is nil are left unregistered, so clients never see a capability
// that can only fail.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(&mcp.Implementation{Name: "kawnhub", Version: Version}, nil),
	}
	s.registerTools()
	s.registerResources()

	logger.Debug("mcp: exposing %s", strings.Join(s.exposed, ", "))
	return s, nil
}

// Exposed returns the registered tool and resource names.
func (s *Server) Exposed() []string {
	return append([]string(nil), s.exposed...)
}

// Run serves a single client over stdin and stdout until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves every HTTP session from the same server instance.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is done.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown: %v", err)
		}
	}()

	logger.Info("starting MCP HTTP server on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-stopped
	return nil
}
