package mcp

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sidharth1743/File-Search/internal/logger"
)

const serverVersion = "0.1.0"

// Server exposes the read-only MCP surface: grounded queries, document
// listings and task progress. Tools and resources for the optional
// ports are only registered when those ports are wired.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer validates the ports and registers every available tool and
// resource.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "filesearch",
			Version: serverVersion,
		}, nil),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run speaks MCP over stdio until ctx is cancelled. Stdout carries the
// protocol, so nothing else may write to it while serving.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr, shutting down
// gracefully when ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Handler: mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
			return s.server
		}, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	logger.Info("MCP server listening on http://%s", listener.Addr())

	select {
	case err := <-errCh:
		return fmt.Errorf("serve mcp: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown mcp: %w", err)
	}
	return nil
}
