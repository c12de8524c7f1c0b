package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tripcart/internal/logging"
	"github.com/gorilla/mux"
)

// Server exposes the metrics registry at GET /metrics.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Listen binds addr and serves in the background until Shutdown. Binding
// happens before Listen returns, so a busy port is reported here.
func Listen(ctx context.Context, addr string, m *Metrics, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics on %s: %w", addr, err)
	}

	router := mux.NewRouter()
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	s := &Server{
		srv: &http.Server{Handler: router, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}

	go func() {
		logger.Info(ctx, "metrics listening", "addr", s.Addr())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "metrics server stopped", "error", err)
		}
	}()
	return s, nil
}

// Addr is the bound address, useful when Listen was given port 0.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
