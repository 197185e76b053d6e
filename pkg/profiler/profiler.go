package profiler

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/thushan/holocron/internal/logger"
)

// Server serves pprof endpoints on a private mux while the browser runs
type Server struct {
	srv *http.Server
}

// Start listens on address in the background, e.g. "localhost:6060"
func Start(address string, log *logger.StyledLogger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	s := &Server{srv: &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}}

	go func() {
		log.InfoWithURL("Profiler listening", "http://"+address+"/debug/pprof/")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Profiler stopped", "error", err)
		}
	}()
	return s
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
