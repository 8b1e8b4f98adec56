package server

import (
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	cnserrors "github.com/mchmarny/basket/pkg/errors"
	"github.com/mchmarny/basket/pkg/serializer"
)

// System routes bypass the API middleware.
var systemRoutes = []string{"/health", "/metrics", "/ready"}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", getOnly(http.HandlerFunc(s.handleHealth)))
	mux.Handle("/ready", getOnly(http.HandlerFunc(s.handleReady)))
	mux.Handle("/metrics", getOnly(promhttp.Handler()))

	mw := s.apiMiddleware()
	for pattern, h := range s.config.Handlers {
		mux.Handle(pattern, chain(h, mw...))
	}

	return mux
}

// RootResponse is returned by the default root route.
type RootResponse struct {
	Name      string    `json:"name" yaml:"name"`
	Version   string    `json:"version" yaml:"version"`
	Ready     bool      `json:"ready" yaml:"ready"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Routes    []string  `json:"routes" yaml:"routes"`
}

// handleDefault lists the routes on GET / and answers 404 for any path no
// other route matched.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound,
			"Route not found", false, map[string]any{"path": r.URL.Path})
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	routes := make([]string, 0, len(s.config.Handlers)+len(systemRoutes))
	for pattern := range s.config.Handlers {
		if pattern != "/" {
			routes = append(routes, pattern)
		}
	}
	routes = append(routes, systemRoutes...)
	sort.Strings(routes)

	serializer.RespondJSON(w, http.StatusOK, RootResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC(),
		Routes:    routes,
	})
}

// getOnly answers 405 to anything but GET and HEAD.
func getOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
				"Method not allowed", false, map[string]any{"method": r.Method})
			return
		}
		next.ServeHTTP(w, r)
	})
}
