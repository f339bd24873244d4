package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"

	"github.com/avelora/salesboard/internal/apisrv/dashboard"
	"github.com/avelora/salesboard/internal/auth/jwt"
	"github.com/avelora/salesboard/internal/dependency"
	"github.com/avelora/salesboard/internal/dto"
	"github.com/avelora/salesboard/internal/middleware"
	"github.com/avelora/salesboard/internal/ratelimit"
)

// Config is the configuration for the http server
type Config struct {
	Port             string   `mapstructure:"port"`
	Address          string   `mapstructure:"address"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	JWTSecret        string   `mapstructure:"jwt_secret"`
	ReportsPerMinute int      `mapstructure:"reports_per_minute"`
}

// Server is the http server
type Server struct {
	hs      *http.Server
	c       *Config
	jwtAuth *jwtauth.JWTAuth
	limiter *ratelimit.ReportLimiter
	done    chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:       config,
		jwtAuth: jwtauth.New("HS256", []byte(config.JWTSecret), nil),
		limiter: ratelimit.NewReportLimiter(config.ReportsPerMinute),
		done:    make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(dashboardServer *dashboard.Server, repo dependency.Repository) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   append([]string{"http://localhost:*", "https://localhost:*"}, s.c.AllowedOrigins...),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := repo.Ping(req.Context()); err != nil {
			slog.Default().ErrorContext(req.Context(), "health check failed",
				slog.String("err", err.Error()),
			)
			writeError(w, http.StatusServiceUnavailable, "store unreachable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.ClientIdentifier)
		r.Use(jwtauth.Verifier(s.jwtAuth))
		r.Use(jwtauth.Authenticator)
		r.Post("/api/report", s.handleReport(dashboardServer))
	})

	return r
}

func (s *Server) handleReport(dashboardServer *dashboard.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		if err := s.limiter.CheckReport(middleware.GetClientIP(ctx)); err != nil {
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}

		_, claims, err := jwtauth.FromContext(ctx)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}
		requester, err := jwt.RequesterFromClaims(claims)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		var body dto.ReportRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		rep, err := dashboardServer.GetReport(ctx, &body, requester)
		if err != nil {
			if errors.Is(err, dashboard.ErrInvalidRequest) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "report failed")
			return
		}

		writeJSON(w, http.StatusOK, rep)
	}
}

// Start starts the server
func (s *Server) Start(ctx context.Context, dashboardServer *dashboard.Server, repo dependency.Repository) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           s.router(dashboardServer, repo),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = s.hs.Shutdown(shutdownCtx)
	}()

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("salesboard new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		cancel()
		close(s.done)
	}()

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
