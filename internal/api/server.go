// Package api serves charts and comparisons over HTTP.
// GET endpoints are public. Profile writes require a bearer token; the
// comparison endpoints are public but rate limited per IP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/engine"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/ephemeris"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/persistence"
)

const (
	defaultCompareLimit = 60
	maxBodyBytes        = 64 << 10
)

var errProfilesDisabled = errors.New("profile storage is not configured")

// Server serves the engine over HTTP.
type Server struct {
	Engine       *engine.Engine
	DB           *persistence.DB // nil disables the profile endpoints
	Port         int
	AdminKey     string   // Bearer token for profile writes. Empty = writes disabled.
	CORSOrigins  []string // added to the localhost dev origins
	CompareLimit int      // compare requests per IP per minute; 0 = default

	startedAt time.Time
	limiter   *RateLimiter
	srv       *http.Server
	once      sync.Once
}

// Handler builds the routed handler. The first call starts the compare
// rate limiter; Close stops it.
func (s *Server) Handler() http.Handler {
	s.once.Do(func() {
		limit := s.CompareLimit
		if limit <= 0 {
			limit = defaultCompareLimit
		}
		s.limiter = NewRateLimiter(limit, time.Minute)
		s.startedAt = time.Now()
	})

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/position", s.handlePosition)
	mux.HandleFunc("GET /api/v1/astrology", chartHandler(s, s.Engine.AstrologyChart))
	mux.HandleFunc("GET /api/v1/humandesign", chartHandler(s, s.Engine.HumanDesignChart))
	mux.HandleFunc("GET /api/v1/genekeys", chartHandler(s, s.Engine.GeneKeysProfile))
	mux.HandleFunc("GET /api/v1/vedic", chartHandler(s, s.Engine.VedicChart))

	mux.HandleFunc("POST /api/v1/compare/{kind}", RateLimitMiddleware(s.limiter, s.handleCompare))

	mux.HandleFunc("GET /api/v1/profiles", s.handleListProfiles)
	mux.HandleFunc("POST /api/v1/profiles", s.adminOnly(s.handleCreateProfile))
	mux.HandleFunc("GET /api/v1/profiles/{id}", s.handleGetProfile)
	mux.HandleFunc("DELETE /api/v1/profiles/{id}", s.adminOnly(s.handleDeleteProfile))

	return corsMiddleware(s.CORSOrigins, mux)
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "", "profiles", s.DB != nil)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Shutdown drains in-flight requests and stops the limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.srv != nil {
		err = s.srv.Shutdown(ctx)
	}
	s.Close()
	return err
}

// Close stops background work started by Handler.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Localhost dev servers are always allowed.
func corsMiddleware(origins []string, next http.Handler) http.Handler {
	allowed := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	for _, o := range origins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly requires the admin bearer token.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no NATAL_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"name":          "natal-engine",
		"rules_version": s.Engine.RulesVersion(),
		"uptime":        time.Since(s.startedAt).Round(time.Second).String(),
		"profiles":      s.DB != nil,
	}
	if s.DB != nil {
		if n, err := s.DB.CountProfiles(); err == nil {
			status["profile_count"] = n
		}
	}
	if c, ok := s.Engine.Provider().(*ephemeris.Cached); ok {
		status["ephemeris_cache"] = c.Stats()
	}
	writeJSON(w, status)
}

// handlePosition serves the same shape the remote provider consumes, so one
// natald can act as another's ephemeris.
func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	body, err := ephemeris.ParseBody(q.Get("body"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, err := time.Parse(time.RFC3339Nano, q.Get("t"))
	if err != nil {
		http.Error(w, fmt.Sprintf("t %q: want an RFC 3339 timestamp", q.Get("t")), http.StatusBadRequest)
		return
	}
	pos, err := s.Engine.Position(body, t)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, pos)
}

// chartHandler resolves the birth from the query and serves one chart.
func chartHandler[T any](s *Server, calc func(engine.Birth) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := s.birthFromQuery(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		chart, err := calc(b)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, chart)
	}
}

// birthFromQuery reads either profile=<id> or date, hour, offset and an
// optional lat/lon pair. Offset defaults to UTC; hour is required.
func (s *Server) birthFromQuery(r *http.Request) (engine.Birth, error) {
	q := r.URL.Query()
	if id := q.Get("profile"); id != "" {
		if s.DB == nil {
			return engine.Birth{}, errProfilesDisabled
		}
		p, err := s.DB.GetProfile(id)
		if err != nil {
			return engine.Birth{}, err
		}
		return p.Birth, nil
	}

	b := engine.Birth{Date: q.Get("date")}
	raw := q.Get("hour")
	if raw == "" {
		return b, fmt.Errorf("%w: hour is required", engine.ErrInvalidTime)
	}
	hour, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return b, fmt.Errorf("%w: hour %q", engine.ErrInvalidTime, raw)
	}
	b.Hour = hour

	if raw := q.Get("offset"); raw != "" {
		off, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return b, fmt.Errorf("%w: offset %q", engine.ErrInvalidTime, raw)
		}
		b.UTCOffset = off
	}
	for _, c := range []struct {
		key string
		dst **float64
	}{{"lat", &b.Latitude}, {"lon", &b.Longitude}} {
		raw := q.Get(c.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return b, fmt.Errorf("%w: %s %q", engine.ErrInvalidLocation, c.key, raw)
		}
		*c.dst = &v
	}
	return b, nil
}

type compareRequest struct {
	A        engine.Birth `json:"a"`
	B        engine.Birth `json:"b"`
	AProfile string       `json:"a_profile,omitempty"`
	BProfile string       `json:"b_profile,omitempty"`
}

func (s *Server) resolve(b engine.Birth, profileID string) (engine.Birth, error) {
	if profileID == "" {
		return b, nil
	}
	if s.DB == nil {
		return b, errProfilesDisabled
	}
	p, err := s.DB.GetProfile(profileID)
	if err != nil {
		return b, err
	}
	return p.Birth, nil
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	a, err := s.resolve(req.A, req.AProfile)
	if err != nil {
		s.writeError(w, err)
		return
	}
	b, err := s.resolve(req.B, req.BProfile)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := r.Context()
	e := s.Engine
	var result any
	switch kind := r.PathValue("kind"); kind {
	case "astrology":
		ca, cb, err := engine.Both(ctx, a, b, e.AstrologyChart)
		if err == nil {
			result, err = e.CompareAstrology(ca, cb)
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
	case "humandesign":
		ca, cb, err := engine.Both(ctx, a, b, e.HumanDesignChart)
		if err == nil {
			result, err = e.CompareHumanDesign(ca, cb)
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
	case "genekeys":
		ca, cb, err := engine.Both(ctx, a, b, e.GeneKeysProfile)
		if err == nil {
			result, err = e.CompareGeneKeys(ca, cb)
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
	case "vedic":
		ca, cb, err := engine.Both(ctx, a, b, e.VedicChart)
		if err == nil {
			result, err = e.CompareVedic(ca, cb)
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
	default:
		http.Error(w, fmt.Sprintf("unknown comparison %q", kind), http.StatusNotFound)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		s.writeError(w, errProfilesDisabled)
		return
	}
	profiles, err := s.DB.ListProfiles()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, profiles)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		s.writeError(w, errProfilesDisabled)
		return
	}
	p, err := s.DB.GetProfile(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, p)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		s.writeError(w, errProfilesDisabled)
		return
	}
	var req struct {
		Name  string       `json:"name"`
		Birth engine.Birth `json:"birth"`
		Notes string       `json:"notes"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	p, err := s.DB.SaveProfile(req.Name, req.Birth, req.Notes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	slog.Info("profile created", "id", p.ID, "name", p.Name)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, p)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		s.writeError(w, errProfilesDisabled)
		return
	}
	id := r.PathValue("id")
	if err := s.DB.DeleteProfile(id); err != nil {
		s.writeError(w, err)
		return
	}
	slog.Info("profile deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps boundary errors to 4xx and logs everything else.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidDate),
		errors.Is(err, engine.ErrInvalidTime),
		errors.Is(err, engine.ErrInvalidLocation),
		errors.Is(err, ephemeris.ErrUnknownBody):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, persistence.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, errProfilesDisabled):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
