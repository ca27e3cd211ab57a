package admin

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hmidash/internal/logging"
	"hmidash/internal/metrics"
	"hmidash/internal/sim"
	"hmidash/internal/telemetry"
)

// Server is the admin HTTP API over a running simulator.
type Server struct {
	Sim     *sim.Simulator
	metrics *metrics.Recorder
	tpl     *template.Template
	router  *mux.Router
}

//go:embed templates/index.html
var content embed.FS

// NewServer wires the admin routes. rec may be nil to leave /metrics unrouted.
func NewServer(s *sim.Simulator, rec *metrics.Recorder) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	srv := &Server{Sim: s, metrics: rec, tpl: tpl}
	srv.routes()
	return srv
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	r.HandleFunc("/alerts", s.handleAlerts).Methods(http.MethodGet)
	r.HandleFunc("/refuel", s.handleRefuel).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	s.router = r
}

// Handler returns the admin router.
func (s *Server) Handler() http.Handler { return s.router }

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logging.FromContext(ctx)
	hs := &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			log.Error("admin server shutdown failed", "err", err)
		}
	}()
	log.Info("admin server listening", "addr", ln.Addr().String())
	if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cfg := s.Sim.GetConfig()
	data := struct {
		State   sim.State
		Catalog int
		Max     int
		Coolant float64
		Fuel    float64
	}{
		State:   s.Sim.State(),
		Catalog: len(cfg.Alerts.Catalog),
		Max:     cfg.Alerts.MaxActive,
		Coolant: cfg.Coolant.HighWarning,
		Fuel:    cfg.Fuel.LowWarning,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, data); err != nil {
		logging.FromContext(r.Context()).Error("render index failed", "err", err)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.State())
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	st := s.Sim.State()
	catalog := make([]telemetry.AlertRow, 0, len(s.Sim.GetConfig().Alerts.Catalog))
	for _, d := range s.Sim.GetConfig().Alerts.Catalog {
		catalog = append(catalog, d.Row())
	}
	writeJSON(w, map[string]any{
		"state":      st.AlertState,
		"active":     st.Alerts,
		"max_active": s.Sim.GetConfig().Alerts.MaxActive,
		"catalog":    catalog,
	})
}

func (s *Server) handleRefuel(w http.ResponseWriter, r *http.Request) {
	snap := s.Sim.Refuel()
	logging.FromContext(r.Context()).Info("refuelled via admin api", "fuel_level", snap.FuelLevel)
	// the index page form expects to land back on the status page
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, snap)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"status": "ok", "session_id": s.Sim.SessionID()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
