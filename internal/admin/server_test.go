package admin

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hmidash/internal/config"
	"hmidash/internal/metrics"
	"hmidash/internal/sim"
	"hmidash/internal/telemetry"
)

func newTestServer(t *testing.T) (*Server, *sim.Simulator, *metrics.Recorder) {
	t.Helper()
	rec := metrics.NewRecorder()
	s := sim.NewSimulator("admin-test", config.Default(), rec, rec, time.Millisecond, rand.New(rand.NewSource(1)), nil)
	return NewServer(s, rec), s, rec
}

func do(t *testing.T, srv *Server, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w.Result()
}

func TestHandleSnapshot(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp := do(t, srv, http.MethodGet, "/snapshot")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status OK, got %v", resp.StatusCode)
	}
	var st sim.State
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.SessionID != "admin-test" || st.Snapshot.FuelLevel != 75 || st.AlertState != telemetry.AlertStateDormant {
		t.Errorf("unexpected snapshot %+v", st)
	}
}

func TestHandleAlerts(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp := do(t, srv, http.MethodGet, "/alerts")
	var body struct {
		State     string               `json:"state"`
		Active    []telemetry.AlertRow `json:"active"`
		MaxActive int                  `json:"max_active"`
		Catalog   []telemetry.AlertRow `json:"catalog"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.MaxActive != 6 || len(body.Catalog) != 6 || len(body.Active) != 0 {
		t.Errorf("unexpected alerts body %+v", body)
	}
}

func TestHandleRefuel(t *testing.T) {
	srv, s, _ := newTestServer(t)
	if resp := do(t, srv, http.MethodGet, "/refuel"); resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("Expected GET /refuel to be rejected, got %v", resp.StatusCode)
	}
	resp := do(t, srv, http.MethodPost, "/refuel")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status OK, got %v", resp.StatusCode)
	}
	var snap telemetry.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.FuelLevel != 100 || s.State().Snapshot.FuelLevel != 100 {
		t.Errorf("Expected full tank, got %v", snap.FuelLevel)
	}
}

func TestHandleRefuelFromForm(t *testing.T) {
	srv, s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/refuel", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	resp := w.Result()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("Expected redirect, got %v", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("Expected redirect to /, got %q", loc)
	}
	if s.State().Snapshot.FuelLevel != 100 {
		t.Errorf("Expected full tank after form refuel")
	}
}

func TestHandleMetricsAndIndex(t *testing.T) {
	srv, _, rec := newTestServer(t)
	_ = rec.WriteFrame(telemetry.FrameRow{Snapshot: telemetry.Snapshot{EngineSpeed: 1250}})
	resp := do(t, srv, http.MethodGet, "/metrics")
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "hmidash_engine_speed_rpm 1250") {
		t.Fatalf("metrics missing engine speed:\n%s", body)
	}
	resp = do(t, srv, http.MethodGet, "/")
	body, _ = io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Session admin-test") || !strings.Contains(string(body), "Refuel") {
		t.Fatalf("index not rendered:\n%s", body)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv, _, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status OK, got %v", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}
