package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/vango-dev/loadboard/internal/config"
	"github.com/vango-dev/loadboard/pkg/dashboard"
	"github.com/vango-dev/loadboard/pkg/protocol"
	"github.com/vango-dev/loadboard/pkg/workload"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) (*Server, *httptest.Server, *workload.Catalog) {
	t.Helper()
	catalog := workload.NewCatalog(workload.Default())
	srv := New(&Config{PingInterval: time.Minute}, catalog,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		ts.Close()
	})
	return srv, ts, catalog
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, body := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatal(err)
	}
	if got["status"] != "ok" || got["groups"] != float64(2) || got["sessions"] != float64(0) {
		t.Errorf("healthz = %v", got)
	}
}

func TestGroupsAPI(t *testing.T) {
	_, ts, _ := newTestServer(t)

	_, body := get(t, ts, "/api/groups")
	var groups []groupSummary
	if err := json.Unmarshal([]byte(body), &groups); err != nil {
		t.Fatal(err)
	}
	want := []groupSummary{{ID: "stg-1", Name: "1-Guruh"}, {ID: "stg-2", Name: "2-Guruh"}}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}

	resp, body := get(t, ts, "/api/groups/stg-2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var g workload.Group
	if err := json.Unmarshal([]byte(body), &g); err != nil {
		t.Fatal(err)
	}
	if g.ID != "stg-2" || len(g.Data.Aerob) != workload.Weeks {
		t.Errorf("group = %s with %d aerob weeks", g.ID, len(g.Data.Aerob))
	}

	resp, body = get(t, ts, "/api/groups/missing")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing group status = %d, want 404", resp.StatusCode)
	}
	var e errorResponse
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatal(err)
	}
	if e.Code != "L040" || !strings.Contains(e.Message, `"missing"`) {
		t.Errorf("error = %+v, want L040 naming the id", e)
	}
}

func TestChartsAPI(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, body := get(t, ts, "/api/groups/stg-1/charts")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var panels []struct {
		ID     string `json:"id"`
		Charts []struct {
			ID     string          `json:"id"`
			Option json.RawMessage `json:"option"`
		} `json:"charts"`
	}
	if err := json.Unmarshal([]byte(body), &panels); err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, p := range panels {
		for _, c := range p.Charts {
			ids = append(ids, p.ID+"/"+c.ID)
			if len(c.Option) == 0 {
				t.Errorf("chart %s has no option", c.ID)
			}
		}
	}
	want := []string{"load/line", "distribution/pie", "distribution/quarters", "activity/heatmap"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("charts mismatch (-want +got):\n%s", diff)
	}

	if resp, _ := get(t, ts, "/api/groups/nope/charts"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing group status = %d, want 404", resp.StatusCode)
	}
}

func TestPage(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, body := get(t, ts, "/")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	for _, want := range []string{
		`data-live="/live"`,
		">" + dashboard.Heading + "</h1>",
		`<script defer src="` + DefaultEChartsSrc + `"></script>`,
		`<script defer src="/static/client.js"></script>`,
		`"selected":"stg-1"`,
		`data-chart="heatmap"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	_, body = get(t, ts, "/?group=stg-2")
	if !strings.Contains(body, `data-live="/live?group=stg-2"`) || !strings.Contains(body, `"selected":"stg-2"`) {
		t.Error("group query not carried into the page")
	}

	if resp, _ := get(t, ts, "/?group=missing"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown group status = %d, want 404", resp.StatusCode)
	}
}

func TestStaticClient(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, body := get(t, ts, "/static/client.js")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "loadboard:heatmap") {
		t.Error("client script missing heatmap formatter")
	}
}

func TestMetricsRoute(t *testing.T) {
	_, ts, _ := newTestServer(t)

	get(t, ts, "/api/groups")
	_, body := get(t, ts, "/metrics")
	for _, want := range []string{
		`loadboard_http_requests_total{code="200",method="GET",route="/api/groups`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	srv := New(&Config{NoMetrics: true}, workload.NewCatalog(workload.Default()))
	if srv.Metrics() != nil {
		t.Error("metrics should be nil when disabled")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("/metrics status = %d, want 404", rec.Code)
	}
}

func TestSameOriginCheck(t *testing.T) {
	tests := []struct {
		origin, host string
		want         bool
	}{
		{"", "example.com", true},
		{"http://example.com", "example.com", true},
		{"https://example.com:8443", "example.com:8443", true},
		{"http://evil.com", "example.com", false},
		{"://bad", "example.com", false},
		{"http://example.com", "", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/live", nil)
		r.Host = tt.host
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := SameOriginCheck(r); got != tt.want {
			t.Errorf("SameOriginCheck(%q, %q) = %v, want %v", tt.origin, tt.host, got, tt.want)
		}
	}
}

func TestFromConfig(t *testing.T) {
	c := config.New()
	c.Server.Address = ":9090"
	c.Server.PingInterval = "5s"
	off := false
	c.Telemetry.Metrics = &off

	got := FromConfig(c)
	if got.Address != ":9090" || got.PingInterval != 5*time.Second || !got.NoMetrics {
		t.Errorf("FromConfig = %+v", got)
	}
	if got.ReadTimeout != 15*time.Second || got.MaxMessageSize != config.DefaultMaxMessageSize {
		t.Errorf("defaults not carried: %+v", got)
	}
}

func TestConfigDefaults(t *testing.T) {
	var nilCfg *Config
	got := nilCfg.withDefaults()
	if got.MaxEventQueue != 64 || got.CheckOrigin == nil || got.EChartsSrc != DefaultEChartsSrc {
		t.Errorf("withDefaults = %+v", got)
	}
}

func TestEventLabel(t *testing.T) {
	for in, want := range map[string]string{
		"change":                   "change",
		"pointerenter":             "pointerenter",
		dashboard.EventSelectGroup: dashboard.EventSelectGroup,
		"keydown":                  "other",
		"":                         "other",
	} {
		if got := eventLabel(in); got != want {
			t.Errorf("eventLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunShutdown(t *testing.T) {
	srv := New(&Config{Address: "127.0.0.1:0"}, workload.NewCatalog(workload.Default()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if err := srv.Run(context.Background()); err != ErrServerClosed {
		t.Errorf("Run after Shutdown = %v, want ErrServerClosed", err)
	}
}
