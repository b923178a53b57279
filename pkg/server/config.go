package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/loadboard/internal/config"
	"github.com/vango-dev/loadboard/pkg/dashboard"
)

// Config configures the Server.
type Config struct {
	// Address is the listen address. Default: ":8080".
	Address string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// PingInterval is the live heartbeat period. A session that sees no
	// traffic for twice this long is closed.
	PingInterval time.Duration

	// MaxMessageSize bounds incoming live frames in bytes.
	MaxMessageSize int

	// MaxEventQueue is the number of client events buffered per session.
	// Default: 64.
	MaxEventQueue int

	// CheckOrigin validates websocket upgrade requests.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// NoMetrics turns off recording and the /metrics route.
	NoMetrics bool

	// HighlightColor is the panel hover color.
	HighlightColor string

	// Title is the document title.
	Title string

	// EChartsSrc is the URL of the ECharts bundle.
	EChartsSrc string
}

// DefaultEChartsSrc loads ECharts 5 from jsDelivr.
const DefaultEChartsSrc = "https://cdn.jsdelivr.net/npm/echarts@5/dist/echarts.min.js"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:         config.DefaultAddress,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  config.DefaultMaxMessageSize,
		MaxEventQueue:   64,
		CheckOrigin:     SameOriginCheck,
		HighlightColor:  dashboard.DefaultHighlight,
		Title:           dashboard.Heading,
		EChartsSrc:      DefaultEChartsSrc,
	}
}

// FromConfig derives the server configuration from a validated
// loadboard.json.
func FromConfig(c *config.Config) *Config {
	cfg := DefaultConfig()
	s := c.Server
	cfg.Address = s.Address
	cfg.ReadTimeout = config.Duration(s.ReadTimeout)
	cfg.WriteTimeout = config.Duration(s.WriteTimeout)
	cfg.ShutdownTimeout = config.Duration(s.ShutdownTimeout)
	cfg.PingInterval = config.Duration(s.PingInterval)
	cfg.MaxMessageSize = s.MaxMessageSize
	cfg.NoMetrics = !c.Telemetry.MetricsEnabled()
	return cfg
}

func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.ReadTimeout <= 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.ShutdownTimeout <= 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.PingInterval <= 0 {
		out.PingInterval = d.PingInterval
	}
	if out.MaxMessageSize <= 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.MaxEventQueue <= 0 {
		out.MaxEventQueue = d.MaxEventQueue
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	if out.HighlightColor == "" {
		out.HighlightColor = d.HighlightColor
	}
	if out.Title == "" {
		out.Title = d.Title
	}
	if out.EChartsSrc == "" {
		out.EChartsSrc = d.EChartsSrc
	}
	return &out
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host equals the Host header.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}
