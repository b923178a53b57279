package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/loadboard/internal/errors"
)

func TestNewDefaults(t *testing.T) {
	c := New()

	if c.Server.Address != DefaultAddress {
		t.Errorf("Address = %q, want %q", c.Server.Address, DefaultAddress)
	}
	if Duration(c.Server.ShutdownTimeout).Seconds() != 10 {
		t.Errorf("ShutdownTimeout = %q, want 10s", c.Server.ShutdownTimeout)
	}
	if !c.Telemetry.MetricsEnabled() {
		t.Error("metrics should default to enabled")
	}
	if c.Log.SlogLevel() != slog.LevelInfo {
		t.Errorf("level = %v, want info", c.Log.SlogLevel())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAddress, ":9999")

	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Address != ":9999" {
		t.Errorf("Address = %q, want :9999", c.Server.Address)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	os.WriteFile(path, []byte(`{
		"server": {"address": ":7000", "pingInterval": "5s"},
		"data": {"dir": "fixtures", "watch": true},
		"log": {"level": "debug", "format": "json"},
		"telemetry": {"metrics": false}
	}`), 0o644)

	c, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Address != ":7000" || c.Data.Dir != "fixtures" || !c.Data.Watch {
		t.Errorf("unexpected config: %+v", c)
	}
	if c.Server.WriteTimeout != "15s" {
		t.Errorf("WriteTimeout = %q, want default 15s", c.Server.WriteTimeout)
	}
	if c.Telemetry.MetricsEnabled() {
		t.Error("metrics should be disabled")
	}
	if c.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", c.Log.SlogLevel())
	}
	if c.Path() != path {
		t.Errorf("Path() = %q, want %q", c.Path(), path)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"bad json", `{`, "L001"},
		{"bad duration", `{"server": {"readTimeout": "soon"}}`, "L002"},
		{"bad level", `{"log": {"level": "loud"}}`, "L002"},
		{"bad format", `{"log": {"format": "xml"}}`, "L002"},
		{"two sources", `{"data": {"dir": "x", "s3": {"bucket": "b"}}}`, "L002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			os.WriteFile(path, []byte(tt.content), 0o644)

			_, err := LoadFile(path)
			if got := errors.Code(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDataDir:  "/srv/data",
		EnvLogLevel: "WARN",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	c := New()
	if err := c.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if c.Data.Dir != "/srv/data" || c.Log.SlogLevel() != slog.LevelWarn {
		t.Errorf("unexpected config: %+v", c)
	}

	env[EnvLogLevel] = "chatty"
	err := c.ApplyEnv(lookup)
	if !stderrors.Is(err, errors.New("L003")) {
		t.Errorf("err = %v, want L003", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	c := New()
	c.Data.S3 = S3Config{Bucket: "loads", Prefix: "groups/", Region: "eu-central-1"}

	if err := c.Save(); err == nil {
		t.Error("Save without a path should fail")
	}
	if err := c.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Data.S3 != c.Data.S3 {
		t.Errorf("S3 = %+v, want %+v", loaded.Data.S3, c.Data.S3)
	}
}
