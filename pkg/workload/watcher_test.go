package workload

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFixture(t *testing.T, dir string, g Group) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, g.ID+".yaml"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := WriteYAML(f, g, 0); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, groups("a")[0])
	catalog := NewCatalog(nil)

	reloaded := make(chan []Group, 4)
	w := NewWatcher(dir, catalog,
		WithDebounce(20*time.Millisecond),
		OnReload(func(gs []Group) { reloaded <- gs }),
	)

	if err := w.Reload(); err != nil {
		t.Fatal(err)
	}
	<-reloaded
	if len(catalog.Snapshot()) != 1 {
		t.Fatalf("catalog = %v", catalog.Snapshot())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run() = %v", err)
		}
	}()

	// fsnotify needs the watch registered before the write lands.
	deadline := time.After(5 * time.Second)
	for {
		writeFixture(t, dir, groups("a", "b")[1])
		select {
		case gs := <-reloaded:
			if len(gs) != 2 {
				t.Fatalf("reloaded %d groups, want 2", len(gs))
			}
			if _, ok := catalog.Find("b"); !ok {
				t.Error("catalog missing b")
			}
			return
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("no reload after writing a fixture")
		}
	}
}

func TestWatcherKeepsGroupsOnError(t *testing.T) {
	dir := t.TempDir()
	catalog := NewCatalog(groups("keep"))
	var reported error
	w := NewWatcher(dir, catalog, OnReloadError(func(err error) { reported = err }))

	os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: ["), 0o644)

	if err := w.Reload(); err == nil {
		t.Fatal("Reload() should fail")
	}
	if _, ok := catalog.Find("keep"); !ok {
		t.Error("catalog lost its groups after a failed reload")
	}
	if reported == nil {
		t.Error("OnReloadError was not called")
	}
	if w.Failures() != 1 || w.Reloads() != 0 {
		t.Errorf("Failures=%d Reloads=%d", w.Failures(), w.Reloads())
	}
}

func TestWatcherMissingDir(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "nope"), NewCatalog(nil))
	if err := w.Run(context.Background()); err == nil {
		t.Error("Run() on a missing directory should fail")
	}
}
