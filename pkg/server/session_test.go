package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/loadboard/pkg/dashboard"
	"github.com/vango-dev/loadboard/pkg/protocol"
	"github.com/vango-dev/loadboard/pkg/workload"
)

type liveClient struct {
	t     *testing.T
	conn  *websocket.Conn
	codec protocol.Codec
}

func dial(t *testing.T, ts *httptest.Server, subprotocol, query string) *liveClient {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live" + query
	d := websocket.Dialer{Subprotocols: []string{subprotocol}}
	conn, _, err := d.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	if conn.Subprotocol() != subprotocol {
		t.Fatalf("Subprotocol() = %q, want %q", conn.Subprotocol(), subprotocol)
	}
	return &liveClient{t: t, conn: conn, codec: protocol.ForSubprotocol(subprotocol, 1<<20)}
}

// read returns the next frame that is not a server Ping.
func (c *liveClient) read() protocol.Frame {
	c.t.Helper()
	for {
		c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.t.Fatalf("read: %v", err)
		}
		var f protocol.Frame
		if err := c.codec.Decode(data, &f); err != nil {
			c.t.Fatalf("decode: %v", err)
		}
		if f.Type != protocol.FramePing {
			return f
		}
	}
}

func (c *liveClient) write(f *protocol.Frame) {
	c.t.Helper()
	data, err := c.codec.Encode(f)
	if err != nil {
		c.t.Fatal(err)
	}
	mt := websocket.TextMessage
	if c.codec.Binary() {
		mt = websocket.BinaryMessage
	}
	if err := c.conn.WriteMessage(mt, data); err != nil {
		c.t.Fatal(err)
	}
}

// handshake reads the Hello frame and the initial tree.
func (c *liveClient) handshake() string {
	c.t.Helper()
	hello := c.read()
	if hello.Type != protocol.FrameHello || hello.Session == "" {
		c.t.Fatalf("first frame = %s %q, want Hello with a session id", hello.Type, hello.Session)
	}
	tree := c.read()
	if tree.Type != protocol.FramePatches || tree.Seq != 1 || len(tree.Patches) != 1 {
		c.t.Fatalf("second frame = %s seq %d with %d patches, want one ReplaceNode", tree.Type, tree.Seq, len(tree.Patches))
	}
	if p := tree.Patches[0]; p.Op != "ReplaceNode" || !strings.Contains(p.HTML, dashboard.Heading) {
		c.t.Fatalf("initial patch = %s, want ReplaceNode of the page", p.Op)
	}
	return hello.Session
}

func findPatch(ps []protocol.Patch, op, key string) (protocol.Patch, bool) {
	for _, p := range ps {
		if p.Op == op && p.Key == key {
			return p, true
		}
	}
	return protocol.Patch{}, false
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestLiveSelectGroup(t *testing.T) {
	for _, sub := range protocol.Subprotocols() {
		t.Run(sub, func(t *testing.T) {
			srv, ts, _ := newTestServer(t)
			c := dial(t, ts, sub, "")
			id := c.handshake()

			sess := srv.Sessions().Get(id)
			if sess == nil {
				t.Fatalf("session %s not registered", id)
			}
			c.write(&protocol.Frame{
				Type:  protocol.FrameEvent,
				Event: &protocol.Event{Type: "change", HID: sess.Page().SelectHID(), Value: "stg-2"},
			})

			f := c.read()
			if f.Type != protocol.FramePatches || f.Seq != 2 {
				t.Fatalf("frame = %s seq %d, want Patches seq 2", f.Type, f.Seq)
			}
			if p, ok := findPatch(f.Patches, "SetAttr", "value"); !ok || p.Value != "stg-2" {
				t.Errorf("no select value patch for stg-2 in %+v", f.Patches)
			}
			if _, ok := findPatch(f.Patches, "SetAttr", "data-option"); !ok {
				t.Error("charts were not updated")
			}
		})
	}
}

func TestLiveGroupQuery(t *testing.T) {
	srv, ts, _ := newTestServer(t)
	c := dial(t, ts, protocol.SubprotocolJSON, "?group=stg-2")
	id := c.handshake()

	page := srv.Sessions().Get(id).Page()
	if v, _ := page.Root().Find(page.SelectHID()).Props["value"].(string); v != "stg-2" {
		t.Errorf("select value = %q, want stg-2", v)
	}
}

func TestLiveErrors(t *testing.T) {
	_, ts, _ := newTestServer(t)
	c := dial(t, ts, protocol.SubprotocolJSON, "")
	c.handshake()

	tests := []struct {
		name string
		send func()
		code string
	}{
		{
			name: "unknown group",
			send: func() {
				c.write(&protocol.Frame{
					Type:  protocol.FrameEvent,
					Event: &protocol.Event{Type: dashboard.EventSelectGroup, Value: "stg-9"},
				})
			},
			code: "L040",
		},
		{
			name: "unknown element",
			send: func() {
				c.write(&protocol.Frame{
					Type:  protocol.FrameEvent,
					Event: &protocol.Event{Type: "click", HID: "h999"},
				})
			},
			code: "L051",
		},
		{
			name: "malformed frame",
			send: func() {
				if err := c.conn.WriteMessage(websocket.TextMessage, []byte("{")); err != nil {
					t.Fatal(err)
				}
			},
			code: "L050",
		},
		{
			name: "server frame from client",
			send: func() { c.write(&protocol.Frame{Type: protocol.FramePatches}) },
			code: "L050",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.send()
			f := c.read()
			if f.Type != protocol.FrameError || f.Error == nil {
				t.Fatalf("frame = %s, want Error", f.Type)
			}
			if f.Error.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", f.Error.Code, tt.code, f.Error.Message)
			}
		})
	}
}

func TestLivePing(t *testing.T) {
	_, ts, _ := newTestServer(t)
	c := dial(t, ts, protocol.SubprotocolMsgpack, "")
	c.handshake()

	c.write(&protocol.Frame{Type: protocol.FramePing})
	if f := c.read(); f.Type != protocol.FramePong {
		t.Errorf("frame = %s, want Pong", f.Type)
	}
}

func TestLiveRefresh(t *testing.T) {
	srv, ts, catalog := newTestServer(t)
	c := dial(t, ts, protocol.SubprotocolJSON, "")
	c.handshake()

	groups := workload.Default()
	extra := groups[0]
	extra.ID, extra.Name = "stg-3", "3-Guruh"
	catalog.Replace(append(groups, extra))
	srv.Refresh()

	f := c.read()
	if f.Type != protocol.FramePatches {
		t.Fatalf("frame = %s, want Patches", f.Type)
	}
	p, ok := findPatch(f.Patches, "InsertNode", "")
	if !ok || !strings.Contains(p.HTML, "3-Guruh") || p.Index != 2 {
		t.Errorf("no insert of the new option at index 2 in %+v", f.Patches)
	}
}

func TestLiveDisconnect(t *testing.T) {
	srv, ts, _ := newTestServer(t)
	c := dial(t, ts, protocol.SubprotocolJSON, "")
	id := c.handshake()
	sess := srv.Sessions().Get(id)

	c.conn.Close()
	waitFor(t, "session removal", func() bool { return srv.Sessions().Count() == 0 })
	sess.Wait()
}

func TestLiveShutdown(t *testing.T) {
	srv, ts, _ := newTestServer(t)
	a := dial(t, ts, protocol.SubprotocolJSON, "")
	b := dial(t, ts, protocol.SubprotocolMsgpack, "")
	a.handshake()
	b.handshake()
	if n := srv.Sessions().Count(); n != 2 {
		t.Fatalf("Count() = %d, want 2", n)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatal(err)
	}
	if n := srv.Sessions().Count(); n != 0 {
		t.Errorf("Count() after Shutdown = %d, want 0", n)
	}

	a.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := a.conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("read after shutdown = %v, want normal closure", err)
	}

	// New connections are refused once the manager is shut down.
	d := websocket.Dialer{Subprotocols: []string{protocol.SubprotocolJSON}}
	conn, _, err := d.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/live", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("session opened after shutdown")
	}
}
