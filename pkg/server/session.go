package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/loadboard/internal/errors"
	"github.com/vango-dev/loadboard/pkg/dashboard"
	"github.com/vango-dev/loadboard/pkg/keyed"
	"github.com/vango-dev/loadboard/pkg/middleware"
	"github.com/vango-dev/loadboard/pkg/protocol"
	"github.com/vango-dev/loadboard/pkg/vango"
	"github.com/vango-dev/loadboard/pkg/vdom"
	"github.com/vango-dev/loadboard/pkg/workload"
)

// Session is one live connection and the page it drives.
type Session struct {
	ID string

	config  *Config
	conn    *websocket.Conn
	codec   protocol.Codec
	store   *workload.Store
	page    *dashboard.Page
	logger  *slog.Logger
	metrics *middleware.Metrics
	tracer  trace.Tracer

	events  chan *protocol.Event
	refresh chan struct{}
	done    chan struct{}

	// mu serializes data frames on conn.
	mu        sync.Mutex
	closeOnce sync.Once
	closed    atomic.Bool
	sendSeq   atomic.Uint64
	wg        sync.WaitGroup

	onClose func(*Session)
}

type sessionDeps struct {
	config  *Config
	catalog *workload.Catalog
	logger  *slog.Logger
	metrics *middleware.Metrics
	tracer  trace.Tracer
	onClose func(*Session)
}

// newSession builds the page for a new connection. A known group id in
// group is selected; anything else keeps the first group.
func newSession(conn *websocket.Conn, deps sessionDeps, group string) *Session {
	id := uuid.NewString()
	logger := deps.logger.With("session_id", id)

	store := workload.NewStore(deps.catalog)
	if _, ok := deps.catalog.Find(group); ok {
		store.Select(group)
	}
	opts := dashboard.Options{
		Logger:         logger,
		Name:           id,
		HighlightColor: deps.config.HighlightColor,
	}
	if deps.metrics != nil {
		opts.Observer = deps.metrics
	}

	conn.SetReadLimit(int64(deps.config.MaxMessageSize))
	return &Session{
		ID:      id,
		config:  deps.config,
		conn:    conn,
		codec:   protocol.ForSubprotocol(conn.Subprotocol(), deps.config.MaxMessageSize),
		store:   store,
		page:    dashboard.NewPage(store, opts),
		logger:  logger,
		metrics: deps.metrics,
		tracer:  deps.tracer,
		events:  make(chan *protocol.Event, deps.config.MaxEventQueue),
		refresh: make(chan struct{}, 1),
		done:    make(chan struct{}),
		onClose: deps.onClose,
	}
}

// Start sends the Hello frame and the full tree, then starts the session
// loops.
func (s *Session) Start() error {
	if err := s.send(&protocol.Frame{Type: protocol.FrameHello, Session: s.ID}); err != nil {
		s.abort()
		return err
	}
	// The page served over HTTP may predate a catalog reload, so the client
	// swaps in this session's tree before any patch refers to it.
	root := s.page.Root()
	if err := s.sendPatches([]vdom.Patch{{Op: vdom.PatchReplaceNode, HID: root.HID, Node: root}}); err != nil {
		s.abort()
		return err
	}

	s.wg.Add(3)
	go s.ReadLoop()
	go s.EventLoop()
	go s.PingLoop()
	return nil
}

func (s *Session) abort() {
	s.Close()
	s.page.Close()
	s.store.Close()
}

// ReadLoop decodes frames and queues events until the connection fails or
// the session closes.
func (s *Session) ReadLoop() {
	defer s.wg.Done()
	defer s.Close()

	idle := 2 * s.config.PingInterval
	s.conn.SetReadDeadline(time.Now().Add(idle))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(idle))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) && !s.closed.Load() {
				s.logger.Warn("read error", "error", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(idle))

		var frame protocol.Frame
		if err := s.codec.Decode(msg, &frame); err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.sendError(errors.New("L050").Wrap(err))
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			if frame.Event == nil {
				s.sendError(errors.New("L050").WithDetail("event frame without event"))
				continue
			}
			s.queueEvent(frame.Event)
		case protocol.FramePing:
			if err := s.send(&protocol.Frame{Type: protocol.FramePong}); err != nil {
				s.logger.Debug("pong error", "error", err)
			}
		case protocol.FramePong:
			s.logger.Debug("received pong")
		default:
			s.logger.Warn("unexpected frame", "type", frame.Type)
			s.sendError(errors.New("L050").WithDetail("client sent %s", frame.Type))
		}
	}
}

func (s *Session) queueEvent(e *protocol.Event) {
	select {
	case s.events <- e:
	default:
		s.metrics.Event(eventLabel(e.Type), ErrEventQueueFull)
		s.sendError(errors.New("L052").Wrap(ErrEventQueueFull))
	}
}

// EventLoop owns the page. It handles queued events and catalog refreshes
// and disposes the page on exit.
func (s *Session) EventLoop() {
	defer s.wg.Done()
	defer vango.Release()
	defer s.store.Close()
	defer s.page.Close()

	for {
		select {
		case e := <-s.events:
			s.handleEvent(e)
		case <-s.refresh:
			s.handleRefresh()
		case <-s.done:
			return
		}
	}
}

func (s *Session) handleEvent(e *protocol.Event) {
	err := middleware.TraceEvent(context.Background(), s.tracer, s.ID, e.Type, e.HID,
		func(context.Context) (n int, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &HandlerError{
						SessionID: s.ID,
						HID:       e.HID,
						EventType: e.Type,
						Panic:     r,
						Stack:     debug.Stack(),
					}
				}
			}()
			if err := s.page.HandleEvent(e.VDOMEvent()); err != nil {
				return 0, err
			}
			return s.flush()
		})
	s.metrics.Event(eventLabel(e.Type), err)
	if err == nil {
		return
	}

	var he *HandlerError
	if stderrors.As(err, &he) {
		s.logger.Error("handler panic", "hid", he.HID, "event", he.EventType,
			"panic", he.Panic, "stack", string(he.Stack))
	} else {
		s.logger.Info("event rejected", "event", e.Type, "hid", e.HID, "error", err)
	}
	s.sendError(err)
}

func (s *Session) handleRefresh() {
	_, err := middleware.TraceReconcile(context.Background(), s.tracer, "refresh",
		func() (keyed.Stats, error) {
			_, err := s.flush()
			_, panels := s.page.Stats()
			return panels, err
		})
	if err != nil && !stderrors.Is(err, ErrSessionClosed) {
		s.logger.Warn("refresh failed", "error", err)
	}
}

// flush sends the patches the page produced since the last flush.
func (s *Session) flush() (int, error) {
	patches := s.page.Flush()
	if len(patches) == 0 {
		return 0, nil
	}
	if err := s.sendPatches(patches); err != nil {
		return 0, err
	}
	return len(patches), nil
}

// Refresh asks the event loop to flush. It never blocks; refreshes that
// arrive while one is queued are merged.
func (s *Session) Refresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// PingLoop sends a websocket ping and a protocol Ping frame every
// PingInterval.
func (s *Session) PingLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.logger.Debug("ping failed", "error", err)
				s.Close()
				return
			}
			if err := s.send(&protocol.Frame{Type: protocol.FramePing}); err != nil {
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Session) sendPatches(patches []vdom.Patch) error {
	frame := &protocol.Frame{
		Type:    protocol.FramePatches,
		Seq:     s.sendSeq.Add(1),
		Patches: protocol.Patches(patches),
	}
	if err := s.send(frame); err != nil {
		return err
	}
	s.metrics.PatchesSent(len(patches))
	return nil
}

// sendError reports err to the client. *errors.Error values keep their
// code; anything else is sent without one.
func (s *Session) sendError(err error) {
	pe := &protocol.Error{Message: err.Error()}
	var le *errors.Error
	if stderrors.As(err, &le) {
		pe.Code = le.Code
		pe.Message = le.Message
		if le.Detail != "" {
			pe.Message += ": " + le.Detail
		}
	}
	if err := s.send(&protocol.Frame{Type: protocol.FrameError, Error: pe}); err != nil {
		s.logger.Debug("error frame not sent", "error", err)
	}
}

func (s *Session) send(f *protocol.Frame) error {
	data, err := s.codec.Encode(f)
	if err != nil {
		return &SessionError{SessionID: s.ID, Op: "encode", Err: err}
	}
	msgType := websocket.TextMessage
	if s.codec.Binary() {
		msgType = websocket.BinaryMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return ErrSessionClosed
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(msgType, data); err != nil {
		return &SessionError{SessionID: s.ID, Op: "write " + f.Type.String(), Err: err}
	}
	return nil
}

// Close stops the session loops and closes the connection. It is safe to
// call more than once and from any goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed.Store(true)
		s.mu.Unlock()
		close(s.done)

		deadline := time.Now().Add(time.Second)
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		s.conn.Close()

		s.logger.Debug("session closed")
		if s.onClose != nil {
			s.onClose(s)
		}
	})
}

// Wait blocks until the session loops have exited.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Page returns the session's page.
func (s *Session) Page() *dashboard.Page {
	return s.page
}

// eventLabel bounds the metric label space to the event types the page
// handles.
func eventLabel(t string) string {
	switch t {
	case "change", "pointerenter", "pointerleave", dashboard.EventSelectGroup:
		return t
	default:
		return "other"
	}
}
