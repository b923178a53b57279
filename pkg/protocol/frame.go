package protocol

import (
	"github.com/vango-dev/loadboard/pkg/render"
	"github.com/vango-dev/loadboard/pkg/vdom"
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameHello   FrameType = 0x00 // session established
	FrameEvent   FrameType = 0x01 // client → server event
	FramePatches FrameType = 0x02 // server → client patch batch
	FrameError   FrameType = 0x05
	FramePing    FrameType = 0x06
	FramePong    FrameType = 0x07
)

// String returns the frame type name.
func (ft FrameType) String() string {
	switch ft {
	case FrameHello:
		return "Hello"
	case FrameEvent:
		return "Event"
	case FramePatches:
		return "Patches"
	case FrameError:
		return "Error"
	case FramePing:
		return "Ping"
	case FramePong:
		return "Pong"
	default:
		return "Unknown"
	}
}

// Frame is one message on the live connection.
type Frame struct {
	Type    FrameType `msgpack:"t" json:"t"`
	Seq     uint64    `msgpack:"s,omitempty" json:"s,omitempty"`
	Session string    `msgpack:"sid,omitempty" json:"sid,omitempty"`
	Patches []Patch   `msgpack:"p,omitempty" json:"p,omitempty"`
	Event   *Event    `msgpack:"e,omitempty" json:"e,omitempty"`
	Error   *Error    `msgpack:"err,omitempty" json:"err,omitempty"`
}

// Patch is the wire form of a vdom.Patch. Inserted and replacement nodes
// travel as rendered HTML.
type Patch struct {
	Op     string `msgpack:"op" json:"op"`
	HID    string `msgpack:"hid,omitempty" json:"hid,omitempty"`
	Key    string `msgpack:"key,omitempty" json:"key,omitempty"`
	Value  string `msgpack:"val,omitempty" json:"val,omitempty"`
	Index  int    `msgpack:"idx,omitempty" json:"idx,omitempty"`
	Parent string `msgpack:"par,omitempty" json:"par,omitempty"`
	HTML   string `msgpack:"html,omitempty" json:"html,omitempty"`
}

// Event is a DOM event forwarded by the client.
type Event struct {
	Type  string `msgpack:"type" json:"type"`
	HID   string `msgpack:"hid" json:"hid"`
	Value string `msgpack:"value,omitempty" json:"value,omitempty"`
}

// Error reports a failure to the peer.
type Error struct {
	Code    string `msgpack:"code" json:"code"`
	Message string `msgpack:"msg" json:"msg"`
}

// Patches converts vdom patches to their wire form.
func Patches(ps []vdom.Patch) []Patch {
	out := make([]Patch, 0, len(ps))
	for _, p := range ps {
		wp := Patch{
			Op:     p.Op.String(),
			HID:    p.HID,
			Key:    p.Key,
			Value:  p.Value,
			Index:  p.Index,
			Parent: p.ParentID,
		}
		if p.Node != nil {
			wp.HTML = render.HTML(p.Node)
		}
		out = append(out, wp)
	}
	return out
}

// VDOMEvent converts a wire event.
func (e *Event) VDOMEvent() vdom.Event {
	return vdom.Event{Type: e.Type, HID: e.HID, Value: e.Value}
}
