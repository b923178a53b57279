package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/loadboard/pkg/vdom"
)

func TestCodecs(t *testing.T) {
	frame := &Frame{
		Type: FrameEvent,
		Seq:  3,
		Event: &Event{
			Type:  "change",
			HID:   "h4",
			Value: "stg-2",
		},
	}
	for _, name := range Subprotocols() {
		t.Run(name, func(t *testing.T) {
			c := ForSubprotocol(name, 0)
			if c.Subprotocol() != name {
				t.Errorf("Subprotocol() = %q, want %q", c.Subprotocol(), name)
			}
			data, err := c.Encode(frame)
			if err != nil {
				t.Fatal(err)
			}
			var got Frame
			if err := c.Decode(data, &got); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(frame, &got); diff != "" {
				t.Errorf("frame mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestForSubprotocolFallback(t *testing.T) {
	if c := ForSubprotocol("", 0); c.Binary() {
		t.Error("empty subprotocol should select the JSON codec")
	}
	if c := ForSubprotocol(SubprotocolMsgpack, 0); !c.Binary() {
		t.Error("msgpack codec should be binary")
	}
}

func TestDecodeErrors(t *testing.T) {
	c := &JSONCodec{MaxSize: 16}
	var f Frame

	err := c.Decode(bytes.Repeat([]byte("x"), 17), &f)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
	if err := c.Decode([]byte(`{"t":1}`), &f); !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed for event without payload", err)
	}
	if err := c.Decode([]byte(`{"t":99}`), &f); !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed for unknown type", err)
	}
	if err := c.Decode([]byte(`{`), &f); !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed for bad json", err)
	}
}

func TestPatches(t *testing.T) {
	node := vdom.Option(vdom.Value("stg-1"), "1-Guruh")
	node.HID = "h7"

	got := Patches([]vdom.Patch{
		{Op: vdom.PatchInsertNode, ParentID: "h2", Index: 1, Node: node},
		{Op: vdom.PatchSetStyle, HID: "h9", Key: "background-color", Value: "yellow"},
	})

	want := []Patch{
		{Op: "InsertNode", Parent: "h2", Index: 1, HTML: `<option value="stg-1" data-hid="h7">1-Guruh</option>`},
		{Op: "SetStyle", HID: "h9", Key: "background-color", Value: "yellow"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Patches mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameTypeString(t *testing.T) {
	if FramePatches.String() != "Patches" || FrameType(42).String() != "Unknown" {
		t.Error("unexpected FrameType names")
	}
}
