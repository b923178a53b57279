package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Subprotocol names.
const (
	SubprotocolMsgpack = "loadboard.msgpack"
	SubprotocolJSON    = "loadboard.json"
)

// DefaultMaxMessageSize bounds decoded messages.
const DefaultMaxMessageSize = 64 * 1024

var (
	ErrTooLarge  = errors.New("protocol: message too large")
	ErrMalformed = errors.New("protocol: malformed frame")
)

// Codec encodes frames for one subprotocol.
type Codec interface {
	// Subprotocol returns the websocket subprotocol name.
	Subprotocol() string
	// Binary reports whether frames travel as binary messages.
	Binary() bool
	Encode(f *Frame) ([]byte, error)
	Decode(data []byte, f *Frame) error
}

// Subprotocols lists the supported subprotocols in preference order.
func Subprotocols() []string {
	return []string{SubprotocolMsgpack, SubprotocolJSON}
}

// ForSubprotocol returns the codec for name. Unknown or empty names fall back
// to JSON so plain websocket clients can connect.
func ForSubprotocol(name string, maxSize int) Codec {
	if name == SubprotocolMsgpack {
		return &MsgpackCodec{MaxSize: maxSize}
	}
	return &JSONCodec{MaxSize: maxSize}
}

// MsgpackCodec is the binary codec.
type MsgpackCodec struct {
	MaxSize int
}

func (c *MsgpackCodec) Subprotocol() string { return SubprotocolMsgpack }
func (c *MsgpackCodec) Binary() bool        { return true }

func (c *MsgpackCodec) Encode(f *Frame) ([]byte, error) {
	b, err := msgpack.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", f.Type, err)
	}
	return b, nil
}

func (c *MsgpackCodec) Decode(data []byte, f *Frame) error {
	if err := checkSize(data, c.MaxSize); err != nil {
		return err
	}
	if err := msgpack.Unmarshal(data, f); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return validate(f)
}

// JSONCodec is the text codec.
type JSONCodec struct {
	MaxSize int
}

func (c *JSONCodec) Subprotocol() string { return SubprotocolJSON }
func (c *JSONCodec) Binary() bool        { return false }

func (c *JSONCodec) Encode(f *Frame) ([]byte, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", f.Type, err)
	}
	return b, nil
}

func (c *JSONCodec) Decode(data []byte, f *Frame) error {
	if err := checkSize(data, c.MaxSize); err != nil {
		return err
	}
	if err := json.Unmarshal(data, f); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return validate(f)
}

func checkSize(data []byte, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxMessageSize
	}
	if len(data) > limit {
		return fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(data), limit)
	}
	return nil
}

func validate(f *Frame) error {
	switch f.Type {
	case FrameEvent:
		if f.Event == nil || f.Event.Type == "" {
			return fmt.Errorf("%w: event frame without event", ErrMalformed)
		}
	case FramePatches, FrameHello, FrameError, FramePing, FramePong:
	default:
		return fmt.Errorf("%w: unknown frame type %d", ErrMalformed, f.Type)
	}
	return nil
}
