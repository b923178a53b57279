// Package protocol defines the frames exchanged with the live client.
//
// A frame is one websocket message. Two codecs exist: msgpack in binary
// messages and JSON in text messages. The client picks one through the
// websocket subprotocol, loadboard.msgpack or loadboard.json.
//
//	Server → Client: Hello, Patches, Error, Ping
//	Client → Server: Event, Pong
package protocol
