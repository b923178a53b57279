// Package render writes VNode trees as HTML.
//
// Elements that carry a HID get a data-hid attribute so the live client can
// address them, and every event the node listens to is announced with a
// data-on-<event> attribute. Handlers themselves never leave the server.
package render
