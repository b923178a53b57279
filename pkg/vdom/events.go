package vdom

// Event is a browser event forwarded to the server.
type Event struct {
	Type  string
	HID   string
	Value string
}

// Handler reacts to an event on its element.
type Handler func(Event)

// EventHandler binds a Handler to an event name without the "on" prefix.
type EventHandler struct {
	Event   string
	Handler Handler
}

// On binds handler to name.
func On(name string, handler Handler) EventHandler {
	return EventHandler{Event: name, Handler: handler}
}

// OnChange handles change events.
func OnChange(handler Handler) EventHandler { return On("change", handler) }

// OnClick handles click events.
func OnClick(handler Handler) EventHandler { return On("click", handler) }

// OnPointerEnter handles pointerenter events.
func OnPointerEnter(handler Handler) EventHandler { return On("pointerenter", handler) }

// OnPointerLeave handles pointerleave events.
func OnPointerLeave(handler Handler) EventHandler { return On("pointerleave", handler) }
