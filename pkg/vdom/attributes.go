package vdom

import "strings"

func attr(key string, value any) Attr { return Attr{Key: key, Value: value} }

// Key sets the reconciliation key.
func Key(key string) Attr { return attr("key", key) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class joins classes into the class attribute.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets aria-label.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets aria-hidden.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }

// For sets the for attribute of a label.
func For(id string) Attr { return attr("for", id) }

// Value sets the value attribute.
func Value(v string) Attr { return attr("value", v) }

// Selected sets the selected boolean attribute.
func Selected(on bool) Attr { return attr("selected", on) }

// Name sets the name attribute.
func Name(v string) Attr { return attr("name", v) }

// Content sets the content attribute.
func Content(v string) Attr { return attr("content", v) }

// Charset sets the charset attribute.
func Charset(v string) Attr { return attr("charset", v) }

// Src sets the src attribute.
func Src(v string) Attr { return attr("src", v) }

// Type sets the type attribute.
func Type(v string) Attr { return attr("type", v) }

// Lang sets the lang attribute.
func Lang(v string) Attr { return attr("lang", v) }
