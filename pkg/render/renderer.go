package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/vango-dev/loadboard/pkg/vdom"
)

// Renderer writes VNode trees as HTML.
type Renderer struct {
	// Pretty indents block elements. For development only.
	Pretty bool
}

// RenderToString renders node to a string.
func (r Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render writes node to w.
func (r Renderer) Render(w io.Writer, node *vdom.VNode) error {
	bw := bufio.NewWriter(w)
	if err := r.node(bw, node, 0); err != nil {
		return err
	}
	return bw.Flush()
}

// HTML renders node, returning an empty string on failure. Used for patch
// payloads where the tree is known to be well formed.
func HTML(node *vdom.VNode) string {
	s, err := Renderer{}.RenderToString(node)
	if err != nil {
		return ""
	}
	return s
}

func (r Renderer) node(w *bufio.Writer, n *vdom.VNode, depth int) error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case vdom.KindElement:
		return r.element(w, n, depth)
	case vdom.KindText:
		_, err := w.WriteString(EscapeHTML(n.Text))
		return err
	case vdom.KindRaw:
		_, err := w.WriteString(n.Text)
		return err
	case vdom.KindFragment:
		for _, c := range n.Children {
			if err := r.node(w, c, depth); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("render: unknown node kind %d", n.Kind)
	}
}

func (r Renderer) element(w *bufio.Writer, n *vdom.VNode, depth int) error {
	if r.Pretty && depth > 0 {
		r.indent(w, depth)
	}
	w.WriteByte('<')
	w.WriteString(n.Tag)
	writeAttrs(w, n)
	w.WriteByte('>')

	if vdom.IsVoidElement(n.Tag) {
		if r.Pretty {
			w.WriteByte('\n')
		}
		return nil
	}

	block := r.Pretty && hasElementChildren(n)
	if block {
		w.WriteByte('\n')
	}
	for _, c := range n.Children {
		if err := r.node(w, c, depth+1); err != nil {
			return err
		}
	}
	if block {
		r.indent(w, depth)
	}
	w.WriteString("</")
	w.WriteString(n.Tag)
	_, err := w.WriteString(">")
	if r.Pretty {
		w.WriteByte('\n')
	}
	return err
}

// writeAttrs writes attributes in sorted order so output is stable.
func writeAttrs(w *bufio.Writer, n *vdom.VNode) {
	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		if len(k) > 2 && strings.EqualFold(k[:2], "on") {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		v := n.Props[k]
		if b, ok := v.(bool); ok {
			if b {
				w.WriteByte(' ')
				w.WriteString(k)
			}
			continue
		}
		if v == nil {
			continue
		}
		fmt.Fprintf(w, ` %s="%s"`, k, EscapeAttr(vdom.PropString(v)))
	}
	if n.Key != "" {
		fmt.Fprintf(w, ` data-key="%s"`, EscapeAttr(n.Key))
	}
	if n.HID != "" {
		fmt.Fprintf(w, ` data-hid="%s"`, n.HID)
	}
	events := n.Events()
	slices.Sort(events)
	for _, e := range events {
		fmt.Fprintf(w, ` data-on-%s`, e)
	}
}

func hasElementChildren(n *vdom.VNode) bool {
	for _, c := range n.Children {
		if c.Kind == vdom.KindElement {
			return true
		}
	}
	return false
}

func (r Renderer) indent(w *bufio.Writer, depth int) {
	for range depth {
		w.WriteString("  ")
	}
}
