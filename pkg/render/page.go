package render

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/vango-dev/loadboard/pkg/vdom"
)

// PageOptions configures the document shell.
type PageOptions struct {
	Title     string
	Lang      string
	ClientSrc string // URL of the live client script
	LiveURL   string // websocket endpoint; empty disables the live session
	State     any    // serialized into window.__LOADBOARD__
	Styles    []string
	// Scripts are external scripts loaded, deferred, before the client.
	Scripts []string
}

// RenderPage writes a complete HTML document with body as the content of
// <body>. The state is embedded as JSON for the client; encoding/json
// escapes '<' so the payload cannot close the script element.
func (r Renderer) RenderPage(w io.Writer, body *vdom.VNode, opts PageOptions) error {
	lang := opts.Lang
	if lang == "" {
		lang = "uz"
	}
	state, err := json.Marshal(opts.State)
	if err != nil {
		return fmt.Errorf("render: encode page state: %w", err)
	}

	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
		vdom.Title(opts.Title),
		vdom.Script(vdom.Raw("window.__LOADBOARD__="+string(state)+";")),
	)
	for _, css := range opts.Styles {
		head.Children = append(head.Children, vdom.El("style", vdom.Raw(css)))
	}
	for _, src := range append(slices.Clip(opts.Scripts), opts.ClientSrc) {
		if src == "" {
			continue
		}
		head.Children = append(head.Children, vdom.Script(
			vdom.Src(src),
			vdom.Attr{Key: "defer", Value: true},
		))
	}
	attrs := []vdom.Attr{vdom.Lang(lang)}
	if opts.LiveURL != "" {
		attrs = append(attrs, vdom.Data("live", opts.LiveURL))
	}
	doc := vdom.Html(attrs, head, vdom.Body(body))

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return r.Render(w, doc)
}
