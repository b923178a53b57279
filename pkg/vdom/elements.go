package vdom

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether tag cannot have children.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element. Arguments may be nil, Attr, []Attr, EventHandler,
// *VNode, []*VNode or string (a text child).
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		case EventHandler:
			node.Props["on"+v.Event] = v.Handler
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}
	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
		return
	}
	v.Props[a.Key] = a.Value
}

func Html(args ...any) *VNode    { return El("html", args...) }
func Head(args ...any) *VNode    { return El("head", args...) }
func Body(args ...any) *VNode    { return El("body", args...) }
func Title(args ...any) *VNode   { return El("title", args...) }
func Meta(args ...any) *VNode    { return El("meta", args...) }
func Script(args ...any) *VNode  { return El("script", args...) }
func Header(args ...any) *VNode  { return El("header", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Div(args ...any) *VNode     { return El("div", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func H3(args ...any) *VNode      { return El("h3", args...) }
func P(args ...any) *VNode       { return El("p", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func Strong(args ...any) *VNode  { return El("strong", args...) }
func Label(args ...any) *VNode   { return El("label", args...) }
func Select(args ...any) *VNode  { return El("select", args...) }
func Option(args ...any) *VNode  { return El("option", args...) }
func Ul(args ...any) *VNode      { return El("ul", args...) }
func Li(args ...any) *VNode      { return El("li", args...) }
func Table(args ...any) *VNode   { return El("table", args...) }
func Tr(args ...any) *VNode      { return El("tr", args...) }
func Td(args ...any) *VNode      { return El("td", args...) }
func Th(args ...any) *VNode      { return El("th", args...) }
