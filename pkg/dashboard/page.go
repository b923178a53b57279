package dashboard

import (
	stderrors "errors"
	"io"
	"log/slog"
	"sync"

	"github.com/vango-dev/loadboard/internal/errors"
	"github.com/vango-dev/loadboard/pkg/charts"
	"github.com/vango-dev/loadboard/pkg/keyed"
	"github.com/vango-dev/loadboard/pkg/render"
	"github.com/vango-dev/loadboard/pkg/vango"
	"github.com/vango-dev/loadboard/pkg/vdom"
	"github.com/vango-dev/loadboard/pkg/workload"
)

// ErrClosed is returned by HandleEvent after Close.
var ErrClosed = stderrors.New("dashboard: page closed")

// EventSelectGroup selects the group named by the event value without going
// through an element handler.
const EventSelectGroup = "select-group"

// Page copy.
const (
	Heading     = "Yuklamalar monitoringi"
	Subheading  = "Haftalik mashg'ulot ma'lumotlarini vizualizatsiya qilish"
	SelectLabel = "Guruhni tanlang"
	SelectID    = "group-select"
)

// DefaultHighlight is the panel hover color.
const DefaultHighlight = "#eff6ff"

// Options configures a Page.
type Options struct {
	Logger *slog.Logger
	// Observer receives the statistics of every keyed pass.
	Observer keyed.Observer
	// Name prefixes the keyed list names, e.g. with a session id.
	Name           string
	HighlightColor string
	// MaxRounds bounds effect re-runs per Flush; <= 0 uses the vango
	// default.
	MaxRounds int
}

// Page is one viewer's dashboard.
type Page struct {
	mu     sync.Mutex
	store  *workload.Store
	owner  *vango.Owner
	gen    *vdom.HIDGenerator
	logger *slog.Logger
	rounds int

	root     *vdom.VNode
	selectEl *vdom.VNode
	panelsEl *vdom.VNode

	options   *vdom.Container[workload.Group]
	panels    *vdom.Container[charts.Panel]
	groupList *vango.ForList[workload.Group, string, *vdom.VNode]
	panelList *vango.ForList[charts.Panel, string, *vdom.VNode]
	highlight *Highlight

	// pending holds patches for the static part of the tree.
	pending  []vdom.Patch
	eventErr error
	closed   bool
}

// NewPage builds the tree for store and runs the first pass of every list.
// The initial tree is rendered with Render; Flush only reports later
// changes.
func NewPage(store *workload.Store, opts Options) *Page {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	color := opts.HighlightColor
	if color == "" {
		color = DefaultHighlight
	}

	p := &Page{
		store:  store,
		owner:  vango.NewOwner(nil),
		gen:    vdom.NewHIDGenerator(),
		logger: logger,
		rounds: opts.MaxRounds,
	}

	p.selectEl = vdom.Select(
		vdom.ID(SelectID),
		vdom.Class("group-select"),
		vdom.OnChange(p.onGroupChange),
	)
	p.panelsEl = vdom.Div(vdom.Class("panels"))
	p.root = vdom.Div(vdom.ID("app"), vdom.Class("dashboard"),
		vdom.Header(vdom.Class("dashboard-header"),
			vdom.H1(Heading),
			vdom.P(vdom.Class("subtitle"), Subheading),
		),
		vdom.Div(vdom.Class("group-picker"),
			vdom.Label(vdom.For(SelectID), SelectLabel),
			vdom.Div(vdom.Class("select-wrap"), p.selectEl),
		),
		p.panelsEl,
	)
	vdom.AssignHIDs(p.root, p.gen)

	p.options = vdom.NewContainer(p.selectEl, p.gen, p.renderOption)
	p.panels = vdom.NewContainer(p.panelsEl, p.gen, p.renderPanel)
	p.highlight = NewHighlight(color, p.panels)

	listOpts := func(name string) []keyed.Option {
		if opts.Name != "" {
			name = opts.Name + "/" + name
		}
		o := []keyed.Option{keyed.WithName(name), keyed.WithLogger(logger)}
		if opts.Observer != nil {
			o = append(o, keyed.WithObserver(opts.Observer))
		}
		return o
	}

	vango.WithOwner(p.owner, func() {
		p.groupList = vango.For(store.Groups, groupKey, p.options, listOpts("groups")...)
		p.panelList = vango.For(p.panelItems, panelKey, p.panels, listOpts("panels")...)
		vango.CreateEffect(p.syncSelectValue)
	})

	p.options.Drain()
	p.panels.Drain()
	p.pending = nil
	return p
}

func groupKey(_ int, g workload.Group) string { return g.ID }

func panelKey(_ int, pn charts.Panel) string { return pn.ID }

func (p *Page) panelItems() []charts.Panel {
	return charts.Panels(p.store.Selected().Data)
}

func (p *Page) renderOption(ctx keyed.Context[workload.Group], _ *vdom.Scope) *vdom.VNode {
	g := ctx.Item
	return vdom.Option(
		vdom.Key(g.ID),
		vdom.Value(g.ID),
		vdom.Selected(g.ID == p.store.Selected().ID),
		g.Name,
	)
}

func (p *Page) renderPanel(ctx keyed.Context[charts.Panel], scope *vdom.Scope) *vdom.VNode {
	pn := ctx.Item
	section := vdom.Section(
		vdom.Key(pn.ID),
		vdom.Class("panel"),
		vdom.Data("panel", pn.ID),
		vdom.H2(vdom.Class("panel-title"), pn.Title),
	)
	for _, c := range pn.Charts {
		option, err := c.JSON()
		if err != nil {
			p.logger.Error("encode chart option", "chart", c.ID, "error", err)
			continue
		}
		section.Children = append(section.Children, vdom.Div(
			vdom.Class(c.Class),
			vdom.Data("chart", c.ID),
			vdom.Data("option", option),
			vdom.Role("img"),
			vdom.AriaLabel(c.AriaLabel),
		))
	}
	p.highlight.Attach(section, scope)
	return section
}

// syncSelectValue keeps the select's value on the selected group.
func (p *Page) syncSelectValue() vango.Cleanup {
	id := p.store.Selected().ID
	if cur, _ := p.selectEl.Props["value"].(string); cur == id {
		return nil
	}
	p.selectEl.Props["value"] = id
	p.pending = append(p.pending, vdom.Patch{
		Op:    vdom.PatchSetAttr,
		HID:   p.selectEl.HID,
		Key:   "value",
		Value: id,
	})
	return nil
}

func (p *Page) onGroupChange(e vdom.Event) {
	p.eventErr = p.selectGroup(e.Value)
}

func (p *Page) selectGroup(id string) error {
	if _, err := p.store.Catalog().Get(id); err != nil {
		return err
	}
	p.store.Select(id)
	p.logger.Debug("group selected", "group", id)
	return nil
}

// HandleEvent dispatches a client event to the handler registered on the
// target element. Selecting an unknown group returns an L040 error; events
// no element handles return L051.
func (p *Page) HandleEvent(e vdom.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if e.Type == EventSelectGroup {
		return p.selectGroup(e.Value)
	}

	node := p.root.Find(e.HID)
	if node == nil {
		return errors.New("L051").WithDetail("%s on unknown element %q", e.Type, e.HID)
	}
	h, ok := node.Handler(e.Type)
	if !ok {
		return errors.New("L051").WithDetail("element %q does not handle %s", e.HID, e.Type)
	}

	p.eventErr = nil
	h(e)
	err := p.eventErr
	p.eventErr = nil
	return err
}

// Flush runs pending effects and returns the patches produced since the
// last Flush.
func (p *Page) Flush() []vdom.Patch {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.owner.RunPendingEffects(p.rounds)
	if err := p.groupList.Err(); err != nil {
		p.logger.Warn("keyed pass failed", "list", "groups", "error", err)
	}
	if err := p.panelList.Err(); err != nil {
		p.logger.Warn("keyed pass failed", "list", "panels", "error", err)
	}

	out := p.options.Drain()
	out = append(out, p.pending...)
	p.pending = nil
	return append(out, p.panels.Drain()...)
}

// Dirty reports whether Flush has work to do.
func (p *Page) Dirty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed && (p.owner.HasPendingEffects() || len(p.pending) > 0 ||
		p.options.Pending() > 0 || p.panels.Pending() > 0)
}

// Render writes the full document for the current tree.
func (p *Page) Render(w io.Writer, opts render.PageOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return render.Renderer{}.RenderPage(w, p.root, opts)
}

// Root returns the page tree. Callers must not mutate it.
func (p *Page) Root() *vdom.VNode { return p.root }

// SelectHID returns the HID of the group select.
func (p *Page) SelectHID() string { return p.selectEl.HID }

// Highlight returns the panel highlight.
func (p *Page) Highlight() *Highlight { return p.highlight }

// Stats returns the statistics of the latest group and panel passes.
func (p *Page) Stats() (groups, panels keyed.Stats) {
	return p.groupList.Stats(), p.panelList.Stats()
}

// Close disposes the page's reactive scope, destroying every view.
func (p *Page) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()
	p.owner.Dispose()
}
