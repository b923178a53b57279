package tui

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/loadboard/pkg/charts"
	"github.com/vango-dev/loadboard/pkg/dashboard"
	"github.com/vango-dev/loadboard/pkg/keyed"
	"github.com/vango-dev/loadboard/pkg/middleware"
	"github.com/vango-dev/loadboard/pkg/workload"
)

// ReloadMsg asks the model to re-read the catalog.
type ReloadMsg struct{}

// Total is one category's yearly and per-quarter load.
type Total struct {
	Category workload.Category
	Year     float64
	Quarters [len(charts.Quarters)]float64
}

// Totals sums every category of d: distances in km, sport and maxsus in
// hours.
func Totals(d workload.Data) []Total {
	out := make([]Total, 0, len(workload.Categories))
	for _, c := range workload.Categories {
		t := Total{Category: c, Year: round1(d.Total(c))}
		for i, q := range charts.Quarters {
			t.Quarters[i] = round1(d.Range(c, q.Start, q.End))
		}
		out = append(out, t)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Options configures a Model.
type Options struct {
	Logger   *slog.Logger
	Observer keyed.Observer
	Tracer   trace.Tracer
}

// Model is the bubbletea model.
type Model struct {
	store  *workload.Store
	logger *slog.Logger
	tracer trace.Tracer

	groupRows *Rows[workload.Group]
	groups    *keyed.Queue[workload.Group, string, *Row]
	totalRows *Rows[Total]
	totals    *keyed.Queue[Total, workload.Category, *Row]

	groupStats keyed.Stats
	totalStats keyed.Stats

	cursor int
	keys   KeyMap
	help   help.Model
	styles Styles
	width  int
	err    error
}

// New creates a model over store and runs the first pass of both lists.
func New(store *workload.Store, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = middleware.Tracer()
	}
	listOpts := func(name string) []keyed.Option {
		o := []keyed.Option{keyed.WithName("tui/" + name), keyed.WithLogger(logger)}
		if opts.Observer != nil {
			o = append(o, keyed.WithObserver(opts.Observer))
		}
		return o
	}

	m := &Model{
		store:  store,
		logger: logger,
		tracer: tracer,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: DefaultStyles(),
	}
	m.groupRows = NewRows(func(ctx keyed.Context[workload.Group]) (string, string) {
		return ctx.Item.ID, ctx.Item.Name
	})
	m.totalRows = NewRows(formatTotal)
	m.groups = keyed.NewQueue(keyed.New[workload.Group, string, *Row](m.groupRows, listOpts("groups")...),
		m.queueError("tui/groups"))
	m.totals = keyed.NewQueue(keyed.New[Total, workload.Category, *Row](m.totalRows, listOpts("totals")...),
		m.queueError("tui/totals"))
	m.sync()
	return m
}

func (m *Model) queueError(list string) func(error) {
	return func(err error) {
		m.logger.Warn("keyed pass failed", "list", list, "error", err)
	}
}

func groupKey(_ int, g workload.Group) string { return g.ID }

// Reload reconciles the group rows with the catalog. It may be called from
// any goroutine; overlapping reloads collapse to the latest catalog. The
// program still needs a ReloadMsg to refresh the totals and the cursor.
func (m *Model) Reload() error {
	_, err := m.groups.Submit(m.store.Catalog().Snapshot(), groupKey)
	return err
}

func formatTotal(ctx keyed.Context[Total]) (string, string) {
	t := ctx.Item
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %8.1f", t.Category.Name(), t.Year)
	for _, q := range t.Quarters {
		fmt.Fprintf(&b, " %8.1f", q)
	}
	fmt.Fprintf(&b, " %s", t.Category.Unit())
	return string(t.Category), b.String()
}

// sync reconciles both lists with the store.
func (m *Model) sync() {
	ctx := context.Background()
	stats, err := middleware.TraceReconcile(ctx, m.tracer, "tui/groups", func() (keyed.Stats, error) {
		return m.groups.Submit(m.store.Catalog().Snapshot(), groupKey)
	})
	m.groupStats, m.err = stats, err
	if err != nil {
		m.logger.Warn("keyed pass failed", "list", "tui/groups", "error", err)
	}

	selected := m.store.Selected()
	stats, err = middleware.TraceReconcile(ctx, m.tracer, "tui/totals", func() (keyed.Stats, error) {
		return m.totals.Submit(Totals(selected.Data),
			func(_ int, t Total) workload.Category { return t.Category })
	})
	m.totalStats = stats
	if err != nil {
		m.err = err
		m.logger.Warn("keyed pass failed", "list", "tui/totals", "error", err)
	}

	m.cursor = 0
	for i, row := range m.groupRows.Rows() {
		if row.Key == selected.ID {
			m.cursor = i
		}
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case ReloadMsg:
		m.sync()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	rows := m.groupRows.Rows()
	next := m.cursor + delta
	if next < 0 || next >= len(rows) {
		return
	}
	m.store.Select(rows[next].Key)
	m.sync()
}

func (m *Model) View() string {
	s := m.styles

	var groups strings.Builder
	groups.WriteString(s.Header.Render(dashboard.SelectLabel))
	for i, row := range m.groupRows.Rows() {
		groups.WriteByte('\n')
		if i == m.cursor {
			groups.WriteString(s.Selected.Render("› " + row.Text))
		} else {
			groups.WriteString(s.Row.Render("  " + row.Text))
		}
	}

	var totals strings.Builder
	header := fmt.Sprintf("%-10s %8s", "", "Jami")
	for _, q := range charts.Quarters {
		header += fmt.Sprintf(" %8s", q.Name)
	}
	totals.WriteString(s.Header.Render(header))
	for _, row := range m.totalRows.Rows() {
		totals.WriteByte('\n')
		style := s.Category(workload.Category(row.Key))
		if row.Odd {
			style = style.Inherit(s.RowAlt)
		}
		totals.WriteString(style.Render(row.Text))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Box.Render(groups.String()),
		s.Box.Render(totals.String()),
	)
	footer := fmt.Sprintf("+%d −%d ~%d", m.totalStats.Created, m.totalStats.Destroyed, m.totalStats.Updated)

	parts := []string{
		s.Title.Render(dashboard.Heading),
		s.Subtitle.Render(dashboard.Subheading),
		body,
	}
	if m.err != nil {
		parts = append(parts, s.Error.Render(m.err.Error()))
	}
	parts = append(parts, s.Footer.Render(footer), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Stats returns the statistics of the latest group and totals passes.
func (m *Model) Stats() (groups, totals keyed.Stats) {
	return m.groupStats, m.totalStats
}

// Rows returns the rendered group and totals rows.
func (m *Model) Rows() (groups, totals []Row) {
	return m.groupRows.Rows(), m.totalRows.Rows()
}

// Close destroys every row.
func (m *Model) Close() {
	m.groups.List().Close()
	m.totals.List().Close()
}
