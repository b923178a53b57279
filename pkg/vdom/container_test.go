package vdom

import (
	"slices"
	"testing"

	"github.com/vango-dev/loadboard/pkg/keyed"
)

type row struct {
	ID    string
	Label string
}

func newRows(t *testing.T) (*Container[row], *keyed.List[row, string, *VNode], *int) {
	t.Helper()
	released := new(int)
	parent := Ul()
	c := NewContainer(parent, NewHIDGenerator(), func(ctx keyed.Context[row], scope *Scope) *VNode {
		scope.OnCleanup(func() { *released++ })
		cls := "odd"
		if ctx.Even {
			cls = "even"
		}
		return Li(Class(cls), Data("id", ctx.Item.ID), ctx.Item.Label)
	})
	l := keyed.New[row, string, *VNode](c)
	return c, l, released
}

func byID(_ int, r row) string { return r.ID }

func labels(c *Container[row]) []string {
	var out []string
	for _, n := range c.Parent().Children {
		out = append(out, n.Children[0].Text)
	}
	return out
}

func TestContainerCreate(t *testing.T) {
	c, l, _ := newRows(t)

	if _, err := l.Reconcile([]row{{"a", "A"}, {"b", "B"}}, byID); err != nil {
		t.Fatal(err)
	}

	if got := labels(c); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("children = %v, want [A B]", got)
	}
	patches := c.Drain()
	if len(patches) != 2 {
		t.Fatalf("len(patches) = %d, want 2", len(patches))
	}
	for i, p := range patches {
		if p.Op != PatchInsertNode || p.Index != i || p.ParentID != c.Parent().HID {
			t.Errorf("patch %d = %+v", i, p)
		}
		if p.Node.HID == "" {
			t.Errorf("patch %d node has no HID", i)
		}
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d after Drain", c.Pending())
	}
}

func TestContainerReorderKeepsViews(t *testing.T) {
	c, l, released := newRows(t)
	l.Reconcile([]row{{"a", "A"}, {"b", "B"}, {"c", "C"}}, byID)
	a, _ := l.View("a")
	hid := a.HID
	c.Drain()

	stats, err := l.Reconcile([]row{{"c", "C"}, {"a", "A2"}}, byID)
	if err != nil {
		t.Fatal(err)
	}

	if stats.Created != 0 || stats.Destroyed != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if got := labels(c); !slices.Equal(got, []string{"C", "A2"}) {
		t.Errorf("children = %v, want [C A2]", got)
	}
	a2, _ := l.View("a")
	if a2 != a || a2.HID != hid {
		t.Error("view identity or HID changed across passes")
	}
	if *released != 3 {
		t.Errorf("released = %d, want 3", *released)
	}

	var ops []PatchOp
	for _, p := range c.Drain() {
		ops = append(ops, p.Op)
	}
	if ops[0] != PatchRemoveNode {
		t.Errorf("first op = %v, want RemoveNode", ops[0])
	}
	if !slices.Contains(ops, PatchSetText) || !slices.Contains(ops, PatchSetAttr) {
		t.Errorf("ops = %v, want SetText and SetAttr from re-binding a", ops)
	}
}

func TestContainerClose(t *testing.T) {
	c, l, _ := newRows(t)
	l.Reconcile([]row{{"a", "A"}, {"b", "B"}}, byID)
	l.Close()

	if len(c.Parent().Children) != 0 {
		t.Errorf("children left after Close: %d", len(c.Parent().Children))
	}
	if c.Live() != 0 {
		t.Errorf("Live() = %d, want 0", c.Live())
	}
}

func TestContainerMoveClamps(t *testing.T) {
	c, l, _ := newRows(t)
	l.Reconcile([]row{{"a", "A"}, {"b", "B"}}, byID)
	a, _ := l.View("a")

	c.MoveView(a, 10)

	if c.IndexOf(a) != 1 {
		t.Errorf("IndexOf(a) = %d, want 1", c.IndexOf(a))
	}
	if c.IndexOf(Li()) != -1 {
		t.Error("IndexOf(unknown) should be -1")
	}
}
