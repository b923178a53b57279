package vdom

import "testing"

func hids(node *VNode) *VNode {
	AssignHIDs(node, NewHIDGenerator())
	return node
}

func TestDiffNodeRemoved(t *testing.T) {
	prev := hids(Div())

	patches := Diff(prev, nil)

	if len(patches) != 1 {
		t.Fatalf("len(patches) = %d, want 1", len(patches))
	}
	if patches[0].Op != PatchRemoveNode || patches[0].HID != "h1" {
		t.Errorf("patch = %+v, want RemoveNode h1", patches[0])
	}
}

func TestDiffTextUsesParentHID(t *testing.T) {
	prev := hids(Span("Aerob"))
	next := Span("Aralash")

	patches := Diff(prev, next)

	if len(patches) != 1 {
		t.Fatalf("len(patches) = %d, want 1", len(patches))
	}
	p := patches[0]
	if p.Op != PatchSetText || p.HID != "h1" || p.Value != "Aralash" {
		t.Errorf("patch = %+v, want SetText h1 Aralash", p)
	}
	if next.HID != "h1" {
		t.Errorf("next.HID = %q, want h1", next.HID)
	}
}

func TestDiffTagChangeReplaces(t *testing.T) {
	prev := hids(Div())
	next := Span()

	patches := Diff(prev, next)

	if len(patches) != 1 || patches[0].Op != PatchReplaceNode {
		t.Fatalf("patches = %+v, want one ReplaceNode", patches)
	}
	if patches[0].Node != next {
		t.Error("ReplaceNode should carry the next node")
	}
}

func TestDiffProps(t *testing.T) {
	prev := hids(Option(Value("stg-1"), Selected(true), Class("a")))
	next := Option(Value("stg-1"), Selected(false), Data("x", "1"))

	patches := Diff(prev, next)

	got := map[string]PatchOp{}
	for _, p := range patches {
		got[p.Key] = p.Op
	}
	want := map[string]PatchOp{
		"selected": PatchRemoveAttr,
		"class":    PatchRemoveAttr,
		"data-x":   PatchSetAttr,
	}
	if len(got) != len(want) {
		t.Fatalf("patches = %+v", patches)
	}
	for k, op := range want {
		if got[k] != op {
			t.Errorf("%s: op = %v, want %v", k, got[k], op)
		}
	}
}

func TestDiffIgnoresHandlers(t *testing.T) {
	prev := hids(Div(OnClick(func(Event) {})))
	next := Div(OnClick(func(Event) {}))

	if patches := Diff(prev, next); len(patches) != 0 {
		t.Errorf("patches = %+v, want none", patches)
	}
}

func TestDiffKeyedChildren(t *testing.T) {
	prev := hids(Ul(
		Li(Key("a"), "a"),
		Li(Key("b"), "b"),
		Li(Key("c"), "c"),
	))
	next := Ul(
		Li(Key("c"), "c"),
		Li(Key("a"), "a"),
		Li(Key("d"), "d"),
	)

	patches := Diff(prev, next)

	var removes, moves, inserts int
	for _, p := range patches {
		switch p.Op {
		case PatchRemoveNode:
			removes++
			if p.HID != prev.Children[1].HID {
				t.Errorf("removed %s, want b", p.HID)
			}
		case PatchMoveNode:
			moves++
		case PatchInsertNode:
			inserts++
			if p.Index != 2 {
				t.Errorf("insert index = %d, want 2", p.Index)
			}
		}
	}
	if removes != 1 || moves != 2 || inserts != 1 {
		t.Errorf("removes=%d moves=%d inserts=%d, want 1 2 1", removes, moves, inserts)
	}
	if patches[0].Op != PatchRemoveNode {
		t.Errorf("first patch = %v, want RemoveNode", patches[0].Op)
	}
}

func TestDiffUnkeyedChildren(t *testing.T) {
	prev := hids(Ul(Li("a"), Li("b")))
	next := Ul(Li("a"))

	patches := Diff(prev, next)

	if len(patches) != 1 || patches[0].Op != PatchRemoveNode {
		t.Fatalf("patches = %+v, want one RemoveNode", patches)
	}
}

func TestPropString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"x", "x"},
		{true, ""},
		{false, "false"},
		{42, "42"},
		{int64(7), "7"},
		{12.5, "12.5"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := PropString(tt.in); got != tt.want {
			t.Errorf("PropString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
