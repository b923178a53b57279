package vdom

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText     PatchOp = 0x01
	PatchSetAttr     PatchOp = 0x02
	PatchRemoveAttr  PatchOp = 0x03
	PatchInsertNode  PatchOp = 0x04
	PatchRemoveNode  PatchOp = 0x05
	PatchMoveNode    PatchOp = 0x06
	PatchReplaceNode PatchOp = 0x07
	PatchSetStyle    PatchOp = 0x13
	PatchRemoveStyle PatchOp = 0x14
)

// String returns the op name.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchMoveNode:
		return "MoveNode"
	case PatchReplaceNode:
		return "ReplaceNode"
	case PatchSetStyle:
		return "SetStyle"
	case PatchRemoveStyle:
		return "RemoveStyle"
	default:
		return "Unknown"
	}
}

// Patch is a single DOM operation.
type Patch struct {
	Op       PatchOp
	HID      string // target element
	Key      string // attribute or style property
	Value    string
	Node     *VNode // InsertNode, ReplaceNode
	Index    int    // InsertNode, MoveNode
	ParentID string // InsertNode, MoveNode
}

// PatchSink collects patches produced outside a diff, e.g. by event
// handlers.
type PatchSink interface {
	Emit(p ...Patch)
}
