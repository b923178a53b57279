package keyed

// Context is the binding context pushed into a view.
type Context[T any] struct {
	Item  T
	Index int
	Count int
	First bool
	Last  bool
	Even  bool
	Odd   bool
}

// NewContext derives the positional flags for item at index in a sequence of
// count items.
func NewContext[T any](item T, index, count int) Context[T] {
	even := index%2 == 0
	return Context[T]{
		Item:  item,
		Index: index,
		Count: count,
		First: index == 0,
		Last:  index == count-1,
		Even:  even,
		Odd:   !even,
	}
}
