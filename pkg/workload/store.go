package workload

import (
	"slices"

	"github.com/vango-dev/loadboard/internal/errors"
	"github.com/vango-dev/loadboard/pkg/vango"
)

// ErrGroupNotFound matches lookups of unknown group ids with errors.Is.
var ErrGroupNotFound = errors.New("L040")

// Catalog is the process-wide list of groups. It is safe for concurrent use;
// reactive readers in any goroutine are notified on Replace.
type Catalog struct {
	groups *vango.Signal[[]Group]
}

// NewCatalog creates a catalog holding groups.
func NewCatalog(groups []Group) *Catalog {
	return &Catalog{groups: vango.NewSignal(slices.Clone(groups))}
}

// Groups returns the groups and subscribes the current listener.
func (c *Catalog) Groups() []Group {
	return c.groups.Get()
}

// Snapshot returns the groups without subscribing.
func (c *Catalog) Snapshot() []Group {
	return c.groups.Peek()
}

// Find returns the group with id.
func (c *Catalog) Find(id string) (Group, bool) {
	for _, g := range c.groups.Peek() {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// Get is Find returning ErrGroupNotFound for unknown ids.
func (c *Catalog) Get(id string) (Group, error) {
	g, ok := c.Find(id)
	if !ok {
		return Group{}, errors.New("L040").WithDetail("%q", id)
	}
	return g, nil
}

// Replace swaps the group list. Identical lists do not notify.
func (c *Catalog) Replace(groups []Group) {
	c.groups.Set(slices.Clone(groups))
}

// Store is one viewer's state over a Catalog: the shared groups and a
// private selection.
type Store struct {
	catalog    *Catalog
	selectedID *vango.Signal[string]
	selected   *vango.Memo[Group]
}

// NewStore selects the first group of catalog.
func NewStore(catalog *Catalog) *Store {
	initial := ""
	if gs := catalog.Snapshot(); len(gs) > 0 {
		initial = gs[0].ID
	}
	s := &Store{
		catalog:    catalog,
		selectedID: vango.NewSignal(initial),
	}
	s.selected = vango.NewMemo(func() Group {
		id := s.selectedID.Get()
		groups := s.catalog.Groups()
		for _, g := range groups {
			if g.ID == id {
				return g
			}
		}
		if len(groups) > 0 {
			return groups[0]
		}
		return Group{}
	})
	return s
}

// Catalog returns the shared catalog.
func (s *Store) Catalog() *Catalog { return s.catalog }

// Groups returns the groups and subscribes the current listener.
func (s *Store) Groups() []Group { return s.catalog.Groups() }

// SelectedID returns the requested group id. It may name a group that no
// longer exists; Selected then falls back to the first group.
func (s *Store) SelectedID() string { return s.selectedID.Get() }

// Selected returns the selected group, or the first group when the selected
// id is unknown. It returns the zero Group when there are no groups.
func (s *Store) Selected() Group { return s.selected.Get() }

// Select requests the group with id.
func (s *Store) Select(id string) { s.selectedID.Set(id) }

// Close detaches the store from the catalog.
func (s *Store) Close() { s.selected.Dispose() }

// Replace swaps the shared group list. The selection is kept; if its group
// is gone, Selected falls back to the first group.
func (s *Store) Replace(groups []Group) { s.catalog.Replace(groups) }
