package workload

import (
	"bytes"
	"cmp"
	"embed"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/loadboard/internal/errors"
)

//go:embed fixtures/*.yaml
var bundled embed.FS

// fixture is the on-disk form of a group.
type fixture struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Order int    `yaml:"order,omitempty"`
	Data  Data   `yaml:"data"`
}

// Default returns the bundled groups.
func Default() []Group {
	sub, _ := fs.Sub(bundled, "fixtures")
	groups, err := LoadDir(sub)
	if err != nil {
		panic(fmt.Sprintf("workload: bundled fixtures: %v", err))
	}
	return groups
}

// LoadDir reads every *.yaml and *.yml file at the root of fsys. Groups are
// ordered by their order field, then by id. Every group is validated and ids
// must be unique.
func LoadDir(fsys fs.FS) ([]Group, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.New("L010").Wrap(err)
	}

	var fixtures []fixture
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !isFixture(e.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, errors.New("L010").WithLocation(e.Name(), 0, 0).Wrap(err)
		}
		f, err := decodeFixture(bytes.NewReader(data), e.Name())
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[f.ID]; dup {
			return nil, errors.New("L013").
				WithLocation(e.Name(), 0, 0).
				WithDetail("%q is also defined in %s", f.ID, prev)
		}
		seen[f.ID] = e.Name()
		fixtures = append(fixtures, f)
	}
	if len(fixtures) == 0 {
		return nil, errors.New("L014")
	}
	return sortFixtures(fixtures), nil
}

// ReadGroup decodes and validates one fixture. name labels errors.
func ReadGroup(r io.Reader, name string) (Group, error) {
	f, err := decodeFixture(r, name)
	if err != nil {
		return Group{}, err
	}
	return Group{ID: f.ID, Name: f.Name, Data: f.Data}, nil
}

// WriteYAML writes g as a fixture. order places the group in the select
// list; 0 leaves it to id order.
func WriteYAML(w io.Writer, g Group, order int) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fixture{ID: g.ID, Name: g.Name, Order: order, Data: g.Data}); err != nil {
		return fmt.Errorf("workload: encode %s: %w", g.ID, err)
	}
	return enc.Close()
}

func decodeFixture(r io.Reader, name string) (fixture, error) {
	var f fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		le := errors.New("L011").WithLocation(name, 0, 0).Wrap(err)
		var te *yaml.TypeError
		if stderrors.As(err, &te) && len(te.Errors) > 0 {
			le.WithDetail("%s", te.Errors[0])
		}
		return fixture{}, le
	}
	if f.Name == "" {
		f.Name = f.ID
	}
	g := Group{ID: f.ID, Name: f.Name, Data: f.Data}
	if err := g.Validate(); err != nil {
		return fixture{}, errors.FromError(err, "L011").WithLocation(name, 0, 0)
	}
	return f, nil
}

func sortFixtures(list []fixture) []Group {
	slices.SortStableFunc(list, func(a, b fixture) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), strings.Compare(a.ID, b.ID))
	})
	groups := make([]Group, len(list))
	for i, f := range list {
		groups[i] = Group{ID: f.ID, Name: f.Name, Data: f.Data}
	}
	return groups
}

func isFixture(name string) bool {
	ext := path.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
