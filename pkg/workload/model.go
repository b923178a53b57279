package workload

import (
	"fmt"

	"github.com/vango-dev/loadboard/internal/errors"
)

// Weeks is the length of every series.
const Weeks = 52

// Data holds the six weekly series of a group.
type Data struct {
	Aerob   []float64 `yaml:"aerob" json:"aerob"`
	Aralash []float64 `yaml:"aralash" json:"aralash"`
	Anaerob []float64 `yaml:"anaerob" json:"anaerob"`
	Sakrash []float64 `yaml:"sakrash" json:"sakrash"`
	Sport   []float64 `yaml:"sport" json:"sport"`
	Maxsus  []float64 `yaml:"maxsus" json:"maxsus"`
}

// Group is one training group.
type Group struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Data Data   `yaml:"data" json:"data"`
}

// Series returns the series of c. Unknown categories return nil.
func (d *Data) Series(c Category) []float64 {
	switch c {
	case Aerob:
		return d.Aerob
	case Aralash:
		return d.Aralash
	case Anaerob:
		return d.Anaerob
	case Sakrash:
		return d.Sakrash
	case Sport:
		return d.Sport
	case Maxsus:
		return d.Maxsus
	}
	return nil
}

// SetSeries replaces the series of c.
func (d *Data) SetSeries(c Category, v []float64) {
	switch c {
	case Aerob:
		d.Aerob = v
	case Aralash:
		d.Aralash = v
	case Anaerob:
		d.Anaerob = v
	case Sakrash:
		d.Sakrash = v
	case Sport:
		d.Sport = v
	case Maxsus:
		d.Maxsus = v
	}
}

// Validate checks series lengths and that binary series hold 0 or 1.
func (d *Data) Validate() error {
	for _, c := range Categories {
		s := d.Series(c)
		if len(s) != Weeks {
			return errors.New("L012").WithDetail("series %s has %d weeks, want %d", c, len(s), Weeks)
		}
		for w, v := range s {
			if v < 0 {
				return errors.New("L012").WithDetail("series %s week %d is negative (%g)", c, w+1, v)
			}
			if c.Binary() && v != 0 && v != 1 {
				return errors.New("L012").WithDetail("series %s week %d is %g, want 0 or 1", c, w+1, v)
			}
		}
	}
	return nil
}

// Total returns the yearly total of c: kilometres for distances, hours for
// binary series.
func (d *Data) Total(c Category) float64 {
	return d.Range(c, 0, Weeks)
}

// Range totals weeks [from, to) of c. Binary series count each active week
// as YearlyHours divided by the number of active weeks in the year.
func (d *Data) Range(c Category, from, to int) float64 {
	s := d.Series(c)
	from, to = max(from, 0), min(to, len(s))
	if from >= to {
		return 0
	}
	var sum float64
	for _, v := range s[from:to] {
		sum += v
	}
	if !c.Binary() {
		return sum
	}
	return sum * d.HoursPerWeek(c)
}

// HoursPerWeek spreads the yearly hours of a binary series over its active
// weeks. It returns 0 when no week is active.
func (d *Data) HoursPerWeek(c Category) float64 {
	active := 0
	for _, v := range d.Series(c) {
		if v != 0 {
			active++
		}
	}
	if active == 0 {
		return 0
	}
	return c.YearlyHours() / float64(active)
}

// Validate checks the group id and data.
func (g *Group) Validate() error {
	if g.ID == "" {
		return errors.New("L011").WithDetail("group without id")
	}
	if err := g.Data.Validate(); err != nil {
		return fmt.Errorf("group %s: %w", g.ID, err)
	}
	return nil
}
