package charts

import (
	"math"

	"github.com/vango-dev/loadboard/pkg/workload"
)

const boundaryColor = "#d1d5db"

// Hours converts a binary series to hours: each active week gets the
// category's yearly hours divided by the number of active weeks, rounded to
// one decimal.
func Hours(d *workload.Data, c workload.Category) []float64 {
	per := math.Round(d.HoursPerWeek(c)*10) / 10
	s := d.Series(c)
	out := make([]float64, len(s))
	for i, v := range s {
		if v == 1 {
			out[i] = per
		}
	}
	return out
}

// Line builds the weekly chart: the four distances on the left axis in km
// and sport and maxsus hours on the right axis. Month boundaries are drawn
// as dashed vertical lines.
func Line(d workload.Data) Option {
	marks := make([]MarkPoint, 0, 11)
	for _, w := range MonthBoundaries() {
		marks = append(marks, MarkPoint{
			XAxis:     w,
			LineStyle: &LineStyle{Type: "dashed", Color: boundaryColor, Width: 1},
			Label:     &Label{Show: false},
		})
	}

	legend := make([]string, 0, len(workload.Categories))
	units := make(map[string]string, len(workload.Categories))
	series := make([]Series, 0, len(workload.Categories))
	for _, c := range workload.Categories {
		legend = append(legend, c.Name())
		units[c.Name()] = c.Unit()

		s := lineSeries(c)
		if c.Binary() {
			s.Data = Hours(&d, c)
			s.YAxisIndex = 1
		} else {
			s.Data = orEmpty(d.Series(c))
		}
		if c == workload.Aerob {
			s.MarkLine = &MarkLine{Silent: true, Symbol: "none", Data: marks}
		}
		series = append(series, s)
	}

	return Option{
		Tooltip: &Tooltip{
			Trigger:     "axis",
			AxisPointer: &AxisPointer{Type: "cross"},
			Formatter:   "loadboard:line",
		},
		Legend: &Legend{
			Data:      legend,
			Top:       0,
			ItemGap:   10,
			TextStyle: &TextStyle{FontSize: 11},
		},
		Grid: &Grid{Left: "2%", Right: "2%", Bottom: "2%", Top: "5%", ContainLabel: true},
		XAxis: &Axis{
			Type:        "category",
			BoundaryGap: ptr(false),
			Data:        WeekLabels(),
			AxisLabel:   &AxisLabel{Interval: ptr(0), FontSize: 9, Rotate: ptr(0)},
		},
		YAxis: []Axis{
			{Type: "value", Name: "Masofa (km)", NameLocation: "middle", NameGap: 45, Min: ptr(0.0), Interval: 5},
			{Type: "value", Name: "Vaqt (soat)", NameLocation: "middle", NameGap: 45, Min: ptr(0.0), SplitLine: &Show{Show: false}},
		},
		Series: series,
		Meta:   &Meta{WeekMonths: weekMonths(), SeriesUnits: units},
	}
}

func lineSeries(c workload.Category) Series {
	return Series{
		Name:       c.Name(),
		Type:       "line",
		Smooth:     true,
		LineStyle:  &LineStyle{Width: 2},
		ItemStyle:  &ItemStyle{Color: c.Color()},
		Symbol:     "circle",
		SymbolSize: 6,
		ShowSymbol: ptr(false),
		Emphasis:   &Emphasis{Focus: "series"},
	}
}

// orEmpty keeps nil series from marshalling as null.
func orEmpty(s []float64) []float64 {
	if s == nil {
		return []float64{}
	}
	return s
}
