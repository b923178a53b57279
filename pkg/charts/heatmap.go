package charts

import (
	"strconv"

	"github.com/vango-dev/loadboard/pkg/workload"
)

// Heatmap palette: inactive and active sport, inactive and active maxsus.
var heatmapColors = []string{"#fed7aa", "#f97316", "#e9d5ff", "#a855f7"}

// Heatmap builds the weekly activity grid. Cells are [week, row, value]:
// sport on row 0 with values 0/1 and maxsus on row 1 with values 2/3, so one
// visual map colors both rows.
func Heatmap(d workload.Data) Option {
	weeks := make([]string, workload.Weeks)
	for i := range weeks {
		weeks[i] = strconv.Itoa(i + 1)
	}

	cells := make([][3]float64, 0, 2*workload.Weeks)
	for w, v := range d.Sport {
		cells = append(cells, [3]float64{float64(w), 0, v})
	}
	for w, v := range d.Maxsus {
		cells = append(cells, [3]float64{float64(w), 1, v + 2})
	}

	rows := []string{workload.Sport.Name(), workload.Maxsus.Name()}
	hidden := &Show{Show: false}
	return Option{
		Tooltip: &Tooltip{Position: "top", Formatter: "loadboard:heatmap"},
		Grid:    &Grid{Left: "12%", Right: "2%", Bottom: "15%", Top: "5%"},
		XAxis: &Axis{
			Type:      "category",
			Data:      weeks,
			SplitArea: hidden,
			AxisLabel: &AxisLabel{Interval: ptr(3), FontSize: 10},
			AxisTick:  hidden,
			AxisLine:  hidden,
		},
		YAxis: []Axis{{
			Type:      "category",
			Data:      rows,
			SplitArea: hidden,
			AxisTick:  hidden,
			AxisLine:  hidden,
			AxisLabel: &AxisLabel{FontSize: 10},
		}},
		VisualMap: &VisualMap{Show: false, Min: 0, Max: 3, InRange: &InRange{Color: heatmapColors}},
		Series: []Series{{
			Type:      "heatmap",
			Data:      cells,
			ItemStyle: &ItemStyle{BorderRadius: 3, BorderWidth: 2, BorderColor: "#fff"},
			Emphasis:  &Emphasis{ItemStyle: &ItemStyle{ShadowBlur: 5, ShadowColor: "rgba(0, 0, 0, 0.3)"}},
		}},
		Meta: &Meta{WeekMonths: weekMonths(), RowNames: rows},
	}
}
