package charts

import (
	"fmt"

	"github.com/vango-dev/loadboard/pkg/workload"
)

var titleStyle = &TextStyle{FontSize: 14, FontWeight: "bold", Color: "#374151"}

func pieItems(d *workload.Data, from, to int) []PieItem {
	items := make([]PieItem, 0, len(workload.DistanceCategories))
	for _, c := range workload.DistanceCategories {
		items = append(items, PieItem{
			Name:      c.Name(),
			Value:     d.Range(c, from, to),
			ItemStyle: &ItemStyle{Color: c.Color()},
		})
	}
	return items
}

func pieSeries(name string, center []string) Series {
	return Series{
		Name:              name,
		Type:              "pie",
		Radius:            []string{"25%", "55%"},
		Center:            center,
		AvoidLabelOverlap: true,
		ItemStyle:         &ItemStyle{BorderRadius: 6, BorderColor: "#fff", BorderWidth: 2},
	}
}

func pieLegend() *Legend {
	return &Legend{Orient: "horizontal", Bottom: "0%", ItemGap: 16, TextStyle: &TextStyle{FontSize: 11}}
}

// Pie builds the annual distance distribution.
func Pie(d workload.Data) Option {
	s := pieSeries("Yillik taqsimot", []string{"50%", "50%"})
	s.Data = pieItems(&d, 0, workload.Weeks)
	s.Label = &Label{Show: true, Formatter: "{b}: {d}%", FontSize: 11}
	s.Emphasis = &Emphasis{Label: &Label{Show: true, FontSize: 13, FontWeight: "bold"}}
	s.LabelLine = &Show{Show: true}

	return Option{
		Title:   []Title{{Text: "Yillik taqsimot", Left: "center", Top: "2%", TextStyle: titleStyle}},
		Tooltip: &Tooltip{Trigger: "item", Formatter: "loadboard:pie"},
		Legend:  pieLegend(),
		Series:  []Series{s},
	}
}

// QuarterPies builds one distance pie per quarter, side by side.
func QuarterPies(d workload.Data) Option {
	opt := Option{
		Tooltip: &Tooltip{Trigger: "item", Formatter: "loadboard:quarter"},
		Legend:  pieLegend(),
	}
	for i, q := range Quarters {
		x := fmt.Sprintf("%d%%", 17+i*33)
		opt.Title = append(opt.Title, Title{
			Text:      q.Name,
			Left:      x,
			Top:       "5%",
			TextAlign: "center",
			TextStyle: titleStyle,
		})
		s := pieSeries(q.Name, []string{x, "55%"})
		s.Data = pieItems(&d, q.Start, q.End)
		s.Label = &Label{Show: false}
		s.Emphasis = &Emphasis{Label: &Label{Show: true, FontSize: 12, FontWeight: "bold"}}
		s.LabelLine = &Show{Show: false}
		opt.Series = append(opt.Series, s)
	}
	return opt
}
