package charts

import (
	"encoding/json"

	"github.com/vango-dev/loadboard/pkg/workload"
)

// Chart ids.
const (
	ChartLine     = "line"
	ChartPie      = "pie"
	ChartQuarters = "quarters"
	ChartHeatmap  = "heatmap"
)

// Chart is one rendered chart inside a panel.
type Chart struct {
	ID        string
	AriaLabel string
	// Class sizes the chart container.
	Class  string
	Option Option
}

// JSON returns the option as JSON.
func (c Chart) JSON() (string, error) {
	b, err := json.Marshal(c.Option)
	return string(b), err
}

// Panel is a titled dashboard section holding one or more charts.
type Panel struct {
	ID     string
	Title  string
	Charts []Chart
}

// Panels returns the dashboard sections for d.
func Panels(d workload.Data) []Panel {
	return []Panel{
		{
			ID:    "load",
			Title: "Mashg'ulot yuklama",
			Charts: []Chart{{
				ID:        ChartLine,
				AriaLabel: "52 hafta davomida aerob, aralash, anaerob va sakrash qiymatlarini ko'rsatuvchi yuklama chiziqli grafigi",
				Class:     "chart chart-line",
				Option:    Line(d),
			}},
		},
		{
			ID:    "distribution",
			Title: "Yuklama taqsimoti",
			Charts: []Chart{
				{
					ID:        ChartPie,
					AriaLabel: "Yillik aerob, aralash, anaerob va sakrash qiymatlarini taqqoslovchi doiraviy grafik",
					Class:     "chart chart-pie",
					Option:    Pie(d),
				},
				{
					ID:        ChartQuarters,
					AriaLabel: "Har 4 oylik davr uchun aerob, aralash, anaerob va sakrash qiymatlarini taqqoslovchi uchta doiraviy grafik",
					Class:     "chart chart-quarters",
					Option:    QuarterPies(d),
				},
			},
		},
		{
			ID:    "activity",
			Title: "Sport va maxsus mashg'ulotlar",
			Charts: []Chart{{
				ID:        ChartHeatmap,
				AriaLabel: "52 hafta davomida sport va maxsus faoliyatni ko'rsatuvchi grafik",
				Class:     "chart chart-heatmap",
				Option:    Heatmap(d),
			}},
		},
	}
}

// Find returns the chart with id from Panels(d).
func Find(d workload.Data, id string) (Chart, bool) {
	for _, p := range Panels(d) {
		for _, c := range p.Charts {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Chart{}, false
}
