package charts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/loadboard/pkg/workload"
)

func testData() workload.Data {
	var d workload.Data
	for _, c := range workload.Categories {
		s := make([]float64, workload.Weeks)
		for i := range s {
			if c.Binary() {
				if i%4 == 0 {
					s[i] = 1
				}
			} else {
				s[i] = float64(i%5 + 1)
			}
		}
		d.SetSeries(c, s)
	}
	return d
}

func TestMonthsCoverYear(t *testing.T) {
	total := 0
	for _, m := range Months {
		total += m.Weeks
	}
	if total != workload.Weeks {
		t.Errorf("weeks = %d, want %d", total, workload.Weeks)
	}
}

func TestMonthBoundaries(t *testing.T) {
	want := []int{3, 8, 12, 16, 21, 25, 29, 33, 38, 42, 47}
	if diff := cmp.Diff(want, MonthBoundaries()); diff != "" {
		t.Errorf("MonthBoundaries() mismatch (-want +got):\n%s", diff)
	}
}

func TestWeekLabels(t *testing.T) {
	labels := WeekLabels()
	if len(labels) != workload.Weeks {
		t.Fatalf("len = %d, want %d", len(labels), workload.Weeks)
	}
	tests := map[int]string{0: "Sen", 1: "2", 3: "4", 4: "Okt", 5: "6", 47: "Avg", 51: "52"}
	for i, want := range tests {
		if labels[i] != want {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want)
		}
	}
}

func TestMonthForWeek(t *testing.T) {
	tests := []struct {
		week int
		want string
	}{
		{0, "Sentyabr"},
		{3, "Sentyabr"},
		{4, "Oktyabr"},
		{17, "Yanvar"},
		{51, "Avgust"},
		{80, "Avgust"},
	}
	for _, tt := range tests {
		if got := MonthForWeek(tt.week).Full; got != tt.want {
			t.Errorf("MonthForWeek(%d) = %q, want %q", tt.week, got, tt.want)
		}
	}
}

func TestHours(t *testing.T) {
	d := testData()
	// 13 active weeks: 40/13 = 3.07..., 80/13 = 6.15...
	sport := Hours(&d, workload.Sport)
	if sport[0] != 3.1 || sport[1] != 0 {
		t.Errorf("sport[0:2] = %v, want [3.1 0]", sport[0:2])
	}
	maxsus := Hours(&d, workload.Maxsus)
	if maxsus[4] != 6.2 {
		t.Errorf("maxsus[4] = %v, want 6.2", maxsus[4])
	}
}

func TestLine(t *testing.T) {
	d := testData()
	opt := Line(d)

	if len(opt.Series) != len(workload.Categories) {
		t.Fatalf("series = %d, want %d", len(opt.Series), len(workload.Categories))
	}
	for _, s := range opt.Series {
		c := categoryByName(t, s.Name)
		if want := 0; !c.Binary() && s.YAxisIndex != want {
			t.Errorf("%s yAxisIndex = %d, want %d", s.Name, s.YAxisIndex, want)
		}
		if c.Binary() && s.YAxisIndex != 1 {
			t.Errorf("%s yAxisIndex = %d, want 1", s.Name, s.YAxisIndex)
		}
		if s.ItemStyle.Color != c.Color() {
			t.Errorf("%s color = %q, want %q", s.Name, s.ItemStyle.Color, c.Color())
		}
	}

	aerob := opt.Series[0]
	if aerob.MarkLine == nil {
		t.Fatal("aerob series has no mark line")
	}
	var xs []int
	for _, m := range aerob.MarkLine.Data {
		xs = append(xs, m.XAxis)
	}
	if diff := cmp.Diff(MonthBoundaries(), xs); diff != "" {
		t.Errorf("mark lines mismatch (-want +got):\n%s", diff)
	}
	for _, s := range opt.Series[1:] {
		if s.MarkLine != nil {
			t.Errorf("%s has a mark line", s.Name)
		}
	}

	if got := opt.Meta.SeriesUnits[workload.Sport.Name()]; got != "soat" {
		t.Errorf("unit(Sport) = %q, want soat", got)
	}
	if got := opt.Meta.WeekMonths[4]; got != "Oktyabr" {
		t.Errorf("weekMonths[4] = %q, want Oktyabr", got)
	}
}

func TestLineEmptyData(t *testing.T) {
	b, err := json.Marshal(Line(workload.Data{}))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), `"data":null`) {
		t.Errorf("marshalled option contains null data: %s", b)
	}
}

func TestPie(t *testing.T) {
	d := testData()
	opt := Pie(d)
	items := opt.Series[0].Data.([]PieItem)

	var want []PieItem
	for _, c := range workload.DistanceCategories {
		want = append(want, PieItem{Name: c.Name(), Value: d.Total(c), ItemStyle: &ItemStyle{Color: c.Color()}})
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("pie items mismatch (-want +got):\n%s", diff)
	}
}

func TestQuarterPies(t *testing.T) {
	d := testData()
	opt := QuarterPies(d)
	if len(opt.Series) != len(Quarters) || len(opt.Title) != len(Quarters) {
		t.Fatalf("series = %d, titles = %d, want %d", len(opt.Series), len(opt.Title), len(Quarters))
	}

	centers := []string{"17%", "50%", "83%"}
	for i, s := range opt.Series {
		if s.Center[0] != centers[i] || opt.Title[i].Left != centers[i] {
			t.Errorf("quarter %d center = %q, title left = %q, want %q", i, s.Center[0], opt.Title[i].Left, centers[i])
		}
	}

	// The three quarters add up to the annual totals.
	for j, c := range workload.DistanceCategories {
		var sum float64
		for _, s := range opt.Series {
			sum += s.Data.([]PieItem)[j].Value
		}
		if sum != d.Total(c) {
			t.Errorf("%s quarters sum = %v, want %v", c, sum, d.Total(c))
		}
	}
}

func TestHeatmap(t *testing.T) {
	d := testData()
	opt := Heatmap(d)
	cells := opt.Series[0].Data.([][3]float64)
	if len(cells) != 2*workload.Weeks {
		t.Fatalf("cells = %d, want %d", len(cells), 2*workload.Weeks)
	}
	if got, want := cells[0], [3]float64{0, 0, 1}; got != want {
		t.Errorf("cells[0] = %v, want %v", got, want)
	}
	if got, want := cells[1], [3]float64{1, 0, 0}; got != want {
		t.Errorf("cells[1] = %v, want %v", got, want)
	}
	if got, want := cells[workload.Weeks], [3]float64{0, 1, 3}; got != want {
		t.Errorf("maxsus week 1 = %v, want %v", got, want)
	}
	if got, want := cells[workload.Weeks+1], [3]float64{1, 1, 2}; got != want {
		t.Errorf("maxsus week 2 = %v, want %v", got, want)
	}
	if diff := cmp.Diff([]string{workload.Sport.Name(), workload.Maxsus.Name()}, opt.Meta.RowNames); diff != "" {
		t.Errorf("row names mismatch (-want +got):\n%s", diff)
	}
}

func TestPanels(t *testing.T) {
	d := testData()
	var ids []string
	for _, p := range Panels(d) {
		for _, c := range p.Charts {
			ids = append(ids, c.ID)
			if _, err := c.JSON(); err != nil {
				t.Errorf("%s JSON: %v", c.ID, err)
			}
		}
	}
	want := []string{ChartLine, ChartPie, ChartQuarters, ChartHeatmap}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("chart ids mismatch (-want +got):\n%s", diff)
	}

	c, ok := Find(d, ChartHeatmap)
	if !ok || c.Option.Series[0].Type != "heatmap" {
		t.Errorf("Find(heatmap) = %v, %v", c.ID, ok)
	}
	if _, ok := Find(d, "nope"); ok {
		t.Error("Find(nope) found a chart")
	}
}

func categoryByName(t *testing.T, name string) workload.Category {
	t.Helper()
	for _, c := range workload.Categories {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("unknown category %q", name)
	return ""
}
