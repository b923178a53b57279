package charts

import "strconv"

// Month is one month of the school year.
type Month struct {
	Short string
	Full  string
	Weeks int
}

// Months runs September to August. The spans add up to 52 weeks.
var Months = [12]Month{
	{"Sen", "Sentyabr", 4},
	{"Okt", "Oktyabr", 5},
	{"Noy", "Noyabr", 4},
	{"Dek", "Dekabr", 4},
	{"Yan", "Yanvar", 5},
	{"Fev", "Fevral", 4},
	{"Mar", "Mart", 4},
	{"Apr", "Aprel", 4},
	{"May", "May", 5},
	{"Iyn", "Iyun", 4},
	{"Iyl", "Iyul", 5},
	{"Avg", "Avgust", 4},
}

// Quarter is a four-month period. Weeks are [Start, End).
type Quarter struct {
	Name       string
	Start, End int
}

// Quarters splits the year into Sen-Dek, Yan-Apr and May-Avg.
var Quarters = [3]Quarter{
	{"Sen-Dek", 0, 17},
	{"Yan-Apr", 17, 34},
	{"May-Avg", 34, 52},
}

// MonthForWeek returns the month containing the zero-based week. Weeks past
// the end belong to the last month.
func MonthForWeek(week int) Month {
	cumulative := 0
	for _, m := range Months {
		cumulative += m.Weeks
		if week < cumulative {
			return m
		}
	}
	return Months[len(Months)-1]
}

// WeekLabels returns the x-axis labels: the short month name on the first
// week of each month and the 1-based week number elsewhere.
func WeekLabels() []string {
	labels := make([]string, 0, 52)
	week := 1
	for _, m := range Months {
		for i := range m.Weeks {
			if i == 0 {
				labels = append(labels, m.Short)
			} else {
				labels = append(labels, strconv.Itoa(week))
			}
			week++
		}
	}
	return labels
}

// MonthBoundaries returns the index of the last week of every month except
// August.
func MonthBoundaries() []int {
	var out []int
	cumulative := 0
	for _, m := range Months {
		cumulative += m.Weeks
		if cumulative < 52 {
			out = append(out, cumulative-1)
		}
	}
	return out
}

// weekMonths lists the full month name of every week for client tooltips.
func weekMonths() []string {
	out := make([]string, 0, 52)
	for _, m := range Months {
		for range m.Weeks {
			out = append(out, m.Full)
		}
	}
	return out
}
