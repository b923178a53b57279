package workload

// Category identifies one weekly series.
type Category string

const (
	Aerob   Category = "aerob"
	Aralash Category = "aralash"
	Anaerob Category = "anaerob"
	Sakrash Category = "sakrash"
	Sport   Category = "sport"
	Maxsus  Category = "maxsus"
)

// Categories lists every category in display order.
var Categories = []Category{Aerob, Aralash, Anaerob, Sakrash, Sport, Maxsus}

// DistanceCategories are the series measured in kilometres.
var DistanceCategories = []Category{Aerob, Aralash, Anaerob, Sakrash}

type categoryInfo struct {
	name  string
	color string
	unit  string
	// hours is the yearly volume of a binary series, spread over its active
	// weeks.
	hours float64
}

var categoryInfos = map[Category]categoryInfo{
	Aerob:   {"Aerob yuklama", "#22c55e", "km", 0},
	Aralash: {"Aralash yuklama", "#eab308", "km", 0},
	Anaerob: {"Anaerob yuklama", "#ef4444", "km", 0},
	Sakrash: {"Sakrashlar", "#3b82f6", "km", 0},
	Sport:   {"Sport o'yinlari", "#f97316", "soat", 40},
	Maxsus:  {"Maxsus kuch mashqlari", "#a855f7", "soat", 80},
}

// Name returns the display name.
func (c Category) Name() string { return categoryInfos[c].name }

// Color returns the chart color.
func (c Category) Color() string { return categoryInfos[c].color }

// Unit returns "km" for distances and "soat" (hours) for binary series.
func (c Category) Unit() string { return categoryInfos[c].unit }

// Binary reports whether the series only marks active weeks.
func (c Category) Binary() bool { return categoryInfos[c].hours > 0 }

// YearlyHours returns the hours a binary series accounts for over the year.
func (c Category) YearlyHours() float64 { return categoryInfos[c].hours }

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryInfos[c]
	return ok
}
