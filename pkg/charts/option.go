package charts

// Option is an ECharts option.
type Option struct {
	Title     []Title    `json:"title,omitempty"`
	Tooltip   *Tooltip   `json:"tooltip,omitempty"`
	Legend    *Legend    `json:"legend,omitempty"`
	Grid      *Grid      `json:"grid,omitempty"`
	XAxis     *Axis      `json:"xAxis,omitempty"`
	YAxis     []Axis     `json:"yAxis,omitempty"`
	VisualMap *VisualMap `json:"visualMap,omitempty"`
	Series    []Series   `json:"series"`
	Meta      *Meta      `json:"loadboard,omitempty"`
}

// Meta is read by the client formatters and ignored by ECharts.
type Meta struct {
	WeekMonths  []string          `json:"weekMonths,omitempty"`
	SeriesUnits map[string]string `json:"seriesUnits,omitempty"`
	RowNames    []string          `json:"rowNames,omitempty"`
}

type TextStyle struct {
	FontSize   int    `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	Color      string `json:"color,omitempty"`
}

type Title struct {
	Text      string     `json:"text"`
	Left      string     `json:"left,omitempty"`
	Top       string     `json:"top,omitempty"`
	TextAlign string     `json:"textAlign,omitempty"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

type Tooltip struct {
	Trigger     string       `json:"trigger,omitempty"`
	Position    string       `json:"position,omitempty"`
	AxisPointer *AxisPointer `json:"axisPointer,omitempty"`
	// Formatter names a client-side formatter.
	Formatter string `json:"formatter,omitempty"`
}

type AxisPointer struct {
	Type string `json:"type"`
}

type Legend struct {
	Data      []string   `json:"data,omitempty"`
	Orient    string     `json:"orient,omitempty"`
	Top       any        `json:"top,omitempty"`
	Bottom    string     `json:"bottom,omitempty"`
	ItemGap   int        `json:"itemGap,omitempty"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

type Grid struct {
	Left         string `json:"left,omitempty"`
	Right        string `json:"right,omitempty"`
	Top          string `json:"top,omitempty"`
	Bottom       string `json:"bottom,omitempty"`
	ContainLabel bool   `json:"containLabel,omitempty"`
}

type Show struct {
	Show bool `json:"show"`
}

type AxisLabel struct {
	Interval *int `json:"interval,omitempty"`
	FontSize int  `json:"fontSize,omitempty"`
	Rotate   *int `json:"rotate,omitempty"`
}

type Axis struct {
	Type         string     `json:"type"`
	Name         string     `json:"name,omitempty"`
	NameLocation string     `json:"nameLocation,omitempty"`
	NameGap      int        `json:"nameGap,omitempty"`
	Min          *float64   `json:"min,omitempty"`
	Interval     float64    `json:"interval,omitempty"`
	BoundaryGap  *bool      `json:"boundaryGap,omitempty"`
	Data         []string   `json:"data,omitempty"`
	AxisLabel    *AxisLabel `json:"axisLabel,omitempty"`
	SplitLine    *Show      `json:"splitLine,omitempty"`
	SplitArea    *Show      `json:"splitArea,omitempty"`
	AxisTick     *Show      `json:"axisTick,omitempty"`
	AxisLine     *Show      `json:"axisLine,omitempty"`
}

type VisualMap struct {
	Show    bool     `json:"show"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	InRange *InRange `json:"inRange,omitempty"`
}

type InRange struct {
	Color []string `json:"color"`
}

type LineStyle struct {
	Type  string `json:"type,omitempty"`
	Color string `json:"color,omitempty"`
	Width int    `json:"width,omitempty"`
}

type ItemStyle struct {
	Color        string `json:"color,omitempty"`
	BorderRadius int    `json:"borderRadius,omitempty"`
	BorderColor  string `json:"borderColor,omitempty"`
	BorderWidth  int    `json:"borderWidth,omitempty"`
	ShadowBlur   int    `json:"shadowBlur,omitempty"`
	ShadowColor  string `json:"shadowColor,omitempty"`
}

type Label struct {
	Show       bool   `json:"show"`
	Formatter  string `json:"formatter,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
}

type Emphasis struct {
	Focus     string     `json:"focus,omitempty"`
	Label     *Label     `json:"label,omitempty"`
	ItemStyle *ItemStyle `json:"itemStyle,omitempty"`
}

type MarkLine struct {
	Silent bool        `json:"silent"`
	Symbol string      `json:"symbol,omitempty"`
	Data   []MarkPoint `json:"data"`
}

type MarkPoint struct {
	XAxis     int        `json:"xAxis"`
	LineStyle *LineStyle `json:"lineStyle,omitempty"`
	Label     *Label     `json:"label,omitempty"`
}

// PieItem is one slice of a pie.
type PieItem struct {
	Name      string     `json:"name"`
	Value     float64    `json:"value"`
	ItemStyle *ItemStyle `json:"itemStyle,omitempty"`
}

// Series is a line, pie or heatmap series. Data holds []float64,
// []PieItem or [][3]float64 respectively.
type Series struct {
	Name              string     `json:"name,omitempty"`
	Type              string     `json:"type"`
	Data              any        `json:"data"`
	Smooth            bool       `json:"smooth,omitempty"`
	YAxisIndex        int        `json:"yAxisIndex,omitempty"`
	LineStyle         *LineStyle `json:"lineStyle,omitempty"`
	ItemStyle         *ItemStyle `json:"itemStyle,omitempty"`
	Symbol            string     `json:"symbol,omitempty"`
	SymbolSize        int        `json:"symbolSize,omitempty"`
	ShowSymbol        *bool      `json:"showSymbol,omitempty"`
	Emphasis          *Emphasis  `json:"emphasis,omitempty"`
	MarkLine          *MarkLine  `json:"markLine,omitempty"`
	Radius            []string   `json:"radius,omitempty"`
	Center            []string   `json:"center,omitempty"`
	AvoidLabelOverlap bool       `json:"avoidLabelOverlap,omitempty"`
	Label             *Label     `json:"label,omitempty"`
	LabelLine         *Show      `json:"labelLine,omitempty"`
}

func ptr[T any](v T) *T { return &v }
