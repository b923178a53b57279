// Package charts builds ECharts options from workload data.
//
// Builders return plain structs that marshal to the JSON the browser hands
// to echarts.setOption. Tooltip formatters cannot travel as JSON, so options
// name a formatter the live client installs ("loadboard:line" and so on)
// and carry the calendar it needs under the "loadboard" key.
package charts
