package workload

import (
	"io"
	"strconv"
	"strings"

	"github.com/vango-dev/loadboard/internal/errors"
)

// RecordLines is the number of lines per week in the raw export.
const RecordLines = 6

// recordOrder is the line order inside one weekly record.
var recordOrder = [RecordLines]Category{Aerob, Aralash, Anaerob, Sakrash, Sport, Maxsus}

// ParseRecords converts the raw weekly export into Data.
//
// Each week is six lines: aerob, aralash, anaerob and sakrash distances,
// then a sport line and a maxsus line where any non-blank text marks the
// week as active. A decimal comma is accepted. One trailing empty line is
// ignored. The number of weeks is not checked; call Data.Validate.
func ParseRecords(r io.Reader, name string) (Data, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Data{}, errors.New("L020").WithLocation(name, 0, 0).Wrap(err)
	}
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	if n := len(lines); n%RecordLines == 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return Data{}, errors.New("L021").WithLocation(name, 0, 0).WithDetail("no records")
	}
	if rem := len(lines) % RecordLines; rem != 0 {
		return Data{}, errors.New("L021").
			WithLocation(name, len(lines)-rem+1, 0).
			WithDetail("last week has %d of %d lines", rem, RecordLines)
	}

	weeks := len(lines) / RecordLines
	series := make(map[Category][]float64, RecordLines)
	for _, c := range recordOrder {
		series[c] = make([]float64, 0, weeks)
	}
	for i, line := range lines {
		c := recordOrder[i%RecordLines]
		v, err := parseRecordValue(c, line)
		if err != nil {
			return Data{}, errors.New("L020").
				WithLocation(name, i+1, 0).
				WithDetail("week %d %s: %q is not a number", i/RecordLines+1, c, line).
				WithContext(line).
				Wrap(err)
		}
		series[c] = append(series[c], v)
	}

	var d Data
	for c, s := range series {
		d.SetSeries(c, s)
	}
	return d, nil
}

func parseRecordValue(c Category, line string) (float64, error) {
	line = strings.TrimSpace(line)
	if c.Binary() {
		if line == "" {
			return 0, nil
		}
		return 1, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(line, ",", "."), 64)
}
