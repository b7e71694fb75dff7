package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Interval is a bar sampling interval in provider notation.
type Interval string

// Supported intervals.
const (
	Interval1Min    Interval = "1m"
	Interval2Min    Interval = "2m"
	Interval5Min    Interval = "5m"
	Interval15Min   Interval = "15m"
	Interval30Min   Interval = "30m"
	Interval60Min   Interval = "60m"
	Interval90Min   Interval = "90m"
	Interval1Hour   Interval = "1h"
	Interval1Day    Interval = "1d"
	Interval5Day    Interval = "5d"
	Interval1Week   Interval = "1wk"
	Interval1Month  Interval = "1mo"
	Interval3Months Interval = "3mo"
)

var validIntervals = map[Interval]bool{
	Interval1Min: true, Interval2Min: true, Interval5Min: true,
	Interval15Min: true, Interval30Min: true, Interval60Min: true,
	Interval90Min: true, Interval1Hour: true, Interval1Day: true,
	Interval5Day: true, Interval1Week: true, Interval1Month: true,
	Interval3Months: true,
}

// Valid reports whether the interval is one the provider accepts.
func (i Interval) Valid() bool {
	return validIntervals[i]
}

// Intraday reports whether bars of this interval carry a time of day.
func (i Interval) Intraday() bool {
	s := string(i)
	return strings.HasSuffix(s, "h") || (strings.HasSuffix(s, "m") && !strings.HasSuffix(s, "mo"))
}

// Period is a lookback window in provider notation ("8d", "1mo", "ytd").
type Period string

// ParsePeriod validates a lookback period.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "ytd", "max":
		return Period(s), nil
	}
	for _, unit := range []string{"wk", "mo", "d", "y"} {
		num, ok := strings.CutSuffix(s, unit)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil || n < 1 {
			break
		}
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q", s)
}

// Valid reports whether the period parses.
func (p Period) Valid() bool {
	_, err := ParsePeriod(string(p))
	return err == nil
}
