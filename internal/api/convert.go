package api

import (
	"time"

	"github.com/rickgao/market-loader/internal/model"
)

// Location returns the exchange time zone of the series. It falls back to a
// fixed zone built from gmtoffset when the zone name is unknown.
func (m ChartMeta) Location() *time.Location {
	if m.ExchangeTimezoneName != "" {
		if loc, err := time.LoadLocation(m.ExchangeTimezoneName); err == nil {
			return loc
		}
	}
	name := m.Timezone
	if name == "" {
		name = "UTC"
	}
	return time.FixedZone(name, m.GMTOffset)
}

// ToBars flattens the columnar quote arrays into one bar per timestamp.
//
// Intraday series set Bar.Datetime in the exchange zone; daily and coarser
// series set Bar.Date to midnight of the exchange-local day. Rows with any
// null open/high/low/close are dropped; a null volume becomes 0.
func (r ChartResult) ToBars(intraday bool) []model.Bar {
	if len(r.Timestamp) == 0 || len(r.Indicators.Quote) == 0 {
		return nil
	}

	q := r.Indicators.Quote[0]
	loc := r.Meta.Location()
	bars := make([]model.Bar, 0, len(r.Timestamp))

	for i, ts := range r.Timestamp {
		open, okO := floatAt(q.Open, i)
		high, okH := floatAt(q.High, i)
		low, okL := floatAt(q.Low, i)
		closePrice, okC := floatAt(q.Close, i)
		if !okO || !okH || !okL || !okC {
			continue
		}

		bar := model.Bar{
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: intAt(q.Volume, i),
		}

		t := time.Unix(ts, 0).In(loc)
		if intraday {
			bar.Datetime = t
		} else {
			bar.Date = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		}

		bars = append(bars, bar)
	}

	return bars
}

func floatAt(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}

func intAt(values []*int64, i int) int64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
