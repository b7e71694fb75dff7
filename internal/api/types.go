package api

// chartEnvelope is the top-level chart API response.
type chartEnvelope struct {
	Chart ChartResponse `json:"chart"`
}

// ChartResponse holds the result list or an error.
type ChartResponse struct {
	Result []ChartResult `json:"result"`
	Error  *ChartError   `json:"error"`
}

// ChartError is the error object embedded in a chart response.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResult is the series for one symbol.
type ChartResult struct {
	Meta       ChartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"` // Unix seconds
	Indicators Indicators `json:"indicators"`
}

// ChartMeta describes the series.
type ChartMeta struct {
	Currency             string `json:"currency"`
	Symbol               string `json:"symbol"`
	ExchangeName         string `json:"exchangeName"`
	InstrumentType       string `json:"instrumentType"`
	GMTOffset            int    `json:"gmtoffset"` // Seconds east of UTC
	Timezone             string `json:"timezone"`
	ExchangeTimezoneName string `json:"exchangeTimezoneName"`
	DataGranularity      string `json:"dataGranularity"`
	Range                string `json:"range"`
}

// Indicators holds the per-field value arrays.
type Indicators struct {
	Quote []Quote `json:"quote"`
}

// Quote holds OHLCV arrays aligned with ChartResult.Timestamp.
// Missing observations are JSON null.
type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}
