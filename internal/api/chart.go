package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rickgao/market-loader/internal/model"
)

// GetChart fetches the raw chart for a symbol.
func (c *Client) GetChart(ctx context.Context, symbol string, interval model.Interval, period model.Period) (*ChartResult, error) {
	query := url.Values{}
	query.Set("interval", string(interval))
	query.Set("range", string(period))
	query.Set("includePrePost", "false")

	var env chartEnvelope
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), query, &env); err != nil {
		return nil, fmt.Errorf("get chart %s: %w", symbol, err)
	}

	if env.Chart.Error != nil {
		return nil, &APIError{
			StatusCode: 200,
			Code:       env.Chart.Error.Code,
			Message:    env.Chart.Error.Description,
		}
	}

	if len(env.Chart.Result) == 0 {
		return nil, nil
	}
	return &env.Chart.Result[0], nil
}

// FetchBars fetches a symbol's chart and returns it as bars.
// An empty chart yields no bars and no error.
func (c *Client) FetchBars(ctx context.Context, symbol string, interval model.Interval, period model.Period) ([]model.Bar, error) {
	result, err := c.GetChart(ctx, symbol, interval, period)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	bars := result.ToBars(interval.Intraday())

	c.logger.Debug("chart fetched",
		"symbol", symbol,
		"interval", interval,
		"period", period,
		"timestamps", len(result.Timestamp),
		"bars", len(bars),
	)

	return bars, nil
}
