package database

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rickgao/market-loader/internal/model"
)

func TestMySQLArgs_LoadedAtWallClock(t *testing.T) {
	cet, err := time.LoadLocation("CET")
	if err != nil {
		t.Fatalf("LoadLocation(CET): %v", err)
	}

	now := time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC)
	barTime := time.Date(2024, 1, 15, 10, 0, 0, 0, cet)

	tests := []struct {
		name string
		loc  *time.Location
		want time.Time
	}{
		{"CET", cet, time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)},
		{"UTC", time.UTC, time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC)},
		{"UTC-8", time.FixedZone("UTC-8", -8*3600), time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := model.Bar{Datetime: barTime, Open: 1, High: 1, Low: 1, Close: 1}
			rec := model.NewRecord("EURUSD=X", model.Interval1Min, bar, now.In(tt.loc))

			args := mysqlArgs(rec)
			if len(args) != 9 {
				t.Fatalf("len(args) = %d, want 9", len(args))
			}

			loadedAt := args[8].(time.Time)
			if !loadedAt.Equal(tt.want) || loadedAt.Location() != time.UTC {
				t.Errorf("loaded_at = %v, want %v", loadedAt, tt.want)
			}

			// The bar timestamp is an instant and must not shift with the zone.
			ts := args[2].(time.Time)
			if !ts.Equal(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)) {
				t.Errorf("timestamp = %v, want 2024-01-15 09:00:00 UTC", ts)
			}
		})
	}
}
