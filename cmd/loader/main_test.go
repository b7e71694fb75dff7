package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rickgao/market-loader/internal/scheduler"
)

type staticStatus scheduler.Status

func (s staticStatus) Status() scheduler.Status { return scheduler.Status(s) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		status scheduler.Status
		want   string
	}{
		{"no runs yet", scheduler.Status{}, "healthy"},
		{"last run ok", scheduler.Status{Runs: 2, LastInserted: 3}, "healthy"},
		{"last run failed", scheduler.Status{Runs: 1, Failures: 1, LastError: "commit: lost connection"}, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createHealthHandler(staticStatus(tt.status))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status code = %d, want 200", rec.Code)
			}

			var body struct {
				Status    string           `json:"status"`
				Scheduler scheduler.Status `json:"scheduler"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.want {
				t.Errorf("status = %q, want %q", body.Status, tt.want)
			}
			if body.Scheduler.Runs != tt.status.Runs {
				t.Errorf("scheduler.runs = %d, want %d", body.Scheduler.Runs, tt.status.Runs)
			}
		})
	}
}
