package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAggregates(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]Check
		want   Status
	}{
		{"empty", nil, StatusUp},
		{"all up", map[string]Check{"index": func(context.Context) error { return nil }}, StatusUp},
		{"degraded", map[string]Check{
			"index": func(context.Context) error { return nil },
			"redis": func(context.Context) error { return Degraded(errors.New("circuit open")) },
		}, StatusDegraded},
		{"down wins", map[string]Check{
			"postgres": func(context.Context) error { return errors.New("refused") },
			"redis":    func(context.Context) error { return Degraded(errors.New("circuit open")) },
		}, StatusDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker()
			for name, check := range tt.checks {
				c.Register(name, check)
			}
			report := c.Run(context.Background())
			assert.Equal(t, tt.want, report.Status)
			assert.Len(t, report.Components, len(tt.checks))
		})
	}
}

func TestHandler(t *testing.T) {
	c := NewChecker()
	c.Register("redis", func(context.Context) error { return Degraded(errors.New("circuit open")) })
	c.Register("index", func(context.Context) error { return nil })

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, StatusDegraded, report.Status)
	require.Len(t, report.Components, 2)
	assert.Equal(t, "index", report.Components[0].Name)
	assert.Equal(t, "circuit open", report.Components[1].Message)

	c.Register("index", func(context.Context) error { return errors.New("not built") })
	rec = httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
