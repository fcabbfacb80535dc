// Package health aggregates readiness checks for the shell's metrics server:
// whether the index is built and whether the text store dependencies
// answer.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"
)

type Status string

const (
	StatusUp       Status = "up"
	StatusDown     Status = "down"
	StatusDegraded Status = "degraded"
)

// Check probes one dependency. A nil error is up; an error wrapped with
// Degraded is degraded; any other error is down.
type Check func(ctx context.Context) error

type degraded struct{ err error }

func (d degraded) Error() string { return d.err.Error() }
func (d degraded) Unwrap() error { return d.err }

// Degraded marks err as a partial failure that does not stop queries.
func Degraded(err error) error {
	return degraded{err}
}

type Component struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency"`
}

type Report struct {
	Status     Status      `json:"status"`
	Components []Component `json:"components"`
	Timestamp  string      `json:"timestamp"`
}

type Checker struct {
	mu     sync.RWMutex
	checks map[string]Check
}

func NewChecker() *Checker {
	return &Checker{checks: make(map[string]Check)}
}

func (c *Checker) Register(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Run executes every check concurrently. The overall status is the worst
// component status.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	names := make([]string, 0, len(c.checks))
	checks := make(map[string]Check, len(c.checks))
	for name, check := range c.checks {
		names = append(names, name)
		checks[name] = check
	}
	c.mu.RUnlock()
	sort.Strings(names)

	components := make([]Component, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		i, name := i, name
		check := checks[name]
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			err := check(ctx)
			comp := Component{Name: name, Status: StatusUp}
			if err != nil {
				comp.Status = StatusDown
				if errors.As(err, new(degraded)) {
					comp.Status = StatusDegraded
				}
				comp.Message = err.Error()
			}
			comp.Latency = time.Since(start).Round(time.Microsecond).String()
			components[i] = comp
		}()
	}
	wg.Wait()

	report := Report{Status: StatusUp, Components: components, Timestamp: time.Now().UTC().Format(time.RFC3339)}
	for _, comp := range components {
		switch comp.Status {
		case StatusDown:
			report.Status = StatusDown
		case StatusDegraded:
			if report.Status == StatusUp {
				report.Status = StatusDegraded
			}
		}
	}
	return report
}

// Handler serves the readiness report; 503 unless every check is up or
// degraded.
func (c *Checker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		report := c.Run(ctx)
		w.Header().Set("Content-Type", "application/json")
		if report.Status == StatusDown {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(report)
	})
}
