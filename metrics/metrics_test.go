package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Keksclan/goSafeSquirrel/breaker"
)

func TestObserver_TracksStateAndTransitions(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := NewCollector(reg)

	b, err := breaker.New(breaker.Config{Cooldown: time.Minute},
		breaker.WithOnStateChange(col.Observer("payments")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _ = b.Execute(t.Context(), func(context.Context) (any, error) {
		return nil, errors.New("boom")
	})

	if got := testutil.ToFloat64(col.state.WithLabelValues("payments")); got != float64(breaker.Open) {
		t.Fatalf("expected state gauge %v, got %v", float64(breaker.Open), got)
	}
	if got := testutil.ToFloat64(col.transitions.WithLabelValues("payments", "closed", "open")); got != 1 {
		t.Fatalf("expected 1 closed->open transition, got %v", got)
	}
}
