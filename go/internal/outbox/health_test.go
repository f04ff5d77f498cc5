package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

type fakeBus struct{ connected bool }

func (b fakeBus) IsConnected() bool { return b.connected }

func TestHealthUnhealthyWhenListenerStopped(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := newMemStore()
	l := NewListener(store, &chanSource{}, &recordingPublisher{}, clock, DefaultListenerConfig())
	h := NewHealthChecker(l, store, fakePinger{}, nil, clock, time.Minute)

	status := h.Check(t.Context())
	if status.Healthy {
		t.Fatalf("expected unhealthy without a running listener")
	}
	if !status.DatabaseConnected {
		t.Fatalf("expected database connected")
	}
}

func TestHealthReportsDatabaseAndBus(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := newMemStore(testEvent(t))
	l := NewListener(store, &chanSource{}, &recordingPublisher{}, clock, DefaultListenerConfig())
	l.running.Store(true)
	h := NewHealthChecker(l, store, fakePinger{err: errors.New("refused")}, fakeBus{connected: false}, clock, time.Minute)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/outbox", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var status HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if status.DatabaseConnected || status.BusConnected {
		t.Fatalf("expected db and bus down, got %+v", status)
	}
	if status.PendingEvents != 0 {
		t.Fatalf("pending count must not be read without a database, got %d", status.PendingEvents)
	}
	if len(status.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", status.Errors)
	}
}

func TestHealthStaleBacklog(t *testing.T) {
	clock := clockwork.NewFakeClock()
	evt := testEvent(t)
	store := newMemStore(evt, testEvent(t))
	l := NewListener(store, &chanSource{}, &recordingPublisher{}, clock, DefaultListenerConfig())
	l.running.Store(true)
	if err := l.HandleNotification(t.Context(), evt.ID.String()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := NewHealthChecker(l, store, fakePinger{}, fakeBus{connected: true}, clock, time.Minute)

	if status := h.Check(t.Context()); !status.Healthy {
		t.Fatalf("expected healthy right after an event, got %v", status.Errors)
	}

	clock.Advance(2 * time.Minute)
	status := h.Check(t.Context())
	if status.Healthy {
		t.Fatalf("expected unhealthy with a stale backlog")
	}
	if status.PendingEvents != 1 {
		t.Fatalf("expected 1 pending, got %d", status.PendingEvents)
	}
}
