package store

import (
	"testing"
	"time"
)

func TestMemory_GetAbsent(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.GetState(t.Context(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected absent snapshot")
	}
}

func TestMemory_SetThenGet(t *testing.T) {
	m := NewMemory()
	want := Snapshot{
		State:        "open",
		FailureCount: 3,
		OpenUntil:    time.Now().Add(time.Minute).Truncate(time.Millisecond),
	}

	if err := m.SetState(t.Context(), "payments", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := m.GetState(t.Context(), "payments")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected snapshot")
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMemory_LastWriteWins(t *testing.T) {
	m := NewMemory()

	_ = m.SetState(t.Context(), "k", Snapshot{State: "open", FailureCount: 1})
	_ = m.SetState(t.Context(), "k", Snapshot{State: "closed"})

	got, _, _ := m.GetState(t.Context(), "k")
	if got.State != "closed" || got.FailureCount != 0 {
		t.Fatalf("expected the later write, got %+v", got)
	}
}
