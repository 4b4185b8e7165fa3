package vigil

import (
	"context"
	"testing"
)

func TestChangeEvent_HistoryCopyPerCall(t *testing.T) {
	ctx := context.Background()
	value := 0

	var events []*ChangeEvent[int]
	obs := New(
		func() int { return value },
		func(_ context.Context, ev *ChangeEvent[int]) error {
			events = append(events, ev)
			return nil
		},
		WithSeedEvent[int](),
		WithHistory[int](3),
	)

	for _, v := range []int{1, 2, 3} {
		value = v
		if err := obs.Update(ctx); err != nil {
			t.Fatalf("Update with value %d failed: %v", v, err)
		}
	}

	ev := events[2]
	hist := ev.History()
	if len(hist) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(hist))
	}

	// Mutating the returned slice must not affect the event.
	hist[0].Value = 999

	again := ev.History()
	if len(again) != 2 {
		t.Fatalf("expected history length to stay 2, got %d", len(again))
	}
	if again[0].Value != 2 || again[1].Value != 1 {
		t.Errorf("expected history values [2 1], got [%d %d]", again[0].Value, again[1].Value)
	}
}

func TestChangeEvent_HistoryOrderMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	value := 0

	var last *ChangeEvent[int]
	obs := New(
		func() int { return value },
		func(_ context.Context, ev *ChangeEvent[int]) error {
			last = ev
			return nil
		},
		WithSeedEvent[int](),
		WithHistory[int](10),
	)

	for _, v := range []int{1, 2, 3, 4} {
		value = v
		if err := obs.Update(ctx); err != nil {
			t.Fatalf("Update with value %d failed: %v", v, err)
		}
	}

	hist := last.History()
	if len(hist) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(hist))
	}
	// history[0] is the value immediately preceding the current one.
	for i, want := range []int{3, 2, 1} {
		if hist[i].Value != want {
			t.Errorf("expected history[%d] = %d, got %d", i, want, hist[i].Value)
		}
	}
}

func TestChangeEvent_HistoryTimestampsDescend(t *testing.T) {
	ctx := context.Background()
	value := 0

	var last *ChangeEvent[int]
	obs := New(
		func() int { return value },
		func(_ context.Context, ev *ChangeEvent[int]) error {
			last = ev
			return nil
		},
		WithHistory[int](4),
	)

	for _, v := range []int{1, 2, 3} {
		value = v
		if err := obs.Update(ctx); err != nil {
			t.Fatalf("Update with value %d failed: %v", v, err)
		}
	}

	hist := last.History()
	if len(hist) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(hist))
	}
	if hist[0].ChangeTime.Before(hist[1].ChangeTime) {
		t.Error("expected history timestamps in descending recency order")
	}
	if last.ChangeTime.Before(hist[0].ChangeTime) {
		t.Error("expected event time to be at or after the newest history entry")
	}
}
