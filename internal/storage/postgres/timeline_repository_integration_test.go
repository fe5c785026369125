package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/warehouse/internal/domain"
)

func TestTimelineRepository_AppendList_Integration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewTimelineRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	base := time.Now().UTC().Truncate(time.Millisecond)
	events := []domain.TimelineEvent{
		{OrderID: 1, Type: "order.created", Occurred: base},
		{OrderID: 1, Type: "order.confirmed", Occurred: base.Add(time.Second)},
		{OrderID: 1, Type: "order.cancelled", Reason: "cancelled by caller", Occurred: base.Add(2 * time.Second)},
		{OrderID: 2, Type: "order.created", Occurred: base},
	}
	for _, event := range events {
		if err := repo.Append(ctx, event); err != nil {
			t.Fatalf("append event: %v", err)
		}
	}

	got, err := repo.List(ctx, 1)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events for order 1, got %d", len(got))
	}
	if got[0].Type != "order.created" || got[2].Type != "order.cancelled" {
		t.Fatalf("unexpected ordering: %+v", got)
	}
	if got[2].Reason != "cancelled by caller" {
		t.Fatalf("unexpected reason: %q", got[2].Reason)
	}
}

func TestTimelineRepository_AppendFillsOccurred_Integration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewTimelineRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repo.Append(ctx, domain.TimelineEvent{OrderID: 7, Type: "order.created"}); err != nil {
		t.Fatalf("append event: %v", err)
	}

	got, err := repo.List(ctx, 7)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(got) != 1 || got[0].Occurred.IsZero() {
		t.Fatalf("expected occurred timestamp to be filled, got %+v", got)
	}
}
